package engine

import (
	"math"

	"github.com/fortunesim/fortune-simulator-backend/internal/model"
)

// Study trains one field and returns the level gained. Gains diminish
// as the level approaches the cap but never drop below 1 for positive
// hours, so progress cannot stall entirely. A third of the gain (floor)
// feeds into insight. Unknown fields return 0.
func (e *Engine) Study(p *model.Player, field string, hours float64) int {
	if !model.KnownSkillField(field) {
		return 0
	}
	level := p.Skills[field]

	gain := int(math.Floor(hours / 20 * (1 - float64(level)/150)))
	if gain < 1 {
		gain = 1
	}

	p.Skills[field] = min(100, level+gain)
	p.Stats.Insight = min(100, p.Stats.Insight+gain/3)

	return gain
}
