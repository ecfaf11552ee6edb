package engine

import (
	"github.com/fortunesim/fortune-simulator-backend/internal/effect"
	"github.com/fortunesim/fortune-simulator-backend/internal/model"
)

// Study hours granted per skill level in an effect delta.
const hoursPerSkillLevel = 20

// ApplyDeltas applies typed deltas to the player and recomputes wealth
// once at the end. Skill deltas route through Study so they pay the
// diminishing-returns curve rather than adding linearly.
func (e *Engine) ApplyDeltas(p *model.Player, deltas []effect.Delta) {
	for _, d := range deltas {
		switch d := d.(type) {
		case effect.Cash:
			p.Stats.Cash += d.Amount
		case effect.Income:
			p.Stats.Income += d.Amount
		case effect.Insight:
			p.Stats.Insight = clampInsight(p.Stats.Insight + d.Points)
		case effect.MonthlyExpense:
			p.Stats.MonthlyExpense += d.Amount
		case effect.Skill:
			e.Study(p, d.Field, d.Levels*hoursPerSkillLevel)
		}
	}
	e.RecalculateWealth(p)
}

// ApplyEffect decodes a wire delta mapping and applies it.
func (e *Engine) ApplyEffect(p *model.Player, raw map[string]any) {
	e.ApplyDeltas(p, effect.Decode(raw))
}

func clampInsight(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
