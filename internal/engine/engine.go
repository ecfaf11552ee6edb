// Package engine implements the financial simulation: month/year time
// ledger, holding book, loan book, skill progression, effect
// application, and wealth aggregation. All operations act on an
// explicit *model.Player and complete synchronously; the only state the
// engine itself carries is its random source, so a seeded source makes
// every randomized step reproducible.
package engine

import (
	"math/rand"
	"time"

	"github.com/fortunesim/fortune-simulator-backend/internal/model"
)

// Engine drives all player mutation. Safe for use by one goroutine at a
// time; callers serialize access per player.
type Engine struct {
	rng *rand.Rand
}

// New creates an engine around the given random source. A nil source
// falls back to a time-seeded one.
func New(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: rng}
}

// Roll returns a uniform float in [0,1). Exposed for the action
// executors, which share the engine's random source.
func (e *Engine) Roll() float64 {
	return e.rng.Float64()
}

// NewPlayer creates a fresh player at the given starting age and
// wealth. Cash starts equal to wealth, income is derived from age, and
// insight rolls randomly in [20,35).
func (e *Engine) NewPlayer(startingAge int, startingWealth float64) *model.Player {
	p := &model.Player{
		Name:           "Player",
		Age:            startingAge,
		Month:          1,
		StartingAge:    startingAge,
		StartingWealth: startingWealth,
		Stats:          model.InitialStats(startingAge, startingWealth, e.rng),
		Skills:         make(map[string]int, len(model.SkillFields)),
		Life: model.Life{
			Cars:   []model.Car{},
			Houses: []model.House{},
		},
		Loans:    []*model.Loan{},
		Holdings: []*model.Holding{},
		LifeLog:  []model.LifeLogEntry{},
		IsAlive:  true,
		Job:      "Office worker",
	}
	for _, f := range model.SkillFields {
		p.Skills[f] = 0
	}
	return p
}

// LogEvent appends a resolved event to the player's life log.
func (e *Engine) LogEvent(p *model.Player, eventTitle, choiceText string) {
	if choiceText == "" {
		choiceText = "auto"
	}
	p.LifeLog = append(p.LifeLog, model.LifeLogEntry{
		Age:       p.Age,
		Month:     p.Month,
		Event:     eventTitle,
		Choice:    choiceText,
		Timestamp: time.Now().UnixMilli(),
	})
}
