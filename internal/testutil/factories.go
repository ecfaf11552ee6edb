package testutil

import (
	"github.com/fortunesim/fortune-simulator-backend/internal/model"
)

// PlayerBuilder provides a fluent interface for creating test players.
//
// Example usage:
//
//	// Simple creation with defaults
//	player := testutil.NewPlayer().Build()
//
//	// Customized player
//	player := testutil.NewPlayer().
//	    WithAge(30).
//	    WithCash(500000).
//	    Married(60000).
//	    WithSkill(model.FieldStock, 40).
//	    Build()
type PlayerBuilder struct {
	player *model.Player
}

// NewPlayer creates a PlayerBuilder with sensible defaults: a 25 year
// old in January with 100000 cash, 120000 income, and 5000 monthly
// expenses.
func NewPlayer() *PlayerBuilder {
	p := &model.Player{
		Name:           MakePlayerName("Tester"),
		Age:            25,
		Month:          1,
		StartingAge:    25,
		StartingWealth: 100000,
		Stats: model.Stats{
			Wealth:         100000,
			Cash:           100000,
			Income:         120000,
			MonthlyExpense: 5000,
			Insight:        25,
		},
		Skills:   map[string]int{},
		Loans:    []*model.Loan{},
		Holdings: []*model.Holding{},
		LifeLog:  []model.LifeLogEntry{},
		IsAlive:  true,
		Job:      "Office worker",
	}
	return &PlayerBuilder{player: p}
}

// WithName sets a custom name.
func (b *PlayerBuilder) WithName(name string) *PlayerBuilder {
	b.player.Name = name
	return b
}

// WithAge sets the current age.
func (b *PlayerBuilder) WithAge(age int) *PlayerBuilder {
	b.player.Age = age
	return b
}

// WithMonth sets the current month within the year.
func (b *PlayerBuilder) WithMonth(month int) *PlayerBuilder {
	b.player.Month = month
	return b
}

// WithCash sets cash on hand.
func (b *PlayerBuilder) WithCash(cash float64) *PlayerBuilder {
	b.player.Stats.Cash = cash
	return b
}

// WithIncome sets annual income.
func (b *PlayerBuilder) WithIncome(income float64) *PlayerBuilder {
	b.player.Stats.Income = income
	return b
}

// WithMonthlyExpense sets the base monthly expense.
func (b *PlayerBuilder) WithMonthlyExpense(expense float64) *PlayerBuilder {
	b.player.Stats.MonthlyExpense = expense
	return b
}

// WithInsight sets the insight stat.
func (b *PlayerBuilder) WithInsight(insight int) *PlayerBuilder {
	b.player.Stats.Insight = insight
	return b
}

// WithSkill sets one skill level.
func (b *PlayerBuilder) WithSkill(field string, level int) *PlayerBuilder {
	b.player.Skills[field] = level
	return b
}

// Married marks the player married to a spouse with the given income.
// The income is added to the player's, as the engine does on marriage.
func (b *PlayerBuilder) Married(spouseIncome float64) *PlayerBuilder {
	b.player.Life.Married = true
	b.player.Life.Spouse = &model.Spouse{Name: "Spouse", Income: spouseIncome}
	b.player.Stats.Income += spouseIncome
	return b
}

// WithChildren sets the number of children.
func (b *PlayerBuilder) WithChildren(n int) *PlayerBuilder {
	b.player.Life.Children = n
	return b
}

// WithPassiveIncome sets annual passive income.
func (b *PlayerBuilder) WithPassiveIncome(income float64) *PlayerBuilder {
	b.player.PassiveIncome = income
	return b
}

// Build returns the player. Wealth is synchronized from the parts so
// the wealth identity holds for the built player.
func (b *PlayerBuilder) Build() *model.Player {
	p := b.player

	assets := p.Stats.Cash + p.HoldingsValue()
	for _, h := range p.Life.Houses {
		assets += h.CurrentValue
	}
	for _, c := range p.Life.Cars {
		assets += c.CurrentValue
	}
	p.Stats.Wealth = assets - p.TotalDebt()

	return p
}
