package engine

import "github.com/fortunesim/fortune-simulator-backend/internal/model"

// RecalculateWealth recomputes net worth from scratch: cash plus the
// market value of holdings and durable assets, minus outstanding debt.
// Wealth is never patched incrementally; every mutating operation ends
// by calling this. Idempotent and safe to call redundantly.
func (e *Engine) RecalculateWealth(p *model.Player) {
	var housesValue, carsValue float64
	for _, h := range p.Life.Houses {
		housesValue += h.CurrentValue
	}
	for _, c := range p.Life.Cars {
		carsValue += c.CurrentValue
	}

	p.Stats.Wealth = p.Stats.Cash + p.HoldingsValue() + housesValue + carsValue - p.TotalDebt()
}

// LifeScore computes the end-of-life score: a tiered wealth component,
// up to 30 points from income, half of insight, a third of the top
// skill level, and milestone bonuses.
func (e *Engine) LifeScore(p *model.Player) int {
	score := 0

	switch {
	case p.Stats.Wealth >= 100000000:
		score += 100
	case p.Stats.Wealth >= 10000000:
		score += 80
	case p.Stats.Wealth >= 1000000:
		score += 60
	case p.Stats.Wealth >= 100000:
		score += 40
	case p.Stats.Wealth >= 0:
		score += 20
	}

	score += min(30, int(p.Stats.Income/100000)*3)
	score += p.Stats.Insight / 2

	_, topLevel := p.TopSkill()
	score += topLevel / 3

	if p.Life.Married {
		score += 5
	}
	score += p.Life.Children * 3
	score += len(p.Life.Houses) * 10
	score += len(p.Life.Cars) * 2

	return score
}

// LifeEvaluation is the qualitative wealth tier shown at game end.
type LifeEvaluation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       uint32 `json:"color"`
}

// Evaluate maps final wealth into one of six fixed tiers. Pure function
// of wealth only.
func (e *Engine) Evaluate(p *model.Player) LifeEvaluation {
	switch {
	case p.Stats.Wealth >= 100000000:
		return LifeEvaluation{
			Title:       "Billionaire class",
			Description: "You reached full financial freedom and joined the top tier of wealth.",
			Color:       0xFFD700,
		}
	case p.Stats.Wealth >= 10000000:
		return LifeEvaluation{
			Title:       "Eight figures",
			Description: "You built serious wealth and never have to worry about money.",
			Color:       0xFFA500,
		}
	case p.Stats.Wealth >= 1000000:
		return LifeEvaluation{
			Title:       "Millionaire",
			Description: "You put together a solid financial foundation.",
			Color:       0x98FB98,
		}
	case p.Stats.Wealth >= 100000:
		return LifeEvaluation{
			Title:       "Modest savings",
			Description: "You saved some money. Keep at it.",
			Color:       0x87CEEB,
		}
	case p.Stats.Wealth >= 0:
		return LifeEvaluation{
			Title:       "Breaking even",
			Description: "No debt, but no savings either.",
			Color:       0xC0C0C0,
		}
	default:
		return LifeEvaluation{
			Title:       "Heavily indebted",
			Description: "Investments went wrong and debt piled up.",
			Color:       0xFF6B6B,
		}
	}
}
