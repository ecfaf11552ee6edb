package engine

import (
	"math"

	"github.com/fortunesim/fortune-simulator-backend/internal/model"
)

// DefaultBuyPrice is used when a buy order does not name a unit price.
const DefaultBuyPrice = 100

// Reprice magnitudes. The monthly step moves prices within ±5% and the
// yearly step within ±15%, before the skill bias shifts the drift.
const (
	monthlyBand      = 0.1
	monthlySkillStep = 0.003
	yearlyBand       = 0.3
	yearlySkillStep  = 0.01
)

// SellResult reports the realized outcome of a sale.
type SellResult struct {
	Cash       float64 `json:"cash"`
	Profit     float64 `json:"profit"`
	ProfitRate float64 `json:"profitRate"`
}

// Buy opens a position of the given asset type. Returns nil when the
// player cannot cover the amount. A non-positive price falls back to
// DefaultBuyPrice.
func (e *Engine) Buy(p *model.Player, assetType, name string, amount, price float64) *model.Holding {
	if p.Stats.Cash < amount {
		return nil
	}
	if price <= 0 {
		price = DefaultBuyPrice
	}

	p.Stats.Cash -= amount
	p.HoldingIDCounter++

	h := &model.Holding{
		ID:           p.HoldingIDCounter,
		Type:         assetType,
		Name:         name,
		BuyPrice:     price,
		CurrentPrice: price,
		Shares:       amount / price,
		Amount:       amount,
		BuyTime:      model.BuyTime{Age: p.Age, Month: p.Month},
	}
	p.Holdings = append(p.Holdings, h)

	e.RecalculateWealth(p)
	return h
}

// Sell realizes ratio of a position (1 sells everything and removes the
// holding; a partial sale keeps the id and buy price, reducing shares
// and cost basis proportionally). Returns nil for an unknown id.
func (e *Engine) Sell(p *model.Player, holdingID int, ratio float64) *SellResult {
	idx := -1
	for i, h := range p.Holdings {
		if h.ID == holdingID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	h := p.Holdings[idx]
	sellShares := h.Shares * ratio
	sellValue := sellShares * h.CurrentPrice
	costBasis := sellShares * h.BuyPrice
	profit := sellValue - costBasis
	profitRate := profit / costBasis * 100

	p.Stats.Cash += sellValue

	if ratio >= 1 {
		p.Holdings = append(p.Holdings[:idx], p.Holdings[idx+1:]...)
	} else {
		h.Shares -= sellShares
		h.Amount = h.Shares * h.BuyPrice
	}

	e.RecalculateWealth(p)
	return &SellResult{Cash: sellValue, Profit: profit, ProfitRate: profitRate}
}

// AddToPosition grows an existing holding and re-averages its cost
// basis: the new buy price is total cost over total shares. Returns
// false on unknown id or insufficient cash.
func (e *Engine) AddToPosition(p *model.Player, holdingID int, addAmount float64) bool {
	if p.Stats.Cash < addAmount {
		return false
	}
	h := p.HoldingByID(holdingID)
	if h == nil {
		return false
	}

	addShares := addAmount / h.CurrentPrice
	newCost := h.Shares*h.BuyPrice + addAmount
	newShares := h.Shares + addShares

	h.Shares = newShares
	h.BuyPrice = newCost / newShares
	h.Amount = newCost

	p.Stats.Cash -= addAmount
	e.RecalculateWealth(p)
	return true
}

// AdjustHoldingPrice applies an explicit rate change to one holding,
// for effects that move a named position rather than the whole book.
// No-op on unknown id.
func (e *Engine) AdjustHoldingPrice(p *model.Player, holdingID int, changeRate float64) {
	h := p.HoldingByID(holdingID)
	if h == nil {
		return
	}
	h.CurrentPrice *= 1 + changeRate
	h.RefreshDerived()
	e.RecalculateWealth(p)
}

// repriceMonthly applies the small monthly market move to every holding.
func (e *Engine) repriceMonthly(p *model.Player) {
	e.reprice(p, monthlyBand, monthlySkillStep)
}

// repriceYearly applies the large year-boundary market move.
func (e *Engine) repriceYearly(p *model.Player) {
	e.reprice(p, yearlyBand, yearlySkillStep)
}

// reprice performs the skill-biased random walk: a symmetric uniform
// move of width band, shifted upward by skillStep per 10 levels in the
// holding's asset class. Skill improves the expected drift but never
// removes downside variance. Prices floor at 1.
func (e *Engine) reprice(p *model.Player, band, skillStep float64) {
	for _, h := range p.Holdings {
		skill := p.SkillLevel(h.Type)
		baseChange := (e.rng.Float64() - 0.5) * band
		skillBonus := float64(skill) / 10 * skillStep
		change := baseChange + skillBonus

		h.CurrentPrice = math.Max(1, h.CurrentPrice*(1+change))
		h.RefreshDerived()
	}
	e.RecalculateWealth(p)
}
