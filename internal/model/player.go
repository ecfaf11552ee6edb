// Package model defines the domain types for the fortune simulator:
// the player aggregate, holdings, loans, life assets, and the wire
// contracts consumed from the event generator.
package model

import (
	"math/rand"
)

// Stats holds the player's core financial attributes.
// Income is annual; MonthlyExpense is the fixed monthly outlay before
// children, cars, and loan payments are added on top.
type Stats struct {
	Wealth         float64 `json:"wealth"`
	Cash           float64 `json:"cash"`
	Income         float64 `json:"income"`
	MonthlyExpense float64 `json:"monthlyExpense"`
	Insight        int     `json:"insight"`
}

// Spouse carries the partner's contribution to household income.
type Spouse struct {
	Name   string  `json:"name"`
	Income float64 `json:"income"`
}

// Life tracks the player's family and durable assets.
type Life struct {
	Married  bool    `json:"married"`
	Spouse   *Spouse `json:"spouse"`
	Children int     `json:"children"`
	Cars     []Car   `json:"cars"`
	Houses   []House `json:"houses"`
}

// LifeLogEntry is one resolved event in the player's history.
// Timestamp is Unix milliseconds so snapshots stay flat.
type LifeLogEntry struct {
	Age       int    `json:"age"`
	Month     int    `json:"month"`
	Event     string `json:"event"`
	Choice    string `json:"choice"`
	Timestamp int64  `json:"timestamp"`
}

// Player is the full game state for one session. It is a plain value
// aggregate: all mutation goes through the engine package, and the JSON
// shape doubles as the persisted snapshot layout.
type Player struct {
	Name             string         `json:"name"`
	Age              int            `json:"age"`
	Month            int            `json:"month"`
	StartingAge      int            `json:"startingAge"`
	StartingWealth   float64        `json:"startingWealth"`
	Stats            Stats          `json:"stats"`
	Skills           map[string]int `json:"skills"`
	Life             Life           `json:"life"`
	Loans            []*Loan        `json:"loans"`
	Holdings         []*Holding     `json:"holdings"`
	HoldingIDCounter int            `json:"holdingIdCounter"`
	PassiveIncome    float64        `json:"passiveIncome"`
	LifeLog          []LifeLogEntry `json:"lifeLog"`
	IsAlive          bool           `json:"isAlive"`
	Job              string         `json:"job"`
}

// SkillFields enumerates the study directions a player can level up in.
var SkillFields = []string{
	FieldStock,
	FieldFund,
	FieldRealEstate,
	FieldCrypto,
	FieldBusiness,
	FieldCareer,
}

// KnownSkillField reports whether field is one of SkillFields.
func KnownSkillField(field string) bool {
	for _, f := range SkillFields {
		if f == field {
			return true
		}
	}
	return false
}

// Skill field identifiers. Holding asset types reuse the same values
// where the two overlap (stock, fund, crypto, business).
const (
	FieldStock      = "stock"
	FieldFund       = "fund"
	FieldRealEstate = "real_estate"
	FieldCrypto     = "crypto"
	FieldBusiness   = "business"
	FieldCareer     = "career"
)

// StartingWealthPreset is a named starting-capital option offered at
// game creation.
type StartingWealthPreset struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Wealth      float64 `json:"wealth"`
	Description string  `json:"description"`
}

// StartingWealthPresets are the built-in starting-capital options.
var StartingWealthPresets = []StartingWealthPreset{
	{ID: "zero", Name: "Self-made", Wealth: 0, Description: "start from nothing"},
	{ID: "small", Name: "Modest savings", Wealth: 100000, Description: "100k"},
	{ID: "medium", Name: "Middle class", Wealth: 500000, Description: "500k"},
	{ID: "rich", Name: "Comfortable", Wealth: 1000000, Description: "1M"},
	{ID: "wealthy", Name: "Wealthy start", Wealth: 5000000, Description: "5M"},
}

// InitialStats derives the starting financial attributes from the chosen
// starting age and wealth. Base income scales with age; insight rolls
// uniformly in [20,35).
func InitialStats(startingAge int, startingWealth float64, rng *rand.Rand) Stats {
	baseIncome := float64(startingAge-18)*8000 + 60000
	if baseIncome < 60000 {
		baseIncome = 60000
	}
	return Stats{
		Wealth:         startingWealth,
		Cash:           startingWealth,
		Income:         baseIncome,
		MonthlyExpense: 5000,
		Insight:        20 + rng.Intn(15),
	}
}

// RemainingMonths reports how many months are left in the current year.
func (p *Player) RemainingMonths() int {
	return 13 - p.Month
}

// MonthlyOutlay is the total monthly expense: fixed living cost, child
// care, car upkeep, and the payments of all active loans.
func (p *Player) MonthlyOutlay() float64 {
	total := p.Stats.MonthlyExpense
	total += float64(p.Life.Children) * 3000
	total += float64(len(p.Life.Cars)) * 2000
	for _, l := range p.Loans {
		if l.MonthsLeft > 0 {
			total += l.MonthlyPayment
		}
	}
	return total
}

// TotalDebt sums the remaining balance across all loans.
func (p *Player) TotalDebt() float64 {
	var total float64
	for _, l := range p.Loans {
		total += l.Remaining
	}
	return total
}

// HoldingsValue is the current market value of all holdings.
func (p *Player) HoldingsValue() float64 {
	var total float64
	for _, h := range p.Holdings {
		total += h.Shares * h.CurrentPrice
	}
	return total
}

// HoldingsProfit sums unrealized profit across all holdings.
func (p *Player) HoldingsProfit() float64 {
	var total float64
	for _, h := range p.Holdings {
		total += h.Profit
	}
	return total
}

// HoldingByID looks up a holding. Returns nil when the id is unknown.
func (p *Player) HoldingByID(id int) *Holding {
	for _, h := range p.Holdings {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// SkillLevel reports the player's level in a field, 0 for unknown fields.
func (p *Player) SkillLevel(field string) int {
	return p.Skills[field]
}

// TopSkill returns the field with the highest level. Field is empty when
// no skill has been trained.
func (p *Player) TopSkill() (field string, level int) {
	for _, f := range SkillFields {
		if p.Skills[f] > level {
			field, level = f, p.Skills[f]
		}
	}
	return field, level
}
