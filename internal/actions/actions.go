// Package actions defines the player action catalog as data plus an
// executor dispatch table keyed by action id. Catalog entries carry the
// costs, time consumption, and preconditions; the executors hold the
// behavior. The two are joined only through the id, so the catalog can
// be listed, filtered, and serialized without touching execution.
package actions

import "github.com/fortunesim/fortune-simulator-backend/internal/model"

// Action categories.
const (
	CategoryInvest = "invest"
	CategoryStudy  = "study"
	CategoryCareer = "career"
	CategoryLife   = "life"
	CategoryRest   = "rest"
)

// Action is one catalog entry. TimeMonths is the months the action
// consumes; Cost is a fixed price paid on execution; MinCash gates
// availability without being spent itself. Condition, when set, must
// hold for the action to be offered.
type Action struct {
	ID          string                   `json:"id"`
	Category    string                   `json:"category"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	TimeMonths  int                      `json:"timeMonths"`
	Cost        float64                  `json:"cost,omitempty"`
	MinCash     float64                  `json:"minCash,omitempty"`
	Condition   func(*model.Player) bool `json:"-"`
}

// Catalog lists every action in presentation order.
var Catalog = []Action{
	{
		ID:          "buy_stock",
		Category:    CategoryInvest,
		Name:        "Buy stock",
		Description: "Research and buy into a stock position",
		TimeMonths:  1,
		MinCash:     10000,
	},
	{
		ID:          "buy_fund",
		Category:    CategoryInvest,
		Name:        "Buy fund",
		Description: "Put money into a fund",
		TimeMonths:  1,
		MinCash:     5000,
	},
	{
		ID:          "buy_crypto",
		Category:    CategoryInvest,
		Name:        "Buy crypto",
		Description: "Invest in cryptocurrency",
		TimeMonths:  1,
		MinCash:     5000,
	},
	{
		ID:          "study_stock",
		Category:    CategoryStudy,
		Name:        "Study stocks",
		Description: "Learn technical and fundamental analysis",
		TimeMonths:  2,
		Cost:        5000,
	},
	{
		ID:          "study_fund",
		Category:    CategoryStudy,
		Name:        "Study funds",
		Description: "Learn fund selection and allocation",
		TimeMonths:  2,
		Cost:        3000,
	},
	{
		ID:          "study_crypto",
		Category:    CategoryStudy,
		Name:        "Study crypto",
		Description: "Research blockchain and trading strategy",
		TimeMonths:  2,
		Cost:        3000,
	},
	{
		ID:          "study_real_estate",
		Category:    CategoryStudy,
		Name:        "Study real estate",
		Description: "Research the property market",
		TimeMonths:  2,
		Cost:        5000,
	},
	{
		ID:          "study_business",
		Category:    CategoryStudy,
		Name:        "Study business",
		Description: "Learn how to run a company",
		TimeMonths:  3,
		Cost:        8000,
	},
	{
		ID:          "study_career",
		Category:    CategoryStudy,
		Name:        "Get certified",
		Description: "Earn a professional certificate",
		TimeMonths:  3,
		Cost:        10000,
	},
	{
		ID:          "work_hard",
		Category:    CategoryCareer,
		Name:        "Work hard",
		Description: "Put in extra hours and push for a raise",
		TimeMonths:  2,
	},
	{
		ID:          "find_job",
		Category:    CategoryCareer,
		Name:        "Find a new job",
		Description: "Interview around and switch employers",
		TimeMonths:  2,
	},
	{
		ID:          "side_business",
		Category:    CategoryCareer,
		Name:        "Side hustle",
		Description: "Earn extra income in your spare time",
		TimeMonths:  1,
	},
	{
		ID:          "start_business",
		Category:    CategoryCareer,
		Name:        "Start a business",
		Description: "Quit and found a company (high risk, high reward)",
		TimeMonths:  6,
		MinCash:     100000,
	},
	{
		ID:          "dating",
		Category:    CategoryLife,
		Name:        "Go dating",
		Description: "Look for a life partner",
		TimeMonths:  1,
		Cost:        3000,
		Condition:   func(p *model.Player) bool { return !p.Life.Married },
	},
	{
		ID:          "marry",
		Category:    CategoryLife,
		Name:        "Get married",
		Description: "Hold a wedding and start a new life",
		TimeMonths:  3,
		Cost:        200000,
		MinCash:     150000,
		Condition:   func(p *model.Player) bool { return !p.Life.Married },
	},
	{
		ID:          "have_baby",
		Category:    CategoryLife,
		Name:        "Have a baby",
		Description: "Welcome a new family member",
		TimeMonths:  6,
		Cost:        50000,
		Condition: func(p *model.Player) bool {
			return p.Life.Married && p.Life.Children < 3
		},
	},
	{
		ID:          "buy_car",
		Category:    CategoryLife,
		Name:        "Buy a car",
		Description: "Get yourself some wheels",
		TimeMonths:  1,
		MinCash:     100000,
	},
	{
		ID:          "buy_house",
		Category:    CategoryLife,
		Name:        "Buy a house",
		Description: "Purchase property (mortgage available)",
		TimeMonths:  2,
		MinCash:     300000,
	},
	{
		ID:          "rest",
		Category:    CategoryRest,
		Name:        "Take a break",
		Description: "Give yourself some time off",
		TimeMonths:  1,
		Cost:        2000,
	},
	{
		ID:          "travel",
		Category:    CategoryRest,
		Name:        "Travel",
		Description: "Go see the world",
		TimeMonths:  1,
		Cost:        10000,
	},
	{
		ID:          "skip_month",
		Category:    CategoryRest,
		Name:        "Let the month pass",
		Description: "Nothing special this month",
		TimeMonths:  1,
	},
}

// ByID looks up a catalog entry. Returns nil for unknown ids.
func ByID(id string) *Action {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i]
		}
	}
	return nil
}

// ByCategory returns catalog entries in one category, in catalog order.
func ByCategory(category string) []Action {
	var out []Action
	for _, a := range Catalog {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// Available filters the catalog to actions the player can execute right
// now: enough months left in the year, condition satisfied, and cash
// covering both the fixed cost and the minimum-cash gate.
func Available(p *model.Player) []Action {
	remaining := p.RemainingMonths()

	var out []Action
	for _, a := range Catalog {
		if a.TimeMonths > remaining {
			continue
		}
		if a.Condition != nil && !a.Condition(p) {
			continue
		}
		if a.MinCash > 0 && p.Stats.Cash < a.MinCash {
			continue
		}
		if a.Cost > 0 && p.Stats.Cash < a.Cost {
			continue
		}
		out = append(out, a)
	}
	return out
}
