// Package request defines the JSON request bodies accepted by the API.
package request

import "github.com/fortunesim/fortune-simulator-backend/internal/actions"

// NewGame starts a session. Age is clamped server-side to [18, 60];
// Wealth picks the starting net worth (presets or a custom value).
type NewGame struct {
	Name   string  `json:"name"`
	Age    int     `json:"age"`
	Wealth float64 `json:"wealth"`
}

// PerformAction runs one catalog action with optional parameters.
type PerformAction struct {
	ActionID string         `json:"actionId"`
	Params   actions.Params `json:"params"`
}

// ResolveChoice picks one option of the pending event.
type ResolveChoice struct {
	ChoiceIndex int `json:"choiceIndex"`
}

// BuyHolding opens a position directly.
type BuyHolding struct {
	Type   string  `json:"type"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Price  float64 `json:"price"`
}

// SellHolding sells a fraction of a position; a ratio of 1 closes it.
type SellHolding struct {
	Ratio float64 `json:"ratio"`
}

// AddHolding grows an existing position by amount.
type AddHolding struct {
	Amount float64 `json:"amount"`
}

// TakeLoan requests a loan product.
type TakeLoan struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Years  int     `json:"years"`
}

// Study trains one skill field for the given hours.
type Study struct {
	Field string  `json:"field"`
	Hours float64 `json:"hours"`
}

// Import restores a session from an export token.
type Import struct {
	Token string `json:"token"`
}
