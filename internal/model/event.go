package model

// Event categories produced by the generator.
const (
	CategoryInvestment = "investment"
	CategoryLearning   = "learning"
	CategoryCareer     = "career"
	CategoryLifeEvent  = "life_event"
	CategoryDaily      = "daily"
)

// Side actions an event choice may carry in addition to its deltas.
const (
	ChoiceActionMarry         = "marry"
	ChoiceActionBaby          = "baby"
	ChoiceActionBuyHouse      = "buy_house"
	ChoiceActionBuyCar        = "buy_car"
	ChoiceActionBuyInvestment = "buy_investment"
)

// EventDescriptor is the structured event contract produced by the
// external generator (or its deterministic fallback). TimeMonths is
// clamped to the player's remaining months before the event is offered.
type EventDescriptor struct {
	Category    string        `json:"category"`
	TimeMonths  int           `json:"timeMonths"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Choices     []EventChoice `json:"choices"`
}

// EventChoice is one option the player can pick. Effect is the raw
// delta mapping from the wire; non-numeric and unknown keys are ignored
// when it is decoded. Action, Investment, and Loan are optional side
// effects.
type EventChoice struct {
	Text       string           `json:"text"`
	ResultText string           `json:"resultText"`
	Effect     map[string]any   `json:"effect"`
	Action     string           `json:"action,omitempty"`
	Investment *EventInvestment `json:"investment,omitempty"`
	Loan       *EventLoan       `json:"loan,omitempty"`
}

// EventInvestment describes a position to open when a choice carries
// the buy_investment action.
type EventInvestment struct {
	Type   string  `json:"type"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// EventLoan describes a loan to take when a choice carries one.
type EventLoan struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Years  int     `json:"years"`
}
