package model

// House is a durable asset. CurrentValue starts equal to PurchasePrice;
// the engine never revalues it itself, but external systems may.
type House struct {
	Name          string  `json:"name"`
	PurchasePrice float64 `json:"purchasePrice"`
	CurrentValue  float64 `json:"currentValue"`
	PurchaseYear  int     `json:"purchaseYear"`
	MonthlyRent   float64 `json:"monthlyRent"`
	IsRented      bool    `json:"isRented"`
}

// Car is a durable asset with a flat 2000/month upkeep charged by the
// monthly ledger step.
type Car struct {
	Name          string  `json:"name"`
	PurchasePrice float64 `json:"purchasePrice"`
	CurrentValue  float64 `json:"currentValue"`
	PurchaseYear  int     `json:"purchaseYear"`
}
