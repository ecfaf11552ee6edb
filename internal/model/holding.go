package model

// Asset types a holding can be opened in. These double as the skill
// fields that bias the holding's price drift.
const (
	AssetStock    = "stock"
	AssetFund     = "fund"
	AssetCrypto   = "crypto"
	AssetBusiness = "business"
)

// ValidAssetType reports whether t names a tradable asset class.
func ValidAssetType(t string) bool {
	switch t {
	case AssetStock, AssetFund, AssetCrypto, AssetBusiness:
		return true
	}
	return false
}

// BuyTime stamps when a position was opened, in game time.
type BuyTime struct {
	Age   int `json:"age"`
	Month int `json:"month"`
}

// Holding is one open position. Shares is principal divided by the buy
// price at acquisition and is mutated by partial sells and add-ons.
// Amount tracks the current cost basis. Profit and ProfitRate are
// derived and refreshed whenever either price changes.
type Holding struct {
	ID           int     `json:"id"`
	Type         string  `json:"type"`
	Name         string  `json:"name"`
	BuyPrice     float64 `json:"buyPrice"`
	CurrentPrice float64 `json:"currentPrice"`
	Shares       float64 `json:"shares"`
	Amount       float64 `json:"amount"`
	BuyTime      BuyTime `json:"buyTime"`
	Profit       float64 `json:"profit"`
	ProfitRate   float64 `json:"profitRate"`
}

// Value is the holding's current market value.
func (h *Holding) Value() float64 {
	return h.Shares * h.CurrentPrice
}

// RefreshDerived recomputes Profit and ProfitRate from the prices and
// share count. Must be called after any price or share mutation.
func (h *Holding) RefreshDerived() {
	h.Profit = (h.CurrentPrice - h.BuyPrice) * h.Shares
	h.ProfitRate = (h.CurrentPrice - h.BuyPrice) / h.BuyPrice * 100
}
