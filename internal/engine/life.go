package engine

import "github.com/fortunesim/fortune-simulator-backend/internal/model"

// Marry spends the wedding cost and adds the spouse's income to the
// household. Fails when already married or when cash cannot cover the
// cost.
func (e *Engine) Marry(p *model.Player, cost, spouseIncome float64) bool {
	if p.Life.Married || p.Stats.Cash < cost {
		return false
	}

	p.Stats.Cash -= cost
	p.Life.Married = true
	p.Life.Spouse = &model.Spouse{Name: "Spouse", Income: spouseIncome}
	p.Stats.Income += spouseIncome

	e.RecalculateWealth(p)
	return true
}

// HaveBaby adds a child, which raises the monthly outlay by 3000 from
// the next ledger step on. Requires marriage and enough cash for the
// one-time cost.
func (e *Engine) HaveBaby(p *model.Player, cost float64) bool {
	if !p.Life.Married || p.Stats.Cash < cost {
		return false
	}

	p.Stats.Cash -= cost
	p.Life.Children++

	e.RecalculateWealth(p)
	return true
}

// BuyCar purchases a car at its full price. The car's value starts at
// the purchase price; upkeep is charged monthly by the ledger. Returns
// nil when cash is insufficient.
func (e *Engine) BuyCar(p *model.Player, name string, price float64) *model.Car {
	if p.Stats.Cash < price {
		return nil
	}

	p.Stats.Cash -= price
	return e.AddCar(p, name, price)
}

// AddCar records a car without touching cash. Event choices charge the
// purchase through their effect mapping instead.
func (e *Engine) AddCar(p *model.Player, name string, price float64) *model.Car {
	car := model.Car{
		Name:          name,
		PurchasePrice: price,
		CurrentValue:  price,
		PurchaseYear:  p.Age,
	}
	p.Life.Cars = append(p.Life.Cars, car)

	e.RecalculateWealth(p)
	return &p.Life.Cars[len(p.Life.Cars)-1]
}

// BuyHouse purchases a house, paying downPayment in cash now. The house
// is recorded at its full price; financing the remainder is the
// caller's concern (typically a mortgage via TakeLoan). Returns nil
// when cash cannot cover the down payment.
func (e *Engine) BuyHouse(p *model.Player, name string, price, downPayment float64) *model.House {
	if p.Stats.Cash < downPayment {
		return nil
	}

	p.Stats.Cash -= downPayment
	return e.AddHouse(p, name, price)
}

// AddHouse records a house at its full price without touching cash.
func (e *Engine) AddHouse(p *model.Player, name string, price float64) *model.House {
	house := model.House{
		Name:          name,
		PurchasePrice: price,
		CurrentValue:  price,
		PurchaseYear:  p.Age,
	}
	p.Life.Houses = append(p.Life.Houses, house)

	e.RecalculateWealth(p)
	return &p.Life.Houses[len(p.Life.Houses)-1]
}
