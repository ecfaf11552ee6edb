package engine

import "github.com/fortunesim/fortune-simulator-backend/internal/model"

// Terminal conditions checked at year rollover.
const (
	maxAge         = 100
	bankruptcyCash = -1000000
)

// SpendTime advances the player's month counter and runs the monthly
// ledger step once per month consumed. Months never batch into a single
// multiplication: loan balances mutate per step, so each month must see
// the balance its predecessor left behind. Negative input is ignored.
func (e *Engine) SpendTime(p *model.Player, months int) {
	if months < 0 {
		return
	}
	p.Month += months
	for i := 0; i < months; i++ {
		e.processMonth(p)
	}
}

// processMonth runs one monthly ledger step, in order: salary credit,
// expense aggregation with per-loan amortization, expense debit,
// passive income credit, and the small monthly reprice of holdings.
func (e *Engine) processMonth(p *model.Player) {
	p.Stats.Cash += p.Stats.Income / 12

	totalExpense := p.Stats.MonthlyExpense
	totalExpense += float64(p.Life.Children) * 3000
	totalExpense += float64(len(p.Life.Cars)) * 2000

	for _, loan := range p.Loans {
		if loan.MonthsLeft <= 0 {
			continue
		}
		totalExpense += loan.MonthlyPayment
		loan.MonthsLeft--
		// Interest accrues on the pre-payment balance; this recurrence
		// is the contract, not a textbook amortization schedule.
		loan.Remaining -= loan.MonthlyPayment - loan.Remaining*loan.InterestRate/12
		if loan.MonthsLeft <= 0 {
			loan.Remaining = 0
		}
	}

	p.Stats.Cash -= totalExpense
	p.Stats.Cash += p.PassiveIncome / 12

	e.repriceMonthly(p)
}

// NextYear rolls the player into the next year: age advances, the month
// resets, holdings take their large yearly reprice, wealth is
// recomputed, paid-off loans are purged, and the terminal conditions
// are evaluated. Returns whether the player is still in the game.
func (e *Engine) NextYear(p *model.Player) bool {
	p.Age++
	p.Month = 1

	e.repriceYearly(p)
	e.RecalculateWealth(p)

	active := p.Loans[:0]
	for _, loan := range p.Loans {
		if loan.MonthsLeft > 0 {
			active = append(active, loan)
		}
	}
	p.Loans = active

	if p.Age >= maxAge || p.Stats.Cash < bankruptcyCash {
		p.IsAlive = false
	}
	return p.IsAlive
}
