package engine

import (
	"math"

	"github.com/fortunesim/fortune-simulator-backend/internal/model"
)

// TakeLoan issues an amortizing loan and disburses the proceeds to cash
// immediately. The payment is the standard annuity that fully amortizes
// principal and interest over the term, rounded to the nearest currency
// unit. Returns nil for an unknown loan type. Amortization itself is
// driven exclusively by the monthly ledger step.
func (e *Engine) TakeLoan(p *model.Player, loanType string, amount float64, years int) *model.Loan {
	lt := model.LoanTypeByID(loanType)
	if lt == nil {
		return nil
	}

	monthlyRate := lt.InterestRate / 12
	months := years * 12
	growth := math.Pow(1+monthlyRate, float64(months))
	payment := amount * monthlyRate * growth / (growth - 1)

	loan := &model.Loan{
		Type:           lt.ID,
		TypeName:       lt.Name,
		Principal:      amount,
		Remaining:      amount,
		MonthlyPayment: math.Round(payment),
		MonthsLeft:     months,
		InterestRate:   lt.InterestRate,
	}

	p.Loans = append(p.Loans, loan)
	p.Stats.Cash += amount

	e.RecalculateWealth(p)
	return loan
}
