package model

import "strings"

// Loan is an amortizing debt instrument. Principal is fixed at issue,
// Remaining is paid down by the monthly ledger step, and MonthsLeft
// counts down to zero. Once MonthsLeft hits zero Remaining is forced to
// zero and the loan is purged at the next year boundary.
type Loan struct {
	Type           string  `json:"type"`
	TypeName       string  `json:"typeName"`
	Principal      float64 `json:"principal"`
	Remaining      float64 `json:"remaining"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	MonthsLeft     int     `json:"monthsLeft"`
	InterestRate   float64 `json:"interestRate"`
}

// LoanType describes an offered loan product.
type LoanType struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	MaxYears     int     `json:"maxYears"`
	InterestRate float64 `json:"interestRate"`
	MaxRatio     float64 `json:"maxRatio"`
}

// LoanTypes are the available loan products.
var LoanTypes = []LoanType{
	{ID: "mortgage", Name: "Mortgage", MaxYears: 30, InterestRate: 0.04, MaxRatio: 0.7},
	{ID: "car_loan", Name: "Car loan", MaxYears: 5, InterestRate: 0.05, MaxRatio: 0.8},
	{ID: "consumer", Name: "Consumer loan", MaxYears: 3, InterestRate: 0.08, MaxRatio: 1.0},
}

// LoanTypeByID looks up a loan product, case-insensitively.
// Returns nil for unknown types.
func LoanTypeByID(id string) *LoanType {
	id = strings.ToLower(id)
	for i := range LoanTypes {
		if LoanTypes[i].ID == id {
			return &LoanTypes[i]
		}
	}
	return nil
}
