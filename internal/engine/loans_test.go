package engine_test

import (
	"math"
	"testing"

	"github.com/fortunesim/fortune-simulator-backend/internal/testutil"
)

// TestEngine_TakeLoan tests loan issuance and the annuity payment.
func TestEngine_TakeLoan(t *testing.T) {
	t.Run("computes the standard annuity payment", func(t *testing.T) {
		eng := testutil.SeededEngine(1)
		p := testutil.NewPlayer().WithCash(0).Build()

		loan := eng.TakeLoan(p, "mortgage", 1000000, 30)

		if loan == nil {
			t.Fatal("Expected loan")
		}

		mr := 0.04 / 12
		growth := math.Pow(1+mr, 360)
		want := math.Round(1000000 * mr * growth / (growth - 1))
		if loan.MonthlyPayment != want {
			t.Errorf("Expected payment %f, got %f", want, loan.MonthlyPayment)
		}
		if loan.MonthsLeft != 360 {
			t.Errorf("Expected 360 months, got %d", loan.MonthsLeft)
		}
		if loan.Remaining != 1000000 {
			t.Errorf("Expected remaining equal to principal, got %f", loan.Remaining)
		}
	})

	t.Run("disburses the principal to cash", func(t *testing.T) {
		eng := testutil.SeededEngine(1)
		p := testutil.NewPlayer().WithCash(50000).Build()

		eng.TakeLoan(p, "car_loan", 100000, 5)

		if p.Stats.Cash != 150000 {
			t.Errorf("Expected cash 150000, got %f", p.Stats.Cash)
		}
		// Cash up, debt up by the same amount: net worth unchanged.
		assertWealthIdentity(t, p)
	})

	t.Run("loan type is case-insensitive", func(t *testing.T) {
		eng := testutil.SeededEngine(1)
		p := testutil.NewPlayer().Build()

		loan := eng.TakeLoan(p, "Mortgage", 100000, 10)

		if loan == nil {
			t.Fatal("Expected loan for mixed-case type")
		}
		if loan.Type != "mortgage" {
			t.Errorf("Expected canonical type id, got %s", loan.Type)
		}
	})

	t.Run("unknown type returns nil", func(t *testing.T) {
		eng := testutil.SeededEngine(1)
		p := testutil.NewPlayer().WithCash(100).Build()

		if loan := eng.TakeLoan(p, "payday", 1000, 1); loan != nil {
			t.Error("Expected nil for unknown loan type")
		}
		if p.Stats.Cash != 100 {
			t.Errorf("Expected cash untouched, got %f", p.Stats.Cash)
		}
	})
}
