package actions_test

import (
	"testing"

	"github.com/fortunesim/fortune-simulator-backend/internal/actions"
	"github.com/fortunesim/fortune-simulator-backend/internal/testutil"
)

// TestByID tests catalog lookup.
func TestByID(t *testing.T) {
	t.Run("finds a known action", func(t *testing.T) {
		a := actions.ByID("buy_stock")

		if a == nil {
			t.Fatal("Expected buy_stock in the catalog")
		}
		if a.Category != actions.CategoryInvest {
			t.Errorf("Expected category invest, got %s", a.Category)
		}
		if a.TimeMonths != 1 {
			t.Errorf("Expected 1 month, got %d", a.TimeMonths)
		}
	})

	t.Run("returns nil for unknown ids", func(t *testing.T) {
		if a := actions.ByID("rob_bank"); a != nil {
			t.Errorf("Expected nil, got %+v", a)
		}
	})
}

// TestByCategory tests category filtering preserves catalog order.
func TestByCategory(t *testing.T) {
	study := actions.ByCategory(actions.CategoryStudy)

	if len(study) != 6 {
		t.Fatalf("Expected 6 study actions, got %d", len(study))
	}
	if study[0].ID != "study_stock" {
		t.Errorf("Expected study_stock first, got %s", study[0].ID)
	}
	for _, a := range study {
		if a.Category != actions.CategoryStudy {
			t.Errorf("Action %s has category %s", a.ID, a.Category)
		}
	}
}

// TestAvailable tests the availability gates.
//
// WHY: The catalog is offered to the client verbatim, so a gate that
// fails open lets players start actions the executor will then reject
// mid-flow.
func TestAvailable(t *testing.T) {
	contains := func(list []actions.Action, id string) bool {
		for _, a := range list {
			if a.ID == id {
				return true
			}
		}
		return false
	}

	t.Run("rich single player sees everything except have_baby", func(t *testing.T) {
		player := testutil.NewPlayer().WithCash(1000000).Build()

		avail := actions.Available(player)

		if len(avail) != len(actions.Catalog)-1 {
			t.Errorf("Expected %d actions, got %d", len(actions.Catalog)-1, len(avail))
		}
		if contains(avail, "have_baby") {
			t.Error("Expected have_baby hidden while unmarried")
		}
	})

	t.Run("time left in the year gates long actions", func(t *testing.T) {
		// Month 12 leaves a single month.
		player := testutil.NewPlayer().WithCash(1000000).WithMonth(12).Build()

		avail := actions.Available(player)

		if contains(avail, "start_business") {
			t.Error("Expected 6-month action hidden with 1 month left")
		}
		if !contains(avail, "skip_month") {
			t.Error("Expected 1-month action still offered")
		}
	})

	t.Run("min cash and cost both gate", func(t *testing.T) {
		player := testutil.NewPlayer().WithCash(4000).Build()

		avail := actions.Available(player)

		if contains(avail, "buy_fund") {
			t.Error("Expected buy_fund hidden below its 5000 minimum")
		}
		if contains(avail, "study_stock") {
			t.Error("Expected study_stock hidden when cash cannot cover the fee")
		}
		if !contains(avail, "rest") {
			t.Error("Expected rest offered at 4000 cash")
		}
	})

	t.Run("marriage flips the life gates", func(t *testing.T) {
		player := testutil.NewPlayer().WithCash(1000000).Married(60000).Build()

		avail := actions.Available(player)

		if contains(avail, "marry") || contains(avail, "dating") {
			t.Error("Expected marry and dating hidden once married")
		}
		if !contains(avail, "have_baby") {
			t.Error("Expected have_baby offered to a married player")
		}
	})

	t.Run("third child closes have_baby", func(t *testing.T) {
		player := testutil.NewPlayer().
			WithCash(1000000).
			Married(60000).
			WithChildren(3).
			Build()

		if contains(actions.Available(player), "have_baby") {
			t.Error("Expected have_baby hidden at 3 children")
		}
	})
}
