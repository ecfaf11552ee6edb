package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fortunesim/fortune-simulator-backend/internal/actions"
	"github.com/fortunesim/fortune-simulator-backend/internal/apperrors"
	"github.com/fortunesim/fortune-simulator-backend/internal/model"
	"github.com/fortunesim/fortune-simulator-backend/internal/testutil"
)

// TestGameService_NewGame tests session creation and input clamping.
func TestGameService_NewGame(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestGameService(t, db)

	t.Run("creates a live session", func(t *testing.T) {
		state, err := svc.NewGame("Tester", 25, 100000)

		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if state.SessionID == "" {
			t.Fatal("Expected a session id")
		}
		if state.Player.Name != "Tester" || state.Player.Age != 25 {
			t.Errorf("Unexpected player: %+v", state.Player)
		}
		if state.Player.Stats.Cash != 100000 {
			t.Errorf("Expected starting cash 100000, got %f", state.Player.Stats.Cash)
		}
		if state.GameOver {
			t.Error("Expected a fresh game to be running")
		}
		if state.Stage.Name == "" {
			t.Error("Expected a life stage")
		}
	})

	t.Run("clamps starting age into range", func(t *testing.T) {
		tooYoung, err := svc.NewGame("Kid", 12, 0)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if tooYoung.Player.Age != 18 {
			t.Errorf("Expected age clamped to 18, got %d", tooYoung.Player.Age)
		}

		tooOld, err := svc.NewGame("Elder", 75, 0)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if tooOld.Player.Age != 60 {
			t.Errorf("Expected age clamped to 60, got %d", tooOld.Player.Age)
		}
	})

	t.Run("rejects negative starting wealth", func(t *testing.T) {
		_, err := svc.NewGame("Debtor", 25, -1)

		if !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("Expected ErrNegativeAmount, got %v", err)
		}
	})
}

// TestGameService_SessionLookup tests the unknown-session sentinel
// across read paths.
func TestGameService_SessionLookup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestGameService(t, db)

	if _, err := svc.Get(testutil.MakeID()); !errors.Is(err, apperrors.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound from Get, got %v", err)
	}
	if _, err := svc.AvailableActions(testutil.MakeID()); !errors.Is(err, apperrors.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound from AvailableActions, got %v", err)
	}
	if _, _, err := svc.PerformAction(testutil.MakeID(), "rest", actions.Params{}); !errors.Is(err, apperrors.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound from PerformAction, got %v", err)
	}
}

// TestGameService_PerformAction tests the action flow: time first, then
// the executor, then the event roll.
func TestGameService_PerformAction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestGameService(t, db)

	t.Run("skip_month advances the clock and settles the ledger", func(t *testing.T) {
		created, err := svc.NewGame("Tester", 25, 100000)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		income := created.Player.Stats.Income

		result, state, err := svc.PerformAction(created.SessionID, "skip_month", actions.Params{})

		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !result.Success {
			t.Error("Expected skip_month to succeed")
		}
		if state.Player.Month != 2 {
			t.Errorf("Expected month 2, got %d", state.Player.Month)
		}
		expected := 100000 + income/12 - 5000
		if state.Player.Stats.Cash != expected {
			t.Errorf("Expected cash %f, got %f", expected, state.Player.Stats.Cash)
		}
	})

	t.Run("rejects unknown actions", func(t *testing.T) {
		created, _ := svc.NewGame("Tester", 25, 100000)

		_, _, err := svc.PerformAction(created.SessionID, "rob_bank", actions.Params{})

		if !errors.Is(err, apperrors.ErrUnknownAction) {
			t.Errorf("Expected ErrUnknownAction, got %v", err)
		}
	})

	t.Run("rejects actions the player cannot afford", func(t *testing.T) {
		created, _ := svc.NewGame("Broke", 25, 1000)

		_, _, err := svc.PerformAction(created.SessionID, "marry", actions.Params{})

		if !errors.Is(err, apperrors.ErrInsufficientCash) {
			t.Errorf("Expected ErrInsufficientCash, got %v", err)
		}
	})

	t.Run("rejects condition-gated actions", func(t *testing.T) {
		created, _ := svc.NewGame("Single", 25, 1000000)

		_, _, err := svc.PerformAction(created.SessionID, "have_baby", actions.Params{})

		if !errors.Is(err, apperrors.ErrActionUnavailable) {
			t.Errorf("Expected ErrActionUnavailable, got %v", err)
		}
	})

	t.Run("pending event blocks further actions", func(t *testing.T) {
		created, _ := svc.NewGame("Tester", 25, 100000)
		if _, err := svc.TriggerEvent(context.Background(), created.SessionID); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		_, _, err := svc.PerformAction(created.SessionID, "skip_month", actions.Params{})

		if !errors.Is(err, apperrors.ErrEventPending) {
			t.Errorf("Expected ErrEventPending, got %v", err)
		}
	})
}

// TestGameService_TriggerEvent tests event generation against a session.
//
// WHY: Generation runs outside the session lock on a snapshot copy. If
// it ever mutated live state, a failed generator call could corrupt the
// game mid-flight.
func TestGameService_TriggerEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestGameService(t, db)

	t.Run("serves the fallback when the generator is disabled", func(t *testing.T) {
		created, _ := svc.NewGame("Tester", 25, 100000)

		event, err := svc.TriggerEvent(context.Background(), created.SessionID)

		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if event == nil || event.Title != "Quiet Month" {
			t.Fatalf("Expected the fallback event, got %+v", event)
		}

		state, _ := svc.Get(created.SessionID)
		if state.PendingEvent == nil {
			t.Error("Expected the event parked as pending")
		}
	})

	t.Run("does not mutate the player", func(t *testing.T) {
		created, _ := svc.NewGame("Tester", 25, 100000)
		before, _ := svc.Get(created.SessionID)

		if _, err := svc.TriggerEvent(context.Background(), created.SessionID); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		after, _ := svc.Get(created.SessionID)
		if after.Player.Stats.Cash != before.Player.Stats.Cash || after.Player.Month != before.Player.Month {
			t.Error("Expected player untouched by generation")
		}
	})

	t.Run("repeated calls return the same pending event", func(t *testing.T) {
		created, _ := svc.NewGame("Tester", 25, 100000)

		first, _ := svc.TriggerEvent(context.Background(), created.SessionID)
		second, _ := svc.TriggerEvent(context.Background(), created.SessionID)

		if first != second {
			t.Error("Expected the parked event returned, not a fresh one")
		}
	})
}

// TestGameService_ResolveChoice tests choice resolution order: time,
// side action, effect, log.
func TestGameService_ResolveChoice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestGameService(t, db)

	t.Run("applies the chosen effect and logs the event", func(t *testing.T) {
		created, _ := svc.NewGame("Tester", 25, 100000)
		event, _ := svc.TriggerEvent(context.Background(), created.SessionID)
		before, _ := svc.Get(created.SessionID)
		insightBefore := before.Player.Stats.Insight

		// Fallback choice 0 grants 2 insight.
		choice, state, err := svc.ResolveChoice(created.SessionID, 0)

		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if choice.Text != event.Choices[0].Text {
			t.Errorf("Expected choice 0 returned, got %q", choice.Text)
		}
		if state.Player.Month != 2 {
			t.Errorf("Expected the event month spent, got month %d", state.Player.Month)
		}
		if state.Player.Stats.Insight != insightBefore+2 {
			t.Errorf("Expected insight %d, got %d", insightBefore+2, state.Player.Stats.Insight)
		}
		if state.PendingEvent != nil {
			t.Error("Expected pending event cleared")
		}
		if len(state.Player.LifeLog) != 1 || state.Player.LifeLog[0].Event != event.Title {
			t.Errorf("Expected the event logged, got %+v", state.Player.LifeLog)
		}
	})

	t.Run("rejects resolution without a pending event", func(t *testing.T) {
		created, _ := svc.NewGame("Tester", 25, 100000)

		_, _, err := svc.ResolveChoice(created.SessionID, 0)

		if !errors.Is(err, apperrors.ErrNoPendingEvent) {
			t.Errorf("Expected ErrNoPendingEvent, got %v", err)
		}
	})

	t.Run("rejects out-of-range choices", func(t *testing.T) {
		created, _ := svc.NewGame("Tester", 25, 100000)
		event, _ := svc.TriggerEvent(context.Background(), created.SessionID)

		_, _, err := svc.ResolveChoice(created.SessionID, len(event.Choices))

		if !errors.Is(err, apperrors.ErrInvalidChoice) {
			t.Errorf("Expected ErrInvalidChoice, got %v", err)
		}
		if _, _, err := svc.ResolveChoice(created.SessionID, -1); !errors.Is(err, apperrors.ErrInvalidChoice) {
			t.Errorf("Expected ErrInvalidChoice for -1, got %v", err)
		}
	})
}

// TestGameService_NextYear tests the year rollover guardrails.
func TestGameService_NextYear(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestGameService(t, db)

	t.Run("advances age and resets the month", func(t *testing.T) {
		created, _ := svc.NewGame("Tester", 25, 100000)

		state, err := svc.NextYear(created.SessionID)

		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if state.Player.Age != 26 || state.Player.Month != 1 {
			t.Errorf("Expected age 26 month 1, got age %d month %d", state.Player.Age, state.Player.Month)
		}
	})

	t.Run("blocked while an event is pending", func(t *testing.T) {
		created, _ := svc.NewGame("Tester", 25, 100000)
		if _, err := svc.TriggerEvent(context.Background(), created.SessionID); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		_, err := svc.NextYear(created.SessionID)

		if !errors.Is(err, apperrors.ErrEventPending) {
			t.Errorf("Expected ErrEventPending, got %v", err)
		}
	})
}

// TestGameService_Holdings tests the direct portfolio operations.
func TestGameService_Holdings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestGameService(t, db)

	t.Run("buy, add, and sell a position", func(t *testing.T) {
		created, _ := svc.NewGame("Investor", 25, 100000)

		h, err := svc.BuyHolding(created.SessionID, model.AssetStock, "ACME", 20000, 100)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if h.Shares != 200 {
			t.Errorf("Expected 200 shares, got %f", h.Shares)
		}

		grown, err := svc.AddToHolding(created.SessionID, h.ID, 10000)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if grown.Shares != 300 {
			t.Errorf("Expected 300 shares, got %f", grown.Shares)
		}

		result, err := svc.SellHolding(created.SessionID, h.ID, 1)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if result.Cash != 30000 {
			t.Errorf("Expected 30000 proceeds, got %f", result.Cash)
		}

		state, _ := svc.Get(created.SessionID)
		if len(state.Player.Holdings) != 0 {
			t.Errorf("Expected position closed, got %+v", state.Player.Holdings)
		}
	})

	t.Run("input validation", func(t *testing.T) {
		created, _ := svc.NewGame("Investor", 25, 100000)

		if _, err := svc.BuyHolding(created.SessionID, "bonds", "T-Bill", 1000, 0); !errors.Is(err, apperrors.ErrUnknownAssetType) {
			t.Errorf("Expected ErrUnknownAssetType, got %v", err)
		}
		if _, err := svc.BuyHolding(created.SessionID, model.AssetStock, "ACME", 0, 0); !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("Expected ErrNegativeAmount, got %v", err)
		}
		if _, err := svc.BuyHolding(created.SessionID, model.AssetStock, "ACME", 500000, 0); !errors.Is(err, apperrors.ErrInsufficientCash) {
			t.Errorf("Expected ErrInsufficientCash, got %v", err)
		}
		if _, err := svc.SellHolding(created.SessionID, 99, 1); !errors.Is(err, apperrors.ErrHoldingNotFound) {
			t.Errorf("Expected ErrHoldingNotFound, got %v", err)
		}
		if _, err := svc.AddToHolding(created.SessionID, 99, 1000); !errors.Is(err, apperrors.ErrHoldingNotFound) {
			t.Errorf("Expected ErrHoldingNotFound, got %v", err)
		}
	})
}

// TestGameService_LoansAndStudy tests the remaining direct operations.
func TestGameService_LoansAndStudy(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestGameService(t, db)

	t.Run("take a loan", func(t *testing.T) {
		created, _ := svc.NewGame("Borrower", 25, 100000)

		loan, err := svc.TakeLoan(created.SessionID, "mortgage", 1000000, 30)

		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if loan.MonthsLeft != 360 {
			t.Errorf("Expected 360 months, got %d", loan.MonthsLeft)
		}

		state, _ := svc.Get(created.SessionID)
		if state.Player.Stats.Cash != 1100000 {
			t.Errorf("Expected principal credited, cash %f", state.Player.Stats.Cash)
		}
	})

	t.Run("loan validation", func(t *testing.T) {
		created, _ := svc.NewGame("Borrower", 25, 100000)

		if _, err := svc.TakeLoan(created.SessionID, "payday", 1000, 1); !errors.Is(err, apperrors.ErrUnknownLoanType) {
			t.Errorf("Expected ErrUnknownLoanType, got %v", err)
		}
		if _, err := svc.TakeLoan(created.SessionID, "mortgage", 0, 30); !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("Expected ErrNegativeAmount, got %v", err)
		}
	})

	t.Run("study a skill", func(t *testing.T) {
		created, _ := svc.NewGame("Student", 25, 100000)

		gain, err := svc.StudySkill(created.SessionID, model.FieldStock, 100)

		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if gain != 5 {
			t.Errorf("Expected 5 levels at skill 0, got %d", gain)
		}

		if _, err := svc.StudySkill(created.SessionID, "piano", 100); !errors.Is(err, apperrors.ErrUnknownSkillField) {
			t.Errorf("Expected ErrUnknownSkillField, got %v", err)
		}
		if _, err := svc.StudySkill(created.SessionID, model.FieldStock, 0); !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("Expected ErrNegativeAmount, got %v", err)
		}
	})
}

// TestGameService_Persistence tests save, list, load, and the export
// token path end to end.
func TestGameService_Persistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestGameService(t, db)

	t.Run("save and load into a fresh session", func(t *testing.T) {
		created, _ := svc.NewGame("Saver", 30, 500000)

		saveID, err := svc.Save(created.SessionID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		saves, err := svc.Saves(created.SessionID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(saves) != 1 || saves[0].ID != saveID {
			t.Fatalf("Unexpected save list: %+v", saves)
		}

		loaded, err := svc.Load(saveID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if loaded.SessionID == created.SessionID {
			t.Error("Expected the load to open a fresh session")
		}
		if loaded.Player.Name != "Saver" || loaded.Player.Stats.Cash != 500000 {
			t.Errorf("Loaded player mismatch: %+v", loaded.Player)
		}
	})

	t.Run("load of unknown save id", func(t *testing.T) {
		if _, err := svc.Load(testutil.MakeID()); !errors.Is(err, apperrors.ErrSaveNotFound) {
			t.Errorf("Expected ErrSaveNotFound, got %v", err)
		}
	})

	t.Run("export and import round trip", func(t *testing.T) {
		created, _ := svc.NewGame("Nomad", 35, 250000)

		token, err := svc.Export(created.SessionID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		imported, err := svc.Import(token)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if imported.SessionID == created.SessionID {
			t.Error("Expected import to open a fresh session")
		}
		if imported.Player.Name != "Nomad" || imported.Player.Stats.Cash != 250000 {
			t.Errorf("Imported player mismatch: %+v", imported.Player)
		}
	})

	t.Run("import rejects a tampered token", func(t *testing.T) {
		created, _ := svc.NewGame("Nomad", 35, 250000)
		token, _ := svc.Export(created.SessionID)

		broken := []byte(token)
		broken[len(broken)/2] ^= 0x01

		if _, err := svc.Import(string(broken)); err == nil {
			t.Error("Expected tampered token rejected")
		}
	})
}

// TestGameService_AutosaveAll tests the dirty-session sweep.
func TestGameService_AutosaveAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestGameService(t, db)

	first, _ := svc.NewGame("One", 25, 100000)
	second, _ := svc.NewGame("Two", 25, 100000)

	saved, err := svc.AutosaveAll()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if saved != 2 {
		t.Errorf("Expected both fresh sessions swept, got %d", saved)
	}

	// Nothing changed since the sweep, so nothing to write.
	saved, err = svc.AutosaveAll()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if saved != 0 {
		t.Errorf("Expected no dirty sessions, got %d", saved)
	}

	// Progress marks the session dirty again.
	if _, _, err := svc.PerformAction(first.SessionID, "skip_month", actions.Params{}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	saved, _ = svc.AutosaveAll()
	if saved != 1 {
		t.Errorf("Expected one dirty session, got %d", saved)
	}

	saves, err := svc.Saves(second.SessionID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(saves) != 1 {
		t.Errorf("Expected one snapshot for the idle session, got %d", len(saves))
	}
}
