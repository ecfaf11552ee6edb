package store_test

import (
	"errors"
	"testing"

	"github.com/fortunesim/fortune-simulator-backend/internal/apperrors"
	"github.com/fortunesim/fortune-simulator-backend/internal/model"
	"github.com/fortunesim/fortune-simulator-backend/internal/testutil"
)

// TestSaveRepository_SaveLoad tests that a snapshot round-trips without
// losing state.
//
// WHY: The snapshot is the only durability the game has. Any field
// dropped between Save and Load silently changes a resumed game.
func TestSaveRepository_SaveLoad(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := testutil.NewTestSaveRepository(t, db)
	sessionID := testutil.MakeID()

	eng := testutil.SeededEngine(1)
	player := testutil.NewPlayer().
		WithName("Morgan").
		WithAge(32).
		WithMonth(7).
		WithCash(250000).
		WithIncome(180000).
		WithSkill(model.FieldStock, 40).
		Married(60000).
		WithChildren(1).
		Build()
	eng.Buy(player, model.AssetStock, "ACME", 50000, 125)
	eng.TakeLoan(player, "consumer", 100000, 3)

	saveID, err := repo.Save(sessionID, player)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if saveID == "" {
		t.Fatal("Expected a save id")
	}

	loaded, err := repo.Load(saveID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if loaded.Name != "Morgan" || loaded.Age != 32 || loaded.Month != 7 {
		t.Errorf("Identity fields lost: %+v", loaded)
	}
	if loaded.Stats.Cash != player.Stats.Cash {
		t.Errorf("Expected cash %f, got %f", player.Stats.Cash, loaded.Stats.Cash)
	}
	if loaded.Skills[model.FieldStock] != 40 {
		t.Errorf("Expected stock skill 40, got %d", loaded.Skills[model.FieldStock])
	}
	if !loaded.Life.Married || loaded.Life.Children != 1 {
		t.Errorf("Family state lost: %+v", loaded.Life)
	}
	if len(loaded.Holdings) != 1 || loaded.Holdings[0].Shares != 400 {
		t.Fatalf("Holdings lost: %+v", loaded.Holdings)
	}
	if loaded.Holdings[0].Amount != loaded.Holdings[0].Shares*loaded.Holdings[0].CurrentPrice {
		t.Error("Expected derived holding fields restored on load")
	}
	if len(loaded.Loans) != 1 || loaded.Loans[0].MonthsLeft != 36 {
		t.Fatalf("Loans lost: %+v", loaded.Loans)
	}
}

// TestSaveRepository_Load_NotFound tests the missing-save sentinel.
func TestSaveRepository_Load_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := testutil.NewTestSaveRepository(t, db)

	_, err := repo.Load(testutil.MakeID())

	if !errors.Is(err, apperrors.ErrSaveNotFound) {
		t.Errorf("Expected ErrSaveNotFound, got %v", err)
	}
}

// TestSaveRepository_List tests metadata listing order and scoping.
func TestSaveRepository_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := testutil.NewTestSaveRepository(t, db)
	sessionID := testutil.MakeID()

	young := testutil.NewPlayer().WithName("Kim").WithAge(25).Build()
	older := testutil.NewPlayer().WithName("Kim").WithAge(26).WithCash(150000).Build()

	if _, err := repo.Save(sessionID, young); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := repo.Save(sessionID, older); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := repo.Save(testutil.MakeID(), testutil.NewPlayer().Build()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	saves, err := repo.List(sessionID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(saves) != 2 {
		t.Fatalf("Expected 2 saves for the session, got %d", len(saves))
	}
	if saves[0].CreatedAt.Before(saves[1].CreatedAt) {
		t.Error("Expected newest save first")
	}
	for _, s := range saves {
		if s.SessionID != sessionID || s.Name != "Kim" {
			t.Errorf("Unexpected metadata: %+v", s)
		}
	}
}

// TestSaveRepository_LoadLatest tests that the newest snapshot wins.
func TestSaveRepository_LoadLatest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := testutil.NewTestSaveRepository(t, db)
	sessionID := testutil.MakeID()

	if _, err := repo.Save(sessionID, testutil.NewPlayer().WithAge(25).Build()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := repo.Save(sessionID, testutil.NewPlayer().WithAge(30).Build()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	loaded, err := repo.LoadLatest(sessionID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if loaded.Age != 30 {
		t.Errorf("Expected the age-30 snapshot, got age %d", loaded.Age)
	}

	_, err = repo.LoadLatest(testutil.MakeID())
	if !errors.Is(err, apperrors.ErrSaveNotFound) {
		t.Errorf("Expected ErrSaveNotFound for unknown session, got %v", err)
	}
}

// TestSaveRepository_Delete tests removal and the missing-row sentinel.
func TestSaveRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := testutil.NewTestSaveRepository(t, db)
	sessionID := testutil.MakeID()

	saveID, err := repo.Save(sessionID, testutil.NewPlayer().Build())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := repo.Delete(saveID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := repo.Load(saveID); !errors.Is(err, apperrors.ErrSaveNotFound) {
		t.Errorf("Expected the save gone, got %v", err)
	}
	if err := repo.Delete(saveID); !errors.Is(err, apperrors.ErrSaveNotFound) {
		t.Errorf("Expected ErrSaveNotFound on double delete, got %v", err)
	}
}
