package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/fortunesim/fortune-simulator-backend/internal/engine"
	"github.com/fortunesim/fortune-simulator-backend/internal/generator"
	"github.com/fortunesim/fortune-simulator-backend/internal/service"
	"github.com/fortunesim/fortune-simulator-backend/internal/store"
)

// testExportKey is a fixed fernet key so export/import tests are stable.
const testExportKey = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="

// SeededEngine creates an engine with a deterministic random source.
//
// Example usage:
//
//	eng := testutil.SeededEngine(42)
//	player := eng.NewPlayer(25, 100000)
func SeededEngine(seed int64) *engine.Engine {
	//nolint:gosec // G404: deterministic randomness is the point in tests
	return engine.New(rand.New(rand.NewSource(seed)))
}

// NewTestGameService creates a GameService backed by the given test
// database, with the external generator disabled (fallback events only)
// and a fixed export key.
func NewTestGameService(t *testing.T, db *sql.DB) *service.GameService {
	t.Helper()

	saves := store.NewSaveRepository(db)
	gen := generator.NewClient("", "", "", rand.New(rand.NewSource(1))) //nolint:gosec // G404: test determinism

	exporter, err := store.NewExporter(testExportKey)
	if err != nil {
		t.Fatalf("Failed to create test exporter: %v", err)
	}

	return service.NewGameService(saves, gen, exporter)
}

// NewTestSaveRepository creates a SaveRepository over the test database.
func NewTestSaveRepository(t *testing.T, db *sql.DB) *store.SaveRepository {
	t.Helper()

	return store.NewSaveRepository(db)
}

// NewTestExporter creates an Exporter with the fixed test key.
func NewTestExporter(t *testing.T) *store.Exporter {
	t.Helper()

	exporter, err := store.NewExporter(testExportKey)
	if err != nil {
		t.Fatalf("Failed to create test exporter: %v", err)
	}
	return exporter
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakePlayerName generates a unique player name for testing.
//
// Example usage:
//
//	name := testutil.MakePlayerName("Tester")
//	// Returns: "Tester ABC123"
func MakePlayerName(base string) string {
	if base == "" {
		base = "Player"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
