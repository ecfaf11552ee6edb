package config_test

import (
	"testing"

	"github.com/fortunesim/fortune-simulator-backend/internal/config"
)

// TestLoad_Defaults tests the fallback configuration used when no
// environment is set.
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SERVER_HOST", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("GENERATOR_API_KEY", "")
	t.Setenv("AUTOSAVE_SPEC", "")

	cfg, err := config.Load()

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Server.Addr != "localhost:5001" {
		t.Errorf("Expected localhost:5001, got %s", cfg.Server.Addr)
	}
	if cfg.Database.Path != "./data/fortune_simulator.db" {
		t.Errorf("Unexpected database path: %s", cfg.Database.Path)
	}
	if cfg.Generator.APIKey != "" {
		t.Error("Expected the generator disabled by default")
	}
	if cfg.Autosave.Spec != "@every 1m" {
		t.Errorf("Unexpected autosave spec: %s", cfg.Autosave.Spec)
	}
}

// TestLoad_Overrides tests that environment variables win over defaults.
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("DB_PATH", "/tmp/sim.db")
	t.Setenv("GENERATOR_API_KEY", "sk-test")
	t.Setenv("GENERATOR_MODEL", "gpt-4o")
	t.Setenv("AUTOSAVE_SPEC", "@every 5m")

	cfg, err := config.Load()

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Server.Addr != "0.0.0.0:8080" {
		t.Errorf("Expected 0.0.0.0:8080, got %s", cfg.Server.Addr)
	}
	if cfg.Database.Path != "/tmp/sim.db" {
		t.Errorf("Unexpected database path: %s", cfg.Database.Path)
	}
	if cfg.Generator.APIKey != "sk-test" || cfg.Generator.Model != "gpt-4o" {
		t.Errorf("Unexpected generator config: %+v", cfg.Generator)
	}
	if cfg.Autosave.Spec != "@every 5m" {
		t.Errorf("Unexpected autosave spec: %s", cfg.Autosave.Spec)
	}
}
