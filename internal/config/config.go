package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Generator GeneratorConfig
	Autosave  AutosaveConfig
	ExportKey string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// GeneratorConfig holds the event generator configuration. An empty
// APIKey disables the external generator and serves fallback events.
type GeneratorConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// AutosaveConfig holds the background snapshot schedule.
type AutosaveConfig struct {
	Spec string // cron spec for the autosave job
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/fortune_simulator.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Generator: GeneratorConfig{
			APIKey:  getEnv("GENERATOR_API_KEY", ""),
			BaseURL: getEnv("GENERATOR_BASE_URL", ""),
			Model:   getEnv("GENERATOR_MODEL", ""),
		},
		Autosave: AutosaveConfig{
			Spec: getEnv("AUTOSAVE_SPEC", "@every 1m"),
		},
		ExportKey: getEnv("EXPORT_KEY", ""),
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
