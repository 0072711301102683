package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the server configuration with environment-based defaults.
// The database path is the single external resource the server consumes;
// it is never discovered or searched for.
type Config struct {
	DatabasePath string
	ReadOnly     bool
	MaxResults   int
	LogLevel     slog.Level
}

// Load reads configuration from environment variables, consulting a .env
// file first when one exists.
//
// Environment variables:
//
//	MONEYWIZ_DB_PATH   path to the MoneyWiz SQLite database (required)
//	MONEYWIZ_READ_ONLY open the store read-only (default true)
//	MAX_RESULTS        result cap per query (default 1000)
//	LOG_LEVEL          debug, info, warn or error (default info)
func Load() (*Config, error) {
	// Missing .env is fine; explicit env vars still apply
	_ = godotenv.Load()

	dbPath := os.Getenv("MONEYWIZ_DB_PATH")
	if dbPath == "" {
		return nil, fmt.Errorf("MONEYWIZ_DB_PATH is not set; point it at the MoneyWiz SQLite database")
	}

	cfg := &Config{
		DatabasePath: dbPath,
		ReadOnly:     getBoolEnv("MONEYWIZ_READ_ONLY", true),
		MaxResults:   getIntEnv("MAX_RESULTS", 1000),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration without touching the store
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.MaxResults <= 0 {
		return fmt.Errorf("MAX_RESULTS must be positive, got %d", c.MaxResults)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
