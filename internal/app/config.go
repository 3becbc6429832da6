package app

import (
	"fmt"
	"os"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/contentgen"
)

// Config holds process-level settings. Values come from the environment via
// ConfigFromEnv; an empty DatabaseDSN selects the in-memory stores.
type Config struct {
	// DatabaseDSN is a postgres:// URL or a SQLite file path. Empty means
	// keep everything in memory for the lifetime of the process.
	DatabaseDSN string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// Content configures the generation providers. Content generation is
	// optional: with no provider key set, the planning and session
	// surfaces still work.
	Content contentgen.Config
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Content:  contentgen.DefaultConfig(),
	}
}

// ConfigFromEnv builds a Config from APP_* environment variables, falling
// back to defaults for anything unset.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("APP_DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("APP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	cfg.Content = contentgen.ConfigFromEnv()
	return cfg
}

// Validate checks settings that would otherwise fail deep inside a request.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
