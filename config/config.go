// Package config reads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
)

// Config holds the server settings. ALLOWED_ORIGINS is a semicolon separated list.
type Config struct {
	Port           int           `env:"PORT,default=8000"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS,default=*"`
	CheckWait      time.Duration `env:"CHECK_WAIT,default=10s"`
	JournalEnabled bool          `env:"JOURNAL_ENABLED,default=true"`
	JournalPath    string        `env:"JOURNAL_PATH,default=moves.db"`
	LogLevel       string        `env:"LOG_LEVEL,default=info"`
}

// Load decodes the environment, falling back to defaults
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("could not read config: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.CheckWait <= 0 {
		return Config{}, fmt.Errorf("check wait must be positive, got %s", cfg.CheckWait)
	}

	return cfg, nil
}

// Addr is the address to listen on
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Journaled reports whether moves should be written to the journal.
// An empty JOURNAL_PATH falls back to the default, so JOURNAL_ENABLED turns it off.
func (c Config) Journaled() bool {
	return c.JournalEnabled && c.JournalPath != ""
}
