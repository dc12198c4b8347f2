package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/myzx/gohelper/internal/logging"
)

// Prefix is prepended to every environment variable the library reads.
const Prefix = "HELPER"

// LogConfig holds logging configuration.
type LogConfig struct {
	Enabled     bool   `envconfig:"ENABLED" default:"false"`
	Level       string `envconfig:"LEVEL" default:"warn"`
	Development bool   `envconfig:"DEV" default:"false"`
}

// Process fills spec from HELPER_<section>_* variables, applying the
// `default` tags for anything unset.
func Process(section string, spec interface{}) error {
	prefix := Prefix
	if section != "" {
		prefix = Prefix + "_" + section
	}
	if err := envconfig.Process(prefix, spec); err != nil {
		return fmt.Errorf("failed to load %s config: %w", prefix, err)
	}
	return nil
}

// LoadLogging loads logging configuration from environment variables.
func LoadLogging() (LogConfig, error) {
	var cfg LogConfig
	if err := Process("LOG", &cfg); err != nil {
		return DefaultLogging(), err
	}
	return cfg, nil
}

// DefaultLogging returns default logging configuration.
func DefaultLogging() LogConfig {
	return LogConfig{
		Enabled:     false,
		Level:       "warn",
		Development: false,
	}
}

// NewLogger builds the logger described by the environment. Logging is off
// unless HELPER_LOG_ENABLED is set; any configuration error also yields a
// no-op logger.
func NewLogger() *logging.Logger {
	cfg, err := LoadLogging()
	if err != nil || !cfg.Enabled {
		return logging.Nop()
	}

	base := logging.DefaultConfig()
	if cfg.Development {
		base = logging.DevelopmentConfig()
	}
	base.Level = cfg.Level

	logger, err := logging.New(base)
	if err != nil {
		return logging.Nop()
	}
	return logger
}
