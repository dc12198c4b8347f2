package client

import (
	"time"

	"github.com/myzx/gohelper/internal/config"
)

// Config holds client settings. Environment variables use the HELPER_HTTP_
// prefix, e.g. HELPER_HTTP_TIMEOUT=10s.
type Config struct {
	Timeout        time.Duration `envconfig:"TIMEOUT" default:"30s"`
	ConnectTimeout time.Duration `envconfig:"CONNECT_TIMEOUT" default:"5s"`
	MaxRedirects   int           `envconfig:"MAX_REDIRECTS" default:"5"`
	UserAgent      string        `envconfig:"USER_AGENT" default:"gohelper-http/1.0"`
	RetryCount     int           `envconfig:"RETRY_COUNT" default:"0"`
	RetryWait      time.Duration `envconfig:"RETRY_WAIT" default:"1s"`
	RetryMaxWait   time.Duration `envconfig:"RETRY_MAX_WAIT" default:"30s"`
	RateLimit      float64       `envconfig:"RATE_LIMIT" default:"0"` // requests per second, 0 = unlimited
}

// DefaultConfig returns the settings used by Default.
func DefaultConfig() Config {
	return Config{
		Timeout:        30 * time.Second,
		ConnectTimeout: 5 * time.Second,
		MaxRedirects:   5,
		UserAgent:      "gohelper-http/1.0",
		RetryCount:     0,
		RetryWait:      1 * time.Second,
		RetryMaxWait:   30 * time.Second,
		RateLimit:      0,
	}
}

// LoadConfig reads Config from HELPER_HTTP_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Process("HTTP", &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}
