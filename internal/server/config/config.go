// Package config handles configuration for the forwarding server,
// including defaults, JSON overlay, environment variables and
// command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds runtime settings for the forwarding server.
//
// Fields:
//   - ListenAddr: HTTP bind address.
//   - IdentityBaseURL: root of the remote identity API that lookups are forwarded to.
//   - RequestTimeout: timeout of each forwarded request.
//   - ShutdownTimeout: how long in-flight requests may take after a stop signal.
//   - LogLevel / LogFormat: slog level and "json" or "text".
//   - LogCredentials: log tokens unmasked. Off by default.
type Config struct {
	ListenAddr      string        `env:"YL_LISTEN_ADDR"`
	IdentityBaseURL string        `env:"YL_IDENTITY_BASE_URL"`
	RequestTimeout  time.Duration `env:"YL_REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"YL_SHUTDOWN_TIMEOUT"`
	LogLevel        string        `env:"YL_LOG_LEVEL"`
	LogFormat       string        `env:"YL_LOG_FORMAT"`
	LogCredentials  bool          `env:"YL_LOG_CREDENTIALS"`
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.IdentityBaseURL = "https://api-yeshtery.dev.meetusvr.com/v1"
	c.RequestTimeout = 15 * time.Second
	c.ShutdownTimeout = 5 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.LogCredentials = false
}

// parseEnv overlays variables that are set in the environment. Unset
// variables leave the current value alone.
func parseEnv(c *Config) {
	if err := cleanenv.ReadEnv(c); err != nil {
		panic(fmt.Errorf("read env: %w", err))
	}
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
