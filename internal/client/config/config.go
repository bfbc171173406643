package config

import (
	"fmt"
	"time"
)

// Profile transports.
const (
	TransportDirect  = "direct"
	TransportForward = "forward"
)

// Config holds runtime settings for the login client.
//
// Fields:
//   - IdentityBaseURL: root of the remote identity API, without a trailing slash.
//   - ForwarderURL: root of the forwarding server; used when ProfileTransport is "forward".
//   - ProfileTransport: "direct" or "forward".
//   - StoragePath: SQLite file holding the persisted token; "~" is expanded.
//   - RequestTimeout: HTTP client timeout for every remote call.
//   - LogLevel: debug, info, warn or error.
//   - LogCredentials: log tokens and emails unmasked. Passwords are never logged.
type Config struct {
	IdentityBaseURL  string
	ForwarderURL     string
	ProfileTransport string
	StoragePath      string
	RequestTimeout   time.Duration
	LogLevel         string
	LogCredentials   bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.IdentityBaseURL = "https://api-yeshtery.dev.meetusvr.com/v1"
	c.ForwarderURL = "http://127.0.0.1:8080"
	c.ProfileTransport = TransportDirect
	c.StoragePath = "~/.yeshlogin/session.db"
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "warn"
	c.LogCredentials = false
}

// Validate reports settings the client cannot run with.
func (c *Config) Validate() error {
	switch c.ProfileTransport {
	case TransportDirect, TransportForward:
	default:
		return fmt.Errorf("unknown profile transport %q", c.ProfileTransport)
	}
	if c.IdentityBaseURL == "" {
		return fmt.Errorf("identity base url is required")
	}
	if c.ProfileTransport == TransportForward && c.ForwarderURL == "" {
		return fmt.Errorf("forwarder url is required for the forward transport")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
