package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/yeshlogin/internal/flagx"
	"github.com/dmitrijs2005/yeshlogin/internal/timex"
)

// JsonConfig is the on-disk shape of Config. Durations use timex.Duration,
// so "15s" and integer nanoseconds are both accepted.
type JsonConfig struct {
	ListenAddr      string         `json:"listen_addr"`
	IdentityBaseURL string         `json:"identity_base_url"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
	LogLevel        string         `json:"log_level"`
	LogFormat       string         `json:"log_format"`
	LogCredentials  *bool          `json:"log_credentials"`
}

// parseJson loads the file named by -c or -config, if any, and overlays the
// keys it contains. It panics if the file cannot be read or parsed.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ListenAddr != "" {
		config.ListenAddr = c.ListenAddr
	}
	if c.IdentityBaseURL != "" {
		config.IdentityBaseURL = c.IdentityBaseURL
	}
	if c.RequestTimeout.Duration > 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.LogFormat != "" {
		config.LogFormat = c.LogFormat
	}
	if c.LogCredentials != nil {
		config.LogCredentials = *c.LogCredentials
	}
}
