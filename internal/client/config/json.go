package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/yeshlogin/internal/flagx"
	"github.com/dmitrijs2005/yeshlogin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Pointer and zero-able fields distinguish "absent" from "set", so a file
// only overrides what it mentions.
type JsonConfig struct {
	IdentityBaseURL  string         `json:"identity_base_url"`
	ForwarderURL     string         `json:"forwarder_url"`
	ProfileTransport string         `json:"profile_transport"`
	StoragePath      string         `json:"storage_path"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	LogLevel         string         `json:"log_level"`
	LogCredentials   *bool          `json:"log_credentials"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag nothing is loaded. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.IdentityBaseURL, jc.IdentityBaseURL)
	setString(&cfg.ForwarderURL, jc.ForwarderURL)
	setString(&cfg.ProfileTransport, jc.ProfileTransport)
	setString(&cfg.StoragePath, jc.StoragePath)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogCredentials != nil {
		cfg.LogCredentials = *jc.LogCredentials
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
