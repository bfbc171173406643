// Package config loads runtime configuration for the login client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "15s" or
// integer nanoseconds:
//
//	{
//	  "identity_base_url": "https://api-yeshtery.dev.meetusvr.com/v1",
//	  "forwarder_url": "http://127.0.0.1:8080",
//	  "profile_transport": "forward",
//	  "storage_path": "~/.yeshlogin/session.db",
//	  "request_timeout": "15s",
//	  "log_level": "debug",
//	  "log_credentials": false
//	}
//
// The client does not read environment variables; use the JSON file or flags.
package config
