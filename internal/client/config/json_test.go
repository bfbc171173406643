package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"identity_base_url": "http://api.example/v1",
		"profile_transport": "forward",
		"request_timeout":   "10s",
		"log_credentials":   true,
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "http://api.example/v1", cfg.IdentityBaseURL)
		assert.Equal(t, TransportForward, cfg.ProfileTransport)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.True(t, cfg.LogCredentials)
		// absent keys keep their defaults
		assert.Equal(t, "~/.yeshlogin/session.db", cfg.StoragePath)
		assert.Equal(t, "http://127.0.0.1:8080", cfg.ForwarderURL)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{IdentityBaseURL: "http://defaults", RequestTimeout: 42 * time.Second}
		parseJson(cfg)

		assert.Equal(t, "http://defaults", cfg.IdentityBaseURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("flags override json", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", pathFlag, "-t", "direct"}

		cfg := LoadConfig()
		assert.Equal(t, TransportDirect, cfg.ProfileTransport)
		assert.Equal(t, "http://api.example/v1", cfg.IdentityBaseURL)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
