package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJson_Overlay(t *testing.T) {
	path := writeConfigFile(t, `{
		"endpoint_addr": ":6060",
		"secret_key": "json-secret",
		"token_validity_duration": "48h",
		"storage_backend": "memory"
	}`)

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"app", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":6060", cfg.EndpointAddr)
	assert.Equal(t, "json-secret", cfg.SecretKey)
	assert.Equal(t, 48*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	// untouched fields keep their defaults
	assert.Equal(t, "release", cfg.GinMode)
}

func TestParseJson_NoFlagNoop(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"app"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":8080", cfg.EndpointAddr)
}

func TestParseJson_InvalidFilePanics(t *testing.T) {
	path := writeConfigFile(t, `{not json`)

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"app", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Panics(t, func() { parseJson(cfg) })
}
