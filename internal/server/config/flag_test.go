package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_Overlay(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"app", "-a", ":7070", "-s", "flag-secret", "-t", "24", "-m", StorageMemory, "-o", "http://localhost:5173"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddr)
	assert.Equal(t, "flag-secret", cfg.SecretKey)
	assert.Equal(t, 24*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, "http://localhost:5173", cfg.CORSAllowedOrigin)
}

func TestParseFlags_UnknownFlagsIgnored(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"app", "-z", "junk", "-a", ":7071"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7071", cfg.EndpointAddr)
}
