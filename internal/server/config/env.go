package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first when present; real environment
// variables win over file values (godotenv does not override existing ones).
//
// Recognized variables:
//
//	ADDRESS         bind address (e.g. ":8080")
//	DATABASE_DSN    PostgreSQL DSN
//	JWT_SECRET      token signing secret
//	TOKEN_VALIDITY  token lifetime as a Go duration (e.g. "168h")
//	STORAGE         storage backend ("postgres" or "memory")
//	FRONTEND_URL    CORS allowed origin
//	GIN_MODE        gin run mode
func parseEnv(config *Config) {
	_ = godotenv.Load()

	config.EndpointAddr = getEnv("ADDRESS", config.EndpointAddr)
	config.DatabaseDSN = getEnv("DATABASE_DSN", config.DatabaseDSN)
	config.SecretKey = getEnv("JWT_SECRET", config.SecretKey)
	config.StorageBackend = getEnv("STORAGE", config.StorageBackend)
	config.CORSAllowedOrigin = getEnv("FRONTEND_URL", config.CORSAllowedOrigin)
	config.GinMode = getEnv("GIN_MODE", config.GinMode)

	if v := os.Getenv("TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
}

func getEnv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
