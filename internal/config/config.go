package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	devJWTSecret    = "dev-secret-change-in-production"
	devCryptrSecret = "dev-cryptr-change-in-production"
)

// TokenLifetime is how long an issued bearer token stays valid.
const TokenLifetime = 7 * 24 * time.Hour

type Config struct {
	Port           string
	Env            string
	DatabaseDSN    string
	JWTSecret      string
	CryptrSecret   string
	TokenLifetime  time.Duration
	LogLevel       string
	LogFormat      string
	MigrateOnStart bool
}

func Load() Config {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/drivenpass?parseTime=true"),
		JWTSecret:      getEnv("JWT_SECRET", devJWTSecret),
		CryptrSecret:   getEnv("CRYPTR_SECRET", devCryptrSecret),
		TokenLifetime:  TokenLifetime,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		MigrateOnStart: getBool("MIGRATE_ON_START", false),
	}

	return cfg
}

var (
	ErrDefaultJWTSecret    = errors.New("JWT_SECRET must be set in production environment")
	ErrDefaultCryptrSecret = errors.New("CRYPTR_SECRET must be set in production environment")
)

// ValidateSecrets rejects the development default secrets in production.
// Only processes that sign tokens or touch encrypted fields need it.
func (c Config) ValidateSecrets() error {
	if c.Env != "production" {
		return nil
	}
	if c.JWTSecret == devJWTSecret {
		return ErrDefaultJWTSecret
	}
	if c.CryptrSecret == devCryptrSecret {
		return ErrDefaultCryptrSecret
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("ignoring malformed boolean env var", "key", key, "value", v)
		return fallback
	}
	return b
}
