// Package config loads application configuration from environment variables.
// Missing or invalid values are collected and reported together so a bad
// deployment fails with one complete message instead of dying on the first
// variable it happens to read.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultTokenTTL is the session token lifetime used when JWT_EXPIRES_IN is
// unset or unparsable.
const DefaultTokenTTL = 7 * 24 * time.Hour

// DBConfig holds database connection settings.
type DBConfig struct {
	// URL is a postgres:// connection string.
	URL      string
	PoolSize int
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	// JWTSecret signs and verifies session tokens. Required.
	JWTSecret string
	// TokenTTL is the session token (and cookie) lifetime.
	TokenTTL time.Duration
	// CookieSecure marks the session cookie Secure. True outside development.
	CookieSecure bool
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
	Env  string
}

// AppConfig is the top-level configuration for the application.
type AppConfig struct {
	DB     *DBConfig
	Auth   *AuthConfig
	Server *ServerConfig
}

func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got %q: %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// ParseExpiry converts a token-lifetime string into a duration. It accepts a
// trailing 'd' for days ("7d") and otherwise defers to time.ParseDuration
// ("12h", "90m"). Empty or unparsable input yields DefaultTokenTTL without an
// error: a misconfigured TTL degrades to the default rather than preventing
// startup.
func ParseExpiry(s string) time.Duration {
	if s == "" {
		return DefaultTokenTTL
	}
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || days <= 0 {
			return DefaultTokenTTL
		}
		return time.Duration(days) * 24 * time.Hour
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return DefaultTokenTTL
	}
	return d
}

// LoadConfig reads and validates all configuration from the environment.
// JWT_SECRET and DATABASE_URL are required; everything else has a default.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	databaseURL := getRequiredEnv("DATABASE_URL", &errs)
	poolSize := getOptionalEnvInt("DB_POOL_SIZE", 10, &errs)
	if poolSize < 1 {
		errs = append(errs, fmt.Sprintf("DB_POOL_SIZE must be positive, got %d", poolSize))
		poolSize = 10
	}

	jwtSecret := getRequiredEnv("JWT_SECRET", &errs)
	tokenTTL := ParseExpiry(os.Getenv("JWT_EXPIRES_IN"))

	env := getOptionalEnv("APP_ENV", "development")
	port := getOptionalEnv("PORT", "8080")

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		DB: &DBConfig{
			URL:      databaseURL,
			PoolSize: poolSize,
		},
		Auth: &AuthConfig{
			JWTSecret:    jwtSecret,
			TokenTTL:     tokenTTL,
			CookieSecure: env != "development" && env != "local",
		},
		Server: &ServerConfig{
			Port: port,
			Env:  env,
		},
	}, nil
}
