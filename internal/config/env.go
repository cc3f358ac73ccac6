package config

import (
	"os"
	"strings"
)

// Environment represents the application environment
type Environment string

const (
	// Development environment - verbose logging, open CORS
	Development Environment = "development"
	// Production environment - quieter logging
	Production Environment = "production"
)

// EnvConfig holds environment-specific configuration
type EnvConfig struct {
	// Environment name (development, production)
	Env Environment

	// Feature flags
	Debug bool

	// Environment-specific values
	LogLevel      string
	AllowedOrigin string

	// Overrides for file values, empty when unset
	Listen        string
	MetricsListen string
	APIKeyHashes  []string
	RateLimitRPM  int // -1 when unset
}

// LoadEnv loads environment configuration from environment variables
func LoadEnv() *EnvConfig {
	env := getEnvOrDefault("APP_ENV", "development")

	cfg := &EnvConfig{
		Env:      Environment(strings.ToLower(env)),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}

	switch cfg.Env {
	case Production:
		cfg.AllowedOrigin = getEnvOrDefault("ALLOWED_ORIGIN", "")
		cfg.Debug = getEnvOrDefault("DEBUG", "false") == "true"
	default: // Development
		cfg.Env = Development // Normalize unknown envs to development
		cfg.AllowedOrigin = getEnvOrDefault("ALLOWED_ORIGIN", "*")
		cfg.Debug = getEnvOrDefault("DEBUG", "true") == "true"
		if cfg.LogLevel == "info" {
			cfg.LogLevel = "debug" // Dev default
		}
	}

	cfg.Listen = getEnvOrDefault("PALETTE_LISTEN", "")
	cfg.MetricsListen = getEnvOrDefault("METRICS_LISTEN", "")
	cfg.RateLimitRPM = parseIntOrDefault(getEnvOrDefault("RATE_LIMIT_RPM", ""), -1)

	// Comma-separated bcrypt hashes (see `palette hash-key`)
	if hashes := getEnvOrDefault("API_KEY_HASHES", ""); hashes != "" {
		cfg.APIKeyHashes = strings.Split(hashes, ",")
	}

	return cfg
}

// IsDevelopment returns true if running in development mode
func (e *EnvConfig) IsDevelopment() bool {
	return e.Env == Development
}

// IsProduction returns true if running in production mode
func (e *EnvConfig) IsProduction() bool {
	return e.Env == Production
}

// String returns the environment name
func (e Environment) String() string {
	return string(e)
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntOrDefault parses a non-negative decimal, returning default on error
func parseIntOrDefault(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}
	result := 0
	for _, c := range s {
		if c >= '0' && c <= '9' {
			result = result*10 + int(c-'0')
		} else {
			return defaultValue
		}
	}
	return result
}
