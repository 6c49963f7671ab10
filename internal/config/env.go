package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment represents the application environment
type Environment string

const (
	// Development environment - localhost, debug enabled
	Development Environment = "development"
	// Production environment - public URL, JSON logs
	Production Environment = "production"
)

// EnvConfig holds environment-specific configuration
type EnvConfig struct {
	Env Environment

	// PublicURL is where the API is reachable, shown in the startup banner.
	PublicURL     string
	AllowedOrigin string

	Debug     bool
	LogLevel  string
	LogFormat string // "json" or "text"

	// ConfigPath is the JSON config file (PALETTE_CONFIG).
	ConfigPath string
}

// LoadEnv loads environment configuration from environment variables
func LoadEnv() *EnvConfig {
	env := getEnvOrDefault("APP_ENV", "development")

	cfg := &EnvConfig{
		Env:        Environment(strings.ToLower(env)),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", ""),
		ConfigPath: getEnvOrDefault("PALETTE_CONFIG", DefaultPath),
	}

	switch cfg.Env {
	case Production:
		cfg.PublicURL = getEnvOrDefault("PUBLIC_URL", "https://palette.example.com")
		cfg.AllowedOrigin = getEnvOrDefault("ALLOWED_ORIGIN", cfg.PublicURL)
		cfg.Debug = getBoolOrDefault("DEBUG", false)
		cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", "json")
		if cfg.LogLevel == "" {
			cfg.LogLevel = "info"
		}
	default:
		cfg.Env = Development // Normalize unknown envs to development
		cfg.PublicURL = getEnvOrDefault("PUBLIC_URL", "http://localhost:8080")
		cfg.AllowedOrigin = getEnvOrDefault("ALLOWED_ORIGIN", "*")
		cfg.Debug = getBoolOrDefault("DEBUG", true)
		cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", "text")
		if cfg.LogLevel == "" {
			cfg.LogLevel = "debug"
		}
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
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

func getBoolOrDefault(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}
