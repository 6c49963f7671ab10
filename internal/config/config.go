package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"palette-studio/internal/auth"
	"palette-studio/internal/colorspace"
	"palette-studio/internal/palette"
)

// DefaultPath is the config file read when PALETTE_CONFIG is unset.
const DefaultPath = "palette.json"

// Config holds all service configuration values.
type Config struct {
	Listen          string `json:"listen"`
	MetricsListen   string `json:"metrics_listen"`
	DefaultBase     string `json:"default_base"`
	DefaultScheme   string `json:"default_scheme"`
	KeysFile        string `json:"keys_file"`
	RateLimitRPM    int    `json:"rate_limit_rpm"`
	TimeoutSec      int    `json:"timeout_sec"`
	MaxLiveSessions int    `json:"max_live_sessions"`

	// TrustedProxies lists peers (CIDR or IP) whose X-Forwarded-For and
	// X-Real-IP headers are believed. Empty means headers are ignored.
	TrustedProxies []string `json:"trusted_proxies"`

	// Environment configuration (loaded from env vars)
	Env *EnvConfig `json:"-"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Listen:          ":8080",
		MetricsListen:   ":9090",
		DefaultBase:     palette.DefaultBase,
		DefaultScheme:   string(palette.DefaultScheme),
		RateLimitRPM:    120,
		TimeoutSec:      15,
		MaxLiveSessions: 100,
		Env:             LoadEnv(),
	}
}

// Load reads configuration from path on top of the defaults. A missing
// file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = cfg.Env.ConfigPath
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.DefaultScheme = strings.ToLower(strings.TrimSpace(cfg.DefaultScheme))
	return cfg, nil
}

// Scheme returns the configured default scheme. Call Validate first.
func (c *Config) Scheme() palette.Scheme {
	s, err := palette.ParseScheme(c.DefaultScheme)
	if err != nil {
		return palette.DefaultScheme
	}
	return s
}

// Validate checks the configuration for errors and returns helpful messages.
func (c *Config) Validate() error {
	var errs []string

	if c.Listen == "" {
		errs = append(errs, "listen address is required")
	}
	if c.MetricsListen != "" && c.MetricsListen == c.Listen {
		errs = append(errs, "metrics_listen must differ from listen")
	}

	if _, err := colorspace.ParseHex(c.DefaultBase); err != nil {
		errs = append(errs, fmt.Sprintf("default_base: %v", err))
	}
	if _, err := palette.ParseScheme(c.DefaultScheme); err != nil {
		errs = append(errs, fmt.Sprintf("default_scheme: %v", err))
	}

	if c.KeysFile != "" {
		if _, err := os.Stat(c.KeysFile); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("keys file not found: %s", c.KeysFile))
		}
	}

	if _, err := auth.ParseNetworks(c.TrustedProxies); err != nil {
		errs = append(errs, fmt.Sprintf("trusted_proxies: %v", err))
	}

	if c.RateLimitRPM < 0 {
		errs = append(errs, "rate_limit_rpm must not be negative")
	}
	if c.TimeoutSec <= 0 {
		errs = append(errs, "timeout_sec must be positive")
	}
	if c.MaxLiveSessions <= 0 {
		errs = append(errs, "max_live_sessions must be positive")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}
