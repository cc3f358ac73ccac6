package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"accessible-palette/internal/palette"
)

// DefaultFile is read by Load when CONFIG_FILE is not set.
const DefaultFile = "config.json"

// Config holds all palette service configuration values.
type Config struct {
	Listen        string `json:"listen"`
	MetricsListen string `json:"metrics_listen"`
	CertFile      string `json:"cert_file"`
	KeyFile       string `json:"key_file"`
	TimeoutSec    int    `json:"timeout_sec"`
	MaxConcurrent int    `json:"max_concurrent"`

	// Palette defaults applied when a request leaves a field out
	ContrastRatio float64 `json:"contrast_ratio"`
	Variations    int     `json:"variations"`
	MaxVariations int     `json:"max_variations"`

	// Access control: bcrypt hashes of accepted API keys, empty = open
	APIKeyHashes []string `json:"api_key_hashes"`
	RateLimitRPM int      `json:"rate_limit_rpm"` // per client, 0 = unlimited

	// Environment configuration (loaded from env vars)
	Env *EnvConfig `json:"-"`
}

// Default returns the configuration used when no file or env overrides it.
func Default() *Config {
	return &Config{
		Listen:        ":8080",
		MetricsListen: ":9090",
		TimeoutSec:    10,
		MaxConcurrent: 64,
		ContrastRatio: palette.DefaultContrastRatio,
		Variations:    palette.DefaultVariations,
		MaxVariations: 64,
		RateLimitRPM:  600,
	}
}

// Load reads configuration from CONFIG_FILE (default config.json) with
// sensible defaults, then applies environment overrides.
func Load() (*Config, error) {
	return LoadFile(getEnvOrDefault("CONFIG_FILE", DefaultFile))
}

// LoadFile reads the given JSON file over the defaults. A missing file is
// not an error; a malformed one is.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	cfg.Env = LoadEnv()

	if file, err := os.Open(path); err == nil {
		defer file.Close()
		if err := json.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets environment variables override file values
func (c *Config) applyEnv() {
	e := c.Env
	if e.Listen != "" {
		c.Listen = e.Listen
	}
	if e.MetricsListen != "" {
		c.MetricsListen = e.MetricsListen
	}
	if len(e.APIKeyHashes) > 0 {
		c.APIKeyHashes = e.APIKeyHashes
	}
	if e.RateLimitRPM >= 0 {
		c.RateLimitRPM = e.RateLimitRPM
	}

	cleaned := c.APIKeyHashes[:0]
	for _, h := range c.APIKeyHashes {
		if h = strings.TrimSpace(h); h != "" {
			cleaned = append(cleaned, h)
		}
	}
	c.APIKeyHashes = cleaned
}

// PaletteConfig fills the absent fields of req with the configured defaults.
// Values the request does carry are kept, even invalid ones.
func (c *Config) PaletteConfig(req palette.Config) palette.Config {
	if req.ContrastRatio == nil {
		req.ContrastRatio = palette.Float64(c.ContrastRatio)
	}
	if req.Variations == nil {
		req.Variations = palette.Int(c.Variations)
	}
	return req
}

// Validate checks the configuration for errors and returns helpful messages.
func (c *Config) Validate() error {
	var errs []string

	if c.Listen == "" {
		errs = append(errs, "listen address is required")
	}
	if c.MetricsListen == c.Listen {
		errs = append(errs, "metrics_listen must differ from listen")
	}

	// TLS is optional but needs both halves
	if (c.CertFile == "") != (c.KeyFile == "") {
		errs = append(errs, "cert_file and key_file must be set together")
	}
	if c.CertFile != "" {
		if _, err := os.Stat(c.CertFile); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("certificate file not found: %s", c.CertFile))
		}
		if _, err := os.Stat(c.KeyFile); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("key file not found: %s", c.KeyFile))
		}
	}

	if c.TimeoutSec <= 0 {
		errs = append(errs, "timeout_sec must be positive")
	}
	if c.MaxConcurrent <= 0 {
		errs = append(errs, "max_concurrent must be positive")
	}
	if c.ContrastRatio < 1 || c.ContrastRatio > 21 {
		errs = append(errs, "contrast_ratio must be between 1 and 21")
	}
	if c.MaxVariations < 1 {
		errs = append(errs, "max_variations must be at least 1")
	}
	if c.Variations < 1 || c.Variations > c.MaxVariations {
		errs = append(errs, fmt.Sprintf("variations must be between 1 and max_variations (%d)", c.MaxVariations))
	}
	if c.RateLimitRPM < 0 {
		errs = append(errs, "rate_limit_rpm must not be negative")
	}
	for i, h := range c.APIKeyHashes {
		if !strings.HasPrefix(h, "$2") {
			errs = append(errs, fmt.Sprintf("api_key_hashes[%d] is not a bcrypt hash", i))
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}
