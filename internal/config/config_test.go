package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessible-palette/internal/palette"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, palette.DefaultContrastRatio, cfg.ContrastRatio)
	assert.Equal(t, palette.DefaultVariations, cfg.Variations)
	assert.Empty(t, cfg.APIKeyHashes)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `{"listen": ":7000", "contrast_ratio": 7, "variations": 3, "api_key_hashes": [" $2a$10$abc ", ""]}`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Listen)
	assert.Equal(t, 7.0, cfg.ContrastRatio)
	assert.Equal(t, 3, cfg.Variations)
	assert.Equal(t, []string{"$2a$10$abc"}, cfg.APIKeyHashes)
	assert.Equal(t, 64, cfg.MaxVariations)
}

func TestLoadFileMalformed(t *testing.T) {
	_, err := LoadFile(writeFile(t, `{"listen": `))
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("PALETTE_LISTEN", ":9999")
	t.Setenv("RATE_LIMIT_RPM", "0")
	t.Setenv("API_KEY_HASHES", "$2a$10$one,$2a$10$two")
	t.Setenv("APP_ENV", "PRODUCTION")

	cfg, err := LoadFile(writeFile(t, `{"listen": ":7000", "rate_limit_rpm": 30}`))
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Listen)
	assert.Equal(t, 0, cfg.RateLimitRPM)
	assert.Equal(t, []string{"$2a$10$one", "$2a$10$two"}, cfg.APIKeyHashes)
	assert.True(t, cfg.Env.IsProduction())
	assert.Equal(t, "", cfg.Env.AllowedOrigin)
}

func TestLoadEnvDevelopmentDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	env := LoadEnv()
	assert.True(t, env.IsDevelopment())
	assert.Equal(t, "debug", env.LogLevel)
	assert.Equal(t, "*", env.AllowedOrigin)
	assert.Equal(t, -1, env.RateLimitRPM)
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Env = LoadEnv()
	cfg.Listen = ""
	cfg.MetricsListen = ":1"
	cfg.TimeoutSec = 0
	cfg.ContrastRatio = 0.5
	cfg.Variations = 100
	cfg.CertFile = "server.crt"
	cfg.APIKeyHashes = []string{"plaintext"}

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "config validation failed:")
	assert.Contains(t, msg, "listen address is required")
	assert.Contains(t, msg, "timeout_sec must be positive")
	assert.Contains(t, msg, "contrast_ratio must be between 1 and 21")
	assert.Contains(t, msg, "variations must be between 1 and max_variations (64)")
	assert.Contains(t, msg, "cert_file and key_file must be set together")
	assert.Contains(t, msg, "api_key_hashes[0] is not a bcrypt hash")
}

func TestPaletteConfig(t *testing.T) {
	cfg := Default()
	cfg.ContrastRatio = 7
	cfg.Variations = 3

	got := cfg.PaletteConfig(palette.Config{BaseColor: "#007acc"})
	assert.Equal(t, palette.Config{BaseColor: "#007acc", ContrastRatio: palette.Float64(7), Variations: palette.Int(3)}, got)

	got = cfg.PaletteConfig(palette.Config{BaseColor: "#007acc", ContrastRatio: palette.Float64(3), Variations: palette.Int(9)})
	assert.Equal(t, palette.Config{BaseColor: "#007acc", ContrastRatio: palette.Float64(3), Variations: palette.Int(9)}, got)

	// explicit zeros are not defaults
	got = cfg.PaletteConfig(palette.Config{BaseColor: "#007acc", ContrastRatio: palette.Float64(0), Variations: palette.Int(0)})
	assert.Equal(t, 0.0, *got.ContrastRatio)
	assert.Equal(t, 0, *got.Variations)
}

func TestParseIntOrDefault(t *testing.T) {
	assert.Equal(t, 42, parseIntOrDefault("42", 1))
	assert.Equal(t, 1, parseIntOrDefault("4x", 1))
	assert.Equal(t, 1, parseIntOrDefault("", 1))
	assert.Equal(t, 1, parseIntOrDefault("-3", 1))
}
