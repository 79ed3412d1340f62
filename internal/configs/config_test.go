package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("PROPERFY_API_URL", "https://api.properfy.test/")
	t.Setenv("PROPERFY_EMAIL", "site@example.com")
	t.Setenv("PROPERFY_PASSWORD", "secret")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "https://api.properfy.test", cfg.Properfy.BaseURL)
	assert.Equal(t, 1000, cfg.Properfy.SampleSize)
	assert.Equal(t, time.Hour, cfg.Cache.ListingsTTL)
	assert.Equal(t, 4*time.Hour, cfg.Cache.FilterOptionsTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.Admin.JWTSecret)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	t.Setenv("PROPERFY_API_URL", "")
	t.Setenv("PROPERFY_EMAIL", "")
	t.Setenv("PROPERFY_PASSWORD", "x")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROPERFY_API_URL")
	assert.Contains(t, err.Error(), "PROPERFY_EMAIL")
	assert.NotContains(t, err.Error(), "PROPERFY_PASSWORD")
}

func TestLoadConfig_FromEnvFile(t *testing.T) {
	setRequired(t)
	// godotenv не перезаписывает уже выставленные переменные
	t.Setenv("CACHE_LISTINGS_TTL", "")
	os.Unsetenv("CACHE_LISTINGS_TTL")
	t.Setenv("WHATSAPP_NUMBER", "+55 (41) 99999-0000")
	t.Setenv("FORMSPARK_CONTACT_FORM_ID", "abc123")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CACHE_LISTINGS_TTL=30m\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CACHE_LISTINGS_TTL") })

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.Cache.ListingsTTL)
	assert.Equal(t, "5541999990000", cfg.WhatsApp.Number)
	assert.Equal(t, "abc123", cfg.Formspark.FormIDs["contact"])
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("X_DURATION", "90")
	assert.Equal(t, 90*time.Second, getEnvAsDuration("X_DURATION", time.Minute))

	t.Setenv("X_DURATION", "2h")
	assert.Equal(t, 2*time.Hour, getEnvAsDuration("X_DURATION", time.Minute))

	t.Setenv("X_DURATION", "nope")
	assert.Equal(t, time.Minute, getEnvAsDuration("X_DURATION", time.Minute))
}
