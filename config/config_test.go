//go:build !integration

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "RATE_LIMIT", "RATE_WINDOW", "REQUEST_TIMEOUT", "CORS_ORIGINS", "SWAGGER_USER", "SWAGGER_PASS",
	"LOG_LEVEL", "LOG_PRETTY",
	"CACHE_SIZE", "CACHE_TTL", "IDEMPOTENCY_CACHE_SIZE", "IDEMPOTENCY_TTL",
	"AUTH_ENABLED", "API_KEYS", "WEBHOOK_JWT_SECRET", "WEBHOOK_JWT_ISSUER",
	"MONGODB_URI", "MONGODB_DATABASE", "MONGODB_LOGS_TTL", "MONGODB_ENABLED",
	"CIRCUIT_BREAKER_FAILURE_THRESHOLD", "CIRCUIT_BREAKER_SUCCESS_THRESHOLD", "CIRCUIT_BREAKER_TIMEOUT",
	"REDIS_ENABLED", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"WOOCOMMERCE_URL", "WOOCOMMERCE_CONSUMER_KEY", "WOOCOMMERCE_CONSUMER_SECRET", "CATALOG_TIMEOUT",
	"TRUCK_CAPACITY_TONS", "DELIVERY_BASE_FEE", "DELIVERY_ADDITIONAL_TRUCK_FEE", "TAX_RATE",
	"DEFAULT_STATE", "CHECKOUT_BASE_URL", "KNOWLEDGE_DIR",
}

// clearEnv blanks every variable Load reads; getEnv treats empty as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		clearEnv(t)

		cfg := Load()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 8*time.Second, cfg.Server.RequestTimeout)
		assert.Nil(t, cfg.Server.CORSOrigins)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, 1000, cfg.Cache.Size)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.False(t, cfg.Auth.Enabled)
		assert.False(t, cfg.Database.Enabled)
		assert.Equal(t, "voice_agent", cfg.Database.DatabaseName)
		assert.False(t, cfg.Redis.Enabled)
		assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
		assert.Equal(t, 18.0, cfg.Business.TruckCapacityTons)
		assert.Equal(t, 200.0, cfg.Business.DeliveryBaseFee)
		assert.Equal(t, 150.0, cfg.Business.DeliveryAdditionalTruckFee)
		assert.Equal(t, 0.07, cfg.Business.TaxRate)
		assert.Equal(t, "OH", cfg.Business.DefaultState)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("loads values from environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "9090")
		t.Setenv("RATE_LIMIT", "50")
		t.Setenv("RATE_WINDOW", "30s")
		t.Setenv("CORS_ORIGINS", "https://tools.example.com, ,https://admin.example.com")
		t.Setenv("AUTH_ENABLED", "true")
		t.Setenv("API_KEYS", "key1, key2")
		t.Setenv("WEBHOOK_JWT_SECRET", "s3cret")
		t.Setenv("REDIS_ENABLED", "true")
		t.Setenv("REDIS_DB", "2")
		t.Setenv("WOOCOMMERCE_URL", "https://store.example.com")
		t.Setenv("TRUCK_CAPACITY_TONS", "20")
		t.Setenv("TAX_RATE", " 0.0575 ")

		cfg := Load()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Equal(t, []string{"https://tools.example.com", "https://admin.example.com"}, cfg.Server.CORSOrigins)
		assert.True(t, cfg.Auth.Enabled)
		assert.Equal(t, map[string]bool{"key1": true, "key2": true}, cfg.Auth.APIKeys)
		assert.Equal(t, "s3cret", cfg.Auth.WebhookSecret)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, 2, cfg.Redis.DB)
		assert.Equal(t, "https://store.example.com", cfg.Catalog.BaseURL)
		assert.Equal(t, "https://store.example.com", cfg.Business.CheckoutBaseURL)
		assert.Equal(t, 20.0, cfg.Business.TruckCapacityTons)
		assert.Equal(t, 0.0575, cfg.Business.TaxRate)
	})

	t.Run("handles invalid values gracefully", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RATE_LIMIT", "invalid")
		t.Setenv("AUTH_ENABLED", "invalid")
		t.Setenv("RATE_WINDOW", "invalid")
		t.Setenv("TRUCK_CAPACITY_TONS", "eighteen")

		cfg := Load()

		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.False(t, cfg.Auth.Enabled)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 18.0, cfg.Business.TruckCapacityTons)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func(t *testing.T) Config {
		clearEnv(t)
		return Load()
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero truck capacity", func(c *Config) { c.Business.TruckCapacityTons = 0 }, "TRUCK_CAPACITY_TONS"},
		{"tax rate as percent", func(c *Config) { c.Business.TaxRate = 7 }, "TAX_RATE"},
		{"negative fee", func(c *Config) { c.Business.DeliveryBaseFee = -1 }, "delivery fees"},
		{"negative rate limit", func(c *Config) { c.Server.RateLimit = -1 }, "RATE_LIMIT"},
		{"zero rate window", func(c *Config) { c.Server.RateWindow = 0 }, "RATE_WINDOW"},
		{"auth without credentials", func(c *Config) { c.Auth.Enabled = true }, "AUTH_ENABLED"},
		{"redis without address", func(c *Config) { c.Redis.Enabled = true; c.Redis.Addr = "" }, "REDIS_ADDR"},
		{"mongo without uri", func(c *Config) { c.Database.Enabled = true; c.Database.URI = "" }, "MONGODB_URI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid(t)
			tt.mutate(&cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("reports every problem", func(t *testing.T) {
		cfg := valid(t)
		cfg.Business.TruckCapacityTons = 0
		cfg.Server.RateLimit = -5

		err := cfg.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "TRUCK_CAPACITY_TONS")
		assert.Contains(t, err.Error(), "RATE_LIMIT")
	})
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\nTAX_RATE=0.06\n"), 0o600))
	t.Setenv("TAX_RATE", "0.05")
	// Blank values count as set for godotenv, so unset PORT for the file to apply.
	require.NoError(t, os.Unsetenv("PORT"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))

	cfg := Load()
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, 0.05, cfg.Business.TaxRate)
}

func TestLoadDotEnv_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("BAD-KEY=1\n"), 0o600))

	assert.Error(t, LoadDotEnv(path))
}
