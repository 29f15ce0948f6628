package app

import (
	"time"

	"github.com/milestonetrucks/voice-agent/config"
)

// testConfig returns a valid configuration with every optional store disabled.
func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:           "0",
			RateLimit:      1000,
			RateWindow:     time.Minute,
			RequestTimeout: 2 * time.Second,
		},
		Log:   config.LogConfig{Level: "error"},
		Cache: config.CacheConfig{Size: 100, TTL: time.Minute, IdempotencySize: 100, IdempotencyTTL: time.Minute},
		Database: config.DatabaseConfig{
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          time.Second,
		},
		Catalog: config.CatalogConfig{Timeout: 2 * time.Second},
		Business: config.BusinessConfig{
			TruckCapacityTons:          18,
			DeliveryBaseFee:            200,
			DeliveryAdditionalTruckFee: 150,
			TaxRate:                    0.07,
			DefaultState:               "OH",
		},
	}
}
