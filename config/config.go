// Package config provides configuration management for the voice agent service.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Business BusinessConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// CacheConfig holds the in-memory cache configuration. Size 0 disables the catalog
// cache unless Redis is enabled.
type CacheConfig struct {
	Size            int
	TTL             time.Duration
	IdempotencySize int
	IdempotencyTTL  time.Duration
}

// AuthConfig holds webhook authentication configuration.
type AuthConfig struct {
	Enabled       bool
	APIKeys       map[string]bool
	WebhookSecret string
	WebhookIssuer string
}

// DatabaseConfig holds MongoDB configuration. MongoDB stores request and tool-call logs.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool
	// Circuit breaker settings, shared by the log store and the catalog client.
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// RedisConfig holds the shared catalog cache configuration.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// CatalogConfig holds the WooCommerce store API configuration.
type CatalogConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	Timeout        time.Duration
}

// BusinessConfig holds the pricing and delivery constants the agent quotes with.
type BusinessConfig struct {
	TruckCapacityTons          float64
	DeliveryBaseFee            float64
	DeliveryAdditionalTruckFee float64
	TaxRate                    float64
	DefaultState               string
	CheckoutBaseURL            string
	// KnowledgeDir overrides the embedded material and project tables when set.
	KnowledgeDir string
}

// LoadDotEnv loads variables from the given files, ".env" by default. Missing files are
// skipped and variables already set in the environment win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

// Load creates a Config from environment variables.
func Load() Config {
	storeURL := getEnv("WOOCOMMERCE_URL", "")

	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 8*time.Second),
			CORSOrigins:    parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:    getEnv("SWAGGER_USER", ""),
			SwaggerPass:    getEnv("SWAGGER_PASS", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
		Cache: CacheConfig{
			Size:            getEnvInt("CACHE_SIZE", 1000),
			TTL:             getEnvDuration("CACHE_TTL", 5*time.Minute),
			IdempotencySize: getEnvInt("IDEMPOTENCY_CACHE_SIZE", 1000),
			IdempotencyTTL:  getEnvDuration("IDEMPOTENCY_TTL", 10*time.Minute),
		},
		Auth: AuthConfig{
			Enabled:       getEnvBool("AUTH_ENABLED", false),
			APIKeys:       parseAPIKeys(os.Getenv("API_KEYS")),
			WebhookSecret: getEnv("WEBHOOK_JWT_SECRET", ""),
			WebhookIssuer: getEnv("WEBHOOK_JWT_ISSUER", ""),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "voice_agent"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Catalog: CatalogConfig{
			BaseURL:        storeURL,
			ConsumerKey:    getEnv("WOOCOMMERCE_CONSUMER_KEY", ""),
			ConsumerSecret: getEnv("WOOCOMMERCE_CONSUMER_SECRET", ""),
			Timeout:        getEnvDuration("CATALOG_TIMEOUT", 5*time.Second),
		},
		Business: BusinessConfig{
			TruckCapacityTons:          getEnvFloat("TRUCK_CAPACITY_TONS", 18),
			DeliveryBaseFee:            getEnvFloat("DELIVERY_BASE_FEE", 200),
			DeliveryAdditionalTruckFee: getEnvFloat("DELIVERY_ADDITIONAL_TRUCK_FEE", 150),
			TaxRate:                    getEnvFloat("TAX_RATE", 0.07),
			DefaultState:               getEnv("DEFAULT_STATE", "OH"),
			CheckoutBaseURL:            getEnv("CHECKOUT_BASE_URL", storeURL),
			KnowledgeDir:               getEnv("KNOWLEDGE_DIR", ""),
		},
	}
}

// Validate reports every setting the service cannot start with.
func (c Config) Validate() error {
	var errs []error

	if c.Business.TruckCapacityTons <= 0 {
		errs = append(errs, errors.New("TRUCK_CAPACITY_TONS must be greater than zero"))
	}
	if c.Business.TaxRate < 0 || c.Business.TaxRate >= 1 {
		errs = append(errs, errors.New("TAX_RATE must be a fraction between 0 and 1"))
	}
	if c.Business.DeliveryBaseFee < 0 || c.Business.DeliveryAdditionalTruckFee < 0 {
		errs = append(errs, errors.New("delivery fees must not be negative"))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, errors.New("RATE_LIMIT must not be negative"))
	}
	if c.Server.RateLimit > 0 && c.Server.RateWindow <= 0 {
		errs = append(errs, errors.New("RATE_WINDOW must be positive when RATE_LIMIT is set"))
	}
	if c.Auth.Enabled && c.Auth.WebhookSecret == "" && len(c.Auth.APIKeys) == 0 {
		errs = append(errs, errors.New("AUTH_ENABLED requires WEBHOOK_JWT_SECRET or API_KEYS"))
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, errors.New("REDIS_ENABLED requires REDIS_ADDR"))
	}
	if c.Database.Enabled && c.Database.URI == "" {
		errs = append(errs, errors.New("MONGODB_ENABLED requires MONGODB_URI"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseAPIKeys(s string) map[string]bool {
	if s == "" {
		return nil
	}
	keys := strings.Split(s, ",")
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			result[k] = true
		}
	}
	return result
}

// parseCORSOrigins returns the configured origins, or nil to use the router defaults.
func parseCORSOrigins(s string) []string {
	var result []string
	for _, p := range strings.Split(s, ",") {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
