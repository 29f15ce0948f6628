package app

import (
	"context"
	"time"

	"github.com/milestonetrucks/voice-agent/config"
	"github.com/milestonetrucks/voice-agent/internal/catalog"
	"github.com/milestonetrucks/voice-agent/internal/circuitbreaker"
	"github.com/milestonetrucks/voice-agent/internal/domain/model"
	"github.com/milestonetrucks/voice-agent/internal/service"
	"github.com/milestonetrucks/voice-agent/internal/service/cache"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	catalogCacheShards = 16
	redisKeyPrefix     = "voice-agent:catalog:"
	redisPingTimeout   = 2 * time.Second
)

// CatalogComponents holds the store client and the product cache in front of it.
type CatalogComponents struct {
	Catalog        catalog.Catalog
	CircuitBreaker *circuitbreaker.CircuitBreaker
	Redis          *redis.Client

	cache cache.Cache[[]model.Product]
}

// InitializeCatalog builds the WooCommerce client behind a circuit breaker and, when
// configured, a product cache: Redis if enabled, otherwise in memory. Without store
// credentials every lookup fails with catalog.ErrNotConfigured.
func InitializeCatalog(cfg config.Config) *CatalogComponents {
	cb := circuitbreaker.New(breakerConfig(cfg.Database, "catalog"))
	components := &CatalogComponents{CircuitBreaker: cb}

	var store catalog.Catalog
	client, err := catalog.NewClient(catalog.Config{
		BaseURL:        cfg.Catalog.BaseURL,
		ConsumerKey:    cfg.Catalog.ConsumerKey,
		ConsumerSecret: cfg.Catalog.ConsumerSecret,
		Timeout:        cfg.Catalog.Timeout,
	}, catalog.WithCircuitBreaker(cb))
	if err != nil {
		log.Warn().Err(err).Msg("Store API not configured - tool calls that need the catalog will fail")
		store = unconfiguredCatalog{err: err}
	} else {
		store = client
	}

	components.cache = newProductCache(cfg, components)
	if components.cache != nil {
		store = service.NewCachedCatalog(store, components.cache)
	}
	components.Catalog = store
	return components
}

func newProductCache(cfg config.Config, components *CatalogComponents) cache.Cache[[]model.Product] {
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable - falling back to the in-memory cache")
			_ = client.Close()
		} else {
			log.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")
			components.Redis = client
			return cache.NewRedisCache[[]model.Product](client, redisKeyPrefix, cfg.Cache.TTL)
		}
	}

	if cfg.Cache.Size <= 0 {
		return nil
	}
	return cache.NewShardedCache[[]model.Product](cfg.Cache.Size, cfg.Cache.TTL, catalogCacheShards).Named("catalog")
}

// Close stops the cache and disconnects from Redis.
func (c *CatalogComponents) Close(context.Context) error {
	if c.cache != nil {
		c.cache.Stop()
	}
	if c.Redis != nil {
		return c.Redis.Close()
	}
	return nil
}

type unconfiguredCatalog struct {
	err error
}

func (u unconfiguredCatalog) ProductsByZip(context.Context, string) ([]model.Product, error) {
	return nil, u.err
}

func (u unconfiguredCatalog) ProductBySKU(context.Context, string) (*model.Product, error) {
	return nil, u.err
}

func (u unconfiguredCatalog) OrderByID(context.Context, string) (*model.Order, error) {
	return nil, u.err
}

func (u unconfiguredCatalog) OrdersByCustomer(context.Context, catalog.CustomerQuery) ([]model.Order, error) {
	return nil, u.err
}
