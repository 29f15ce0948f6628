package app

import (
	"context"

	"github.com/milestonetrucks/voice-agent/config"
	"github.com/milestonetrucks/voice-agent/internal/http"
	"github.com/milestonetrucks/voice-agent/internal/knowledge"
	"github.com/milestonetrucks/voice-agent/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the handlers, registers health checks and fills in the
// router configuration.
func InitializeRouter(
	services http.Services,
	kb *knowledge.KnowledgeBase,
	dbComponents *DatabaseComponents,
	catalogComponents *CatalogComponents,
	cfg config.Config,
) *RouterComponents {
	healthHandler := http.NewHealthHandler()
	healthHandler.RegisterCircuitBreaker("catalog", catalogComponents.CircuitBreaker)
	if catalogComponents.Redis != nil {
		redis := catalogComponents.Redis
		healthHandler.RegisterChecker("redis", http.HealthCheckFunc(func(ctx context.Context) error {
			return redis.Ping(ctx).Err()
		}))
	}

	routerCfg := http.RouterConfig{
		RateLimit:      cfg.Server.RateLimit,
		RateWindow:     cfg.Server.RateWindow,
		RequestTimeout: cfg.Server.RequestTimeout,
		CORSOrigins:    cfg.Server.CORSOrigins,
		SwaggerUser:    cfg.Server.SwaggerUser,
		SwaggerPass:    cfg.Server.SwaggerPass,
		Knowledge:      http.NewKnowledgeHandler(kb, cfg.Business.TruckCapacityTons),
	}

	if cfg.Auth.Enabled {
		routerCfg.Auth = middleware.WebhookAuthConfig{
			Secret:  []byte(cfg.Auth.WebhookSecret),
			Issuer:  cfg.Auth.WebhookIssuer,
			APIKeys: cfg.Auth.APIKeys,
		}
	}

	if cfg.Server.RateLimit > 0 {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}

	if cfg.Cache.IdempotencySize > 0 {
		routerCfg.IdempotencyCache = middleware.NewMemoryIdempotencyCache(cfg.Cache.IdempotencySize, cfg.Cache.IdempotencyTTL)
	}

	if dbComponents != nil {
		routerCfg.LoggingService = dbComponents.LoggingService
		healthHandler.RegisterChecker("mongodb", http.HealthCheckFunc(dbComponents.DB.HealthCheck))
		healthHandler.RegisterCircuitBreaker("mongodb_logs", dbComponents.LogsCircuitBreaker)
	}

	return &RouterComponents{
		Handler:       http.NewHandler(services),
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}

// Close stops the rate limiter and idempotency cache sweepers.
func (r *RouterComponents) Close(context.Context) error {
	if r.Config.RateLimiter != nil {
		r.Config.RateLimiter.Stop()
	}
	if r.Config.IdempotencyCache != nil {
		r.Config.IdempotencyCache.Stop()
	}
	return nil
}
