package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/milestonetrucks/voice-agent/internal/metrics"
	"github.com/milestonetrucks/voice-agent/internal/middleware"
	"github.com/milestonetrucks/voice-agent/internal/service"
	"github.com/milestonetrucks/voice-agent/internal/service/cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const loggingServiceKey = "logging_service"

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
	Auth           middleware.WebhookAuthConfig
	// RateLimiter is used instead of building one from RateLimit and RateWindow. Its
	// owner stops it.
	RateLimiter *middleware.RateLimiter
	// IdempotencyCache enables Idempotency-Key replay when set.
	IdempotencyCache cache.Cache[middleware.CachedResponse]
	// LoggingService stores request and tool-call logs. Nil disables the log store
	// and the /api/logs route.
	LoggingService service.LoggingService
	// Knowledge serves /api/quote, /api/materials and /api/depths when set.
	Knowledge *KnowledgeHandler
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: middleware.DefaultTimeoutConfig().Timeout,
	}
}

// NewRouter creates and configures the Gin router for the voice agent.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	configureAPIMiddleware(api, &cfg)

	for _, group := range apiRouteGroups(handler, &cfg) {
		group.RegisterRoutes(api)
	}

	return router
}

func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
	)

	router.Use(func(c *gin.Context) {
		if cfg.LoggingService != nil {
			c.Set(loggingServiceKey, cfg.LoggingService)
		}
		c.Next()
	})
}

func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// configureAPIMiddleware orders the /api chain: authenticate, then rate limit by
// caller, then bound the request, then replay idempotent retries.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.Auth.Enabled() {
		api.Use(middleware.WebhookAuth(cfg.Auth))
	}

	limiter := cfg.RateLimiter
	if limiter == nil && cfg.RateLimit > 0 {
		window := cfg.RateWindow
		if window <= 0 {
			window = time.Minute
		}
		limiter = middleware.NewRateLimiter(cfg.RateLimit, window)
	}
	if limiter != nil {
		api.Use(limiter.RateLimit())
	}

	api.Use(middleware.TimeoutWithDuration(cfg.RequestTimeout))

	if cfg.IdempotencyCache != nil {
		api.Use(middleware.Idempotency(middleware.IdempotencyConfig{
			Cache:   cfg.IdempotencyCache,
			Enabled: true,
		}))
	}
}

func apiRouteGroups(handler *Handler, cfg *RouterConfig) []RouteGroup {
	var groups []RouteGroup
	if handler != nil {
		groups = append(groups, NewWebhookRoutes(handler))
	}
	if cfg.Knowledge != nil {
		groups = append(groups, NewKnowledgeRoutes(cfg.Knowledge))
	}
	if cfg.LoggingService != nil {
		groups = append(groups, NewLogsRoutes(NewLogsHandler(cfg.LoggingService)))
	}
	return groups
}
