package http

import (
	"context"
	"maps"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/milestonetrucks/voice-agent/internal/circuitbreaker"
	"golang.org/x/sync/errgroup"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker defines the interface for health check operations.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// HealthCheckFunc adapts a function such as MongoDB.HealthCheck or RedisCache.Ping.
type HealthCheckFunc func(ctx context.Context) error

// Check calls f.
func (f HealthCheckFunc) Check(ctx context.Context) error { return f(ctx) }

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	checkers        map[string]HealthChecker
	circuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:        make(map[string]HealthChecker),
		circuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// RegisterChecker adds a dependency to the readiness probe.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// RegisterCircuitBreaker registers a circuit breaker for health monitoring.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	h.circuitBreakers[name] = cb
}

// Register registers health endpoints on the router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK while the process is running.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles the readiness probe endpoint.
// @Summary     Readiness probe
// @Description Checks the log database and cache, and reports the store API and log database circuit breakers. An open breaker marks the service degraded.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	checks := h.runCheckers(ctx)
	ready := true
	for _, result := range checks {
		if result != "ok" {
			ready = false
		}
	}

	var breakers []circuitbreaker.Stats
	for _, name := range slices.Sorted(maps.Keys(h.circuitBreakers)) {
		stats := h.circuitBreakers[name].GetStats()
		checks[name+"_circuit"] = stats.State
		breakers = append(breakers, stats)
		ready = ready && stats.IsHealthy
	}

	if len(checks) == 0 {
		checks["service"] = "ok"
	}

	status, label := http.StatusOK, "ok"
	if !ready {
		status, label = http.StatusServiceUnavailable, "degraded"
	}
	body := gin.H{"status": label, "checks": checks}
	if len(breakers) > 0 {
		body["circuit_breakers"] = breakers
	}
	c.JSON(status, body)
}

// runCheckers probes every dependency in parallel and returns "ok" or the error text
// per name.
func (h *HealthHandler) runCheckers(ctx context.Context) map[string]any {
	var (
		mu      sync.Mutex
		g       errgroup.Group
		results = make(map[string]any, len(h.checkers)+len(h.circuitBreakers))
	)
	for name, checker := range h.checkers {
		g.Go(func() error {
			result := "ok"
			if err := checker.Check(ctx); err != nil {
				result = err.Error()
			}
			mu.Lock()
			results[name] = result
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}
