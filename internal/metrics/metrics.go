// Package metrics exposes the Prometheus collectors for the voice agent service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "voice_agent"

// unmatchedRoute labels requests that hit no registered route, so scanners cannot
// blow up label cardinality.
const unmatchedRoute = "unmatched"

var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Time spent serving HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	HTTPRequestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served.",
	}, []string{"method", "route", "status"})

	// ToolCallsTotal counts webhook tool invocations by outcome (ok, validation_error, ...).
	ToolCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tool_calls_total",
		Help:      "Voice agent tool calls by tool and outcome.",
	}, []string{"tool", "outcome"})

	MaterialCalculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "calculator",
		Name:      "runs_total",
		Help:      "Multi-material quantity calculations by status.",
	}, []string{"status"})

	// MaterialCalculationDuration includes the catalog lookups for every requested SKU.
	MaterialCalculationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "calculator",
		Name:      "run_duration_seconds",
		Help:      "Time spent on a multi-material calculation.",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	})

	CatalogRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "catalog",
		Name:      "request_duration_seconds",
		Help:      "Store API latency by operation.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"operation"})

	CatalogRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "catalog",
		Name:      "requests_total",
		Help:      "Store API calls by operation and status.",
	}, []string{"operation", "status"})

	CacheOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "operations_total",
		Help:      "Cache operations by kind and result.",
	}, []string{"operation", "result"})

	CacheEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "entries",
		Help:      "Entries currently held, per in-process cache.",
	}, []string{"cache"})

	CacheCapacity = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "capacity",
		Help:      "Configured capacity, per in-process cache.",
	}, []string{"cache"})

	// CircuitBreakerState is 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_state",
		Help:      "Circuit breaker state (0 closed, 1 open, 2 half-open).",
	}, []string{"name"})
)

// PrometheusMiddleware records latency and a request count per route template.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		start := time.Now()

		c.Next()

		labels := []string{c.Request.Method, route, strconv.Itoa(c.Writer.Status())}
		HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(labels...).Inc()
	}
}

func RecordMaterialCalculation(duration time.Duration, status string) {
	MaterialCalculationsTotal.WithLabelValues(status).Inc()
	MaterialCalculationDuration.Observe(duration.Seconds())
}

func RecordToolCall(tool, outcome string) {
	ToolCallsTotal.WithLabelValues(tool, outcome).Inc()
}

func RecordCatalogRequest(operation, status string, duration time.Duration) {
	CatalogRequestsTotal.WithLabelValues(operation, status).Inc()
	CatalogRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics publishes the size of the named cache.
func UpdateCacheMetrics(cache string, size, capacity int) {
	CacheEntries.WithLabelValues(cache).Set(float64(size))
	CacheCapacity.WithLabelValues(cache).Set(float64(capacity))
}

// SetCircuitState publishes the state of the named breaker.
func SetCircuitState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
