package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestPrometheusMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.POST("/api/add-to-cart", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/api/check-order-status", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	tests := []struct {
		path   string
		status string
	}{
		{"/api/add-to-cart", "200"},
		{"/api/check-order-status", "502"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			counter := HTTPRequestTotal.WithLabelValues(http.MethodPost, tt.path, tt.status)
			before := testutil.ToFloat64(counter)

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, tt.path, nil))

			assert.Equal(t, 1.0, testutil.ToFloat64(counter)-before)
		})
	}
}

func TestPrometheusMiddleware_UnmatchedRoutesShareALabel(t *testing.T) {
	router := gin.New()
	router.Use(PrometheusMiddleware())
	counter := HTTPRequestTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")

	before := testutil.ToFloat64(counter)
	for _, p := range []string{"/wp-login.php", "/.env", "/admin"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(counter)-before)
}

func TestCounters(t *testing.T) {
	tests := []struct {
		name   string
		record func()
		read   func() float64
		want   float64
	}{
		{
			name: "material calculation by status",
			record: func() {
				RecordMaterialCalculation(100*time.Millisecond, "success")
				RecordMaterialCalculation(5*time.Millisecond, "no_valid_materials")
			},
			read: func() float64 { return testutil.ToFloat64(MaterialCalculationsTotal.WithLabelValues("success")) },
			want: 1,
		},
		{
			name: "tool call by outcome",
			record: func() {
				RecordToolCall("check-service-area", "ok")
				RecordToolCall("check-service-area", "ok")
			},
			read: func() float64 { return testutil.ToFloat64(ToolCallsTotal.WithLabelValues("check-service-area", "ok")) },
			want: 2,
		},
		{
			name:   "catalog request by status",
			record: func() { RecordCatalogRequest("product_by_sku", "not_found", 20*time.Millisecond) },
			read: func() float64 {
				return testutil.ToFloat64(CatalogRequestsTotal.WithLabelValues("product_by_sku", "not_found"))
			},
			want: 1,
		},
		{
			name: "cache hits only",
			record: func() {
				RecordCacheOperation("get", "hit")
				RecordCacheOperation("get", "miss")
			},
			read: func() float64 { return testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("get", "hit")) },
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.read()
			tt.record()
			assert.Equal(t, tt.want, tt.read()-before)
		})
	}
}

func TestUpdateCacheMetrics_PerCache(t *testing.T) {
	UpdateCacheMetrics("catalog", 50, 1000)
	UpdateCacheMetrics("idempotency", 3, 200)

	assert.Equal(t, 50.0, testutil.ToFloat64(CacheEntries.WithLabelValues("catalog")))
	assert.Equal(t, 1000.0, testutil.ToFloat64(CacheCapacity.WithLabelValues("catalog")))
	assert.Equal(t, 3.0, testutil.ToFloat64(CacheEntries.WithLabelValues("idempotency")))
}

func TestSetCircuitState(t *testing.T) {
	gauge := CircuitBreakerState.WithLabelValues("woocommerce")

	SetCircuitState("woocommerce", 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(gauge))

	SetCircuitState("woocommerce", 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(gauge))
}
