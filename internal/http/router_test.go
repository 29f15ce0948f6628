//go:build !integration

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/milestonetrucks/voice-agent/internal/domain/model"
	"github.com/milestonetrucks/voice-agent/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const deliveryBody = `{"zip_code": "43004", "total_weight_tons": 10}`

func TestRouter_InfrastructureRoutes(t *testing.T) {
	router, _ := setupRouter(t)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/healthz", http.StatusOK},
		{"/readyz", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/swagger/index.html", http.StatusOK},
		{"/api/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, get(router, tt.path).Code)
		})
	}
}

func TestRouter_RequestIDs(t *testing.T) {
	router, _ := setupRouter(t)

	t.Run("generated", func(t *testing.T) {
		w := postJSON(router, "/api/calculate-delivery", deliveryBody)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		w := postJSON(router, "/api/calculate-delivery", deliveryBody, middleware.RequestIDHeader, "req-abc")
		assert.Equal(t, "req-abc", w.Header().Get(middleware.RequestIDHeader))
	})
}

func TestRouter_SwaggerBasicAuth(t *testing.T) {
	router, _ := setupRouter(t, func(cfg *RouterConfig) {
		cfg.SwaggerUser = "docs"
		cfg.SwaggerPass = "secret"
	})

	assert.Equal(t, http.StatusUnauthorized, get(router, "/swagger/index.html").Code)

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.SetBasicAuth("docs", "secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_WebhookAuth(t *testing.T) {
	secret := []byte("router-test-secret")
	router, _ := setupRouter(t, func(cfg *RouterConfig) {
		cfg.Auth = middleware.WebhookAuthConfig{
			Secret:  secret,
			APIKeys: map[string]bool{"voice-key": true},
		}
	})

	token, err := middleware.IssueWebhookToken(secret, "", "voice-platform", time.Hour, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name       string
		headers    []string
		wantStatus int
	}{
		{"no credentials", nil, http.StatusUnauthorized},
		{"api key", []string{middleware.APIKeyHeader, "voice-key"}, http.StatusOK},
		{"wrong api key", []string{middleware.APIKeyHeader, "nope"}, http.StatusUnauthorized},
		{"bearer token", []string{"Authorization", "Bearer " + token}, http.StatusOK},
		{"garbage token", []string{"Authorization", "Bearer abc.def.ghi"}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/api/calculate-delivery", deliveryBody, tt.headers...)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}

	t.Run("probes stay open", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get(router, "/healthz").Code)
	})
}

func TestRouter_RateLimit(t *testing.T) {
	router, _ := setupRouter(t, func(cfg *RouterConfig) {
		cfg.RateLimit = 2
		cfg.RateWindow = time.Minute
	})

	for i := 0; i < 2; i++ {
		w := postJSON(router, "/api/calculate-delivery", deliveryBody)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := postJSON(router, "/api/calculate-delivery", deliveryBody)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRouter_SuppliedRateLimiterWins(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	t.Cleanup(limiter.Stop)
	router, _ := setupRouter(t, func(cfg *RouterConfig) {
		cfg.RateLimit = 100
		cfg.RateLimiter = limiter
	})

	require.Equal(t, http.StatusOK, postJSON(router, "/api/calculate-delivery", deliveryBody).Code)
	assert.Equal(t, http.StatusTooManyRequests, postJSON(router, "/api/calculate-delivery", deliveryBody).Code)
}

func TestRouter_Idempotency(t *testing.T) {
	router, _ := setupRouter(t, func(cfg *RouterConfig) {
		cfg.IdempotencyCache = middleware.NewMemoryIdempotencyCache(100, time.Minute)
	})
	body := `{"session_id": "abc123", "items": [{"sku": "OHMS-6", "quantity": 10, "price_per_ton": 45}]}`

	first := postJSON(router, "/api/add-to-cart", body, middleware.IdempotencyKeyHeader, "retry-1")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get("X-Idempotency-Replayed"))

	time.Sleep(2 * time.Millisecond)
	second := postJSON(router, "/api/add-to-cart", body, middleware.IdempotencyKeyHeader, "retry-1")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, decodeData[model.Cart](t, first).CartID, decodeData[model.Cart](t, second).CartID)
}

func TestRouter_RequestTimeout(t *testing.T) {
	router, cat := setupRouter(t, func(cfg *RouterConfig) {
		cfg.RequestTimeout = 20 * time.Millisecond
	})
	cat.On("ProductsByZip", mock.Anything, "43004").
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded)

	w := postJSON(router, "/api/check-service-area", `{"zip_code": "43004"}`)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, "Request timed out", decodeError(t, w).Message)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router, _ := setupRouter(t, func(cfg *RouterConfig) {
		cfg.CORSOrigins = []string{"https://tools.example.com"}
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/calculate-delivery", nil)
	req.Header.Set("Origin", "https://tools.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://tools.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
