//go:build !integration

package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/milestonetrucks/voice-agent/internal/domain/dto"
	"github.com/milestonetrucks/voice-agent/internal/domain/model"
	"github.com/milestonetrucks/voice-agent/internal/knowledge"
	"github.com/milestonetrucks/voice-agent/internal/mocks"
	"github.com/milestonetrucks/voice-agent/internal/service"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newServices(cat *mocks.MockCatalog) Services {
	_, rec := knowledge.MustLoadDefault()
	return Services{
		ServiceArea:     service.NewServiceAreaService(cat),
		Recommendations: service.NewRecommendationService(cat, rec),
		Materials:       service.NewMaterialsService(cat, 18),
		Delivery:        service.NewDeliveryService(service.DefaultDeliveryConfig()),
		Cart:            service.NewCartService(0.07),
		Checkout:        service.NewCheckoutService(service.CheckoutConfig{StoreURL: "https://store.example"}),
		OrderStatus:     service.NewOrderStatusService(cat),
	}
}

func setupRouter(t *testing.T, opts ...func(*RouterConfig)) (*gin.Engine, *mocks.MockCatalog) {
	t.Helper()
	cat := &mocks.MockCatalog{}
	kb, _ := knowledge.MustLoadDefault()

	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	cfg.Knowledge = NewKnowledgeHandler(kb, 18)
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewRouter(NewHandler(newServices(cat)), NewHealthHandler(), cfg), cat
}

func postJSON(router *gin.Engine, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

// decodeData unwraps the success envelope into T.
func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data      json.RawMessage `json:"data"`
		RequestID string          `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	require.NotEmpty(t, envelope.RequestID)

	var out T
	require.NoError(t, json.Unmarshal(envelope.Data, &out))
	return out
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func crusherRun() model.Product {
	return model.Product{
		ID:          101,
		Name:        "Crusher Run | STONE DELIVERY | Columbus",
		SKU:         "OHMS-6",
		Price:       "45.00",
		StockStatus: model.StockStatusInStock,
		Categories:  []model.ProductCategory{{ID: 7, Name: "Gravel & Stone Columbus"}},
		MetaData: []model.MetaData{
			{Key: model.MetaDensity, Value: "1.4"},
			{Key: model.MetaTruckCapacity, Value: "18"},
		},
	}
}

const (
	timeoutForAsync = time.Second
	tick            = 5 * time.Millisecond
)
