package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/milestonetrucks/voice-agent/internal/circuitbreaker"
	"github.com/milestonetrucks/voice-agent/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		BaseURL:        srv.URL + "/",
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
		Timeout:        2 * time.Second,
	}, opts...)
	require.NoError(t, err)
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"complete", Config{BaseURL: "https://x", ConsumerKey: "k", ConsumerSecret: "s"}, false},
		{"missing url", Config{ConsumerKey: "k", ConsumerSecret: "s"}, true},
		{"missing key", Config{BaseURL: "https://x", ConsumerSecret: "s"}, true},
		{"blank secret", Config{BaseURL: "https://x", ConsumerKey: "k", ConsumerSecret: "  "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotConfigured)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewClient_RejectsMissingConfig(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_ProductsByZip(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/products", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "43004", q.Get("tag"))
		assert.Equal(t, "100", q.Get("per_page"))
		assert.Equal(t, "publish", q.Get("status"))
		assert.Equal(t, "ck_test", q.Get("consumer_key"))
		assert.Equal(t, "cs_test", q.Get("consumer_secret"))

		writeJSON(t, w, []map[string]any{
			{
				"id":    101,
				"name":  "Crusher Run | STONE DELIVERY | Columbus",
				"sku":   "OHMS-6",
				"price": "45.00",
				"meta_data": []map[string]any{
					{"key": "density", "value": "1.4"},
					{"key": "truck_max_quantity", "value": 20},
				},
			},
		})
	})

	products, err := c.ProductsByZip(context.Background(), "43004")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "OHMS-6", products[0].SKU)
	assert.Equal(t, "Crusher Run", products[0].CleanName())
	assert.Equal(t, 45.0, products[0].PricePerTon())
	assert.Equal(t, 20, products[0].TruckCapacity())
}

func TestClient_ProductBySKU(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))
		if r.URL.Query().Get("sku") == "OHMS-6" {
			writeJSON(t, w, []map[string]any{{"id": 101, "sku": "OHMS-6", "name": "Crusher Run"}})
			return
		}
		writeJSON(t, w, []map[string]any{})
	})

	p, err := c.ProductBySKU(context.Background(), "OHMS-6")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(101), p.ID)

	p, err = c.ProductBySKU(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestClient_OrderByID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wp-json/wc/v3/orders/5123":
			writeJSON(t, w, map[string]any{"id": 5123, "status": "processing", "total": "714.76"})
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":"woocommerce_rest_shop_order_invalid_id"}`))
		}
	})

	o, err := c.OrderByID(context.Background(), "5123")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, "processing", o.Status)
	assert.Equal(t, 714.76, o.TotalAmount())

	o, err = c.OrderByID(context.Background(), "999")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestClient_OrdersByCustomer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "10", q.Get("per_page"))
		assert.Equal(t, "date", q.Get("orderby"))
		assert.Equal(t, "desc", q.Get("order"))
		assert.Equal(t, "jane@example.com", q.Get("search"))

		writeJSON(t, w, []map[string]any{
			{"id": 3, "billing": map[string]any{"phone": "+1 (614) 555-0100"}},
			{"id": 2, "billing": map[string]any{"phone": "740-555-0199"}},
		})
	})

	orders, err := c.OrdersByCustomer(context.Background(), CustomerQuery{Email: "jane@example.com", Phone: "555-0100"})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(3), orders[0].ID)
}

func TestFilterByPhone(t *testing.T) {
	orders := []model.Order{
		{ID: 1, Billing: model.Address{Phone: "6145550100"}},
		{ID: 2, Billing: model.Address{Phone: "(740) 555-0199"}},
		{ID: 3, Billing: model.Address{Phone: "0100"}},
		{ID: 4, Billing: model.Address{Phone: ""}},
		{ID: 5, Billing: model.Address{Phone: "+1 614 555 0100"}},
	}

	tests := []struct {
		name  string
		phone string
		ids   []int64
	}{
		{"empty phone keeps all", "", []int64{1, 2, 3, 4, 5}},
		{"full number", "614-555-0100", []int64{1, 5}},
		{"country code", "+1 (614) 555-0100", []int64{1, 5}},
		{"local number", "555-0199", []int64{2}},
		{"too short matches nothing", "0199", []int64{}},
		{"single digit matches nothing", "1", []int64{}},
		{"no match", "9999999", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := []int64{}
			for _, o := range FilterByPhone(orders, tt.phone) {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestFilterByPhone_SkipsOrdersWithoutPhone(t *testing.T) {
	orders := []model.Order{
		{ID: 7, Billing: model.Address{Phone: ""}},
		{ID: 8, Billing: model.Address{Phone: "7405550199"}},
	}

	assert.Empty(t, FilterByPhone(orders, "614-555-0100"))
}

func TestClient_ServerErrorIsStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := c.ProductsByZip(context.Background(), "43004")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "products_by_zip", statusErr.Op)
}

func TestClient_CircuitBreakerOpensOnFailures(t *testing.T) {
	var calls atomic.Int32
	cb := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
		Name:             "catalog-test",
	})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}, WithCircuitBreaker(cb))

	for i := 0; i < 2; i++ {
		_, err := c.ProductBySKU(context.Background(), "X")
		require.Error(t, err)
	}

	_, err := c.ProductBySKU(context.Background(), "X")
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_NotFoundDoesNotTripBreaker(t *testing.T) {
	cb := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
		Name:             "catalog-test",
	})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, WithCircuitBreaker(cb))

	for i := 0; i < 3; i++ {
		o, err := c.OrderByID(context.Background(), "1")
		require.NoError(t, err)
		assert.Nil(t, o)
	}
	assert.Equal(t, circuitbreaker.StateClosed, cb.State())
}

func TestClient_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ProductsByZip(ctx, "43004")
	assert.ErrorIs(t, err, context.Canceled)
}
