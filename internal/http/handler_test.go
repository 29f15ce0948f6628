//go:build !integration

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/milestonetrucks/voice-agent/internal/catalog"
	"github.com/milestonetrucks/voice-agent/internal/domain/model"
	"github.com/milestonetrucks/voice-agent/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckServiceArea(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		setup       func(*mocks.MockCatalog)
		wantStatus  int
		wantMessage string
		check       func(*testing.T, model.ServiceArea)
	}{
		{
			name: "served zip",
			body: `{"zip_code": "43004-1234"}`,
			setup: func(m *mocks.MockCatalog) {
				m.On("ProductsByZip", mock.Anything, "43004").Return([]model.Product{crusherRun()}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, sa model.ServiceArea) {
				assert.True(t, sa.Serviceable)
				assert.Equal(t, "43004", sa.ZipCode)
				require.NotNil(t, sa.YardLocation)
				assert.Equal(t, "Columbus", *sa.YardLocation)
				require.Len(t, sa.AvailableProducts, 1)
				assert.Equal(t, "OHMS-6", sa.AvailableProducts[0].SKU)
			},
		},
		{
			name: "numeric zip not served",
			body: `{"zip_code": 90210}`,
			setup: func(m *mocks.MockCatalog) {
				m.On("ProductsByZip", mock.Anything, "90210").Return([]model.Product{}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, sa model.ServiceArea) {
				assert.False(t, sa.Serviceable)
				assert.Empty(t, sa.AvailableProducts)
				assert.Contains(t, sa.Message, "Ohio")
			},
		},
		{
			name:        "missing zip",
			body:        `{}`,
			setup:       func(*mocks.MockCatalog) {},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "I need your delivery ZIP code",
		},
		{
			name:        "short zip",
			body:        `{"zip_code": "430"}`,
			setup:       func(*mocks.MockCatalog) {},
			wantStatus:  http.StatusBadRequest,
			wantMessage: `"430" doesn't look like a valid ZIP code`,
		},
		{
			name:        "malformed body",
			body:        `{"zip_code":`,
			setup:       func(*mocks.MockCatalog) {},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request body",
		},
		{
			name: "store down",
			body: `{"zip_code": "43004"}`,
			setup: func(m *mocks.MockCatalog) {
				m.On("ProductsByZip", mock.Anything, "43004").Return(nil, errors.New("catalog: status 503"))
			},
			wantStatus:  http.StatusBadGateway,
			wantMessage: "I'm having trouble checking our service areas",
		},
		{
			name: "store timed out",
			body: `{"zip_code": "43004"}`,
			setup: func(m *mocks.MockCatalog) {
				m.On("ProductsByZip", mock.Anything, "43004").
					Return(nil, fmt.Errorf("products by zip: %w", context.DeadlineExceeded))
			},
			wantStatus:  http.StatusGatewayTimeout,
			wantMessage: "Request timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, cat := setupRouter(t)
			tt.setup(cat)

			w := postJSON(router, "/api/check-service-area", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.check != nil {
				tt.check(t, decodeData[model.ServiceArea](t, w))
			}
			if tt.wantMessage != "" {
				assert.Contains(t, decodeError(t, w).Message, tt.wantMessage)
			}
			cat.AssertExpectations(t)
		})
	}
}

func TestCheckServiceArea_ValidationDetails(t *testing.T) {
	router, _ := setupRouter(t)

	w := postJSON(router, "/api/check-service-area", `{"zip_code": "430"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "zip_code", decodeError(t, w).Details["field"])
}

func TestGetMaterialRecommendations(t *testing.T) {
	t.Run("driveway for heavy trucks", func(t *testing.T) {
		router, cat := setupRouter(t)
		cat.On("ProductsByZip", mock.Anything, "43004").Return([]model.Product{crusherRun()}, nil)

		w := postJSON(router, "/api/get-material-recommendations",
			`{"project_type": "Driveway", "zip_code": "43004", "vehicle_type": "heavy trucks"}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		result := decodeData[model.RecommendationResult](t, w)
		require.Len(t, result.Recommendations, 1)
		assert.Equal(t, "OHMS-6", result.Recommendations[0].SKU)
		assert.Equal(t, float64(6), result.Recommendations[0].RecommendedDepthInches)
		assert.NotEmpty(t, result.NextQuestion)
	})

	t.Run("missing project type", func(t *testing.T) {
		router, _ := setupRouter(t)
		w := postJSON(router, "/api/get-material-recommendations", `{"zip_code": "43004"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Message, "What kind of project")
	})

	t.Run("store down", func(t *testing.T) {
		router, cat := setupRouter(t)
		cat.On("ProductsByZip", mock.Anything, "43004").Return(nil, catalog.ErrNotConfigured)

		w := postJSON(router, "/api/get-material-recommendations", `{"project_type": "patio", "zip_code": "43004"}`)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, decodeError(t, w).Message, "trouble getting recommendations")
	})
}

func TestCalculateMaterials(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		setup       func(*mocks.MockCatalog)
		wantStatus  int
		wantMessage string
		check       func(*testing.T, model.MaterialsResult)
	}{
		{
			name: "spoken dimensions",
			body: `{"length_ft": "50 feet", "width_ft": 12, "depth_inches": "4", "materials": [{"sku": "OHMS-6"}, {"sku": "NOPE"}]}`,
			setup: func(m *mocks.MockCatalog) {
				p := crusherRun()
				m.On("ProductBySKU", mock.Anything, "OHMS-6").Return(&p, nil)
				m.On("ProductBySKU", mock.Anything, "NOPE").Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, r model.MaterialsResult) {
				require.Len(t, r.Materials, 1)
				assert.InDelta(t, 10.4, r.Totals.TotalTons, 0.001)
				assert.InDelta(t, 466.67, r.Totals.Subtotal, 0.001)
				assert.Equal(t, 1, r.Totals.TotalTruckLoads)
				assert.Contains(t, r.Message, "$466.67")
			},
		},
		{
			name:        "missing dimensions",
			body:        `{"length_ft": 50, "materials": [{"sku": "OHMS-6"}]}`,
			setup:       func(*mocks.MockCatalog) {},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "I need the dimensions",
		},
		{
			name:        "unreadable dimensions",
			body:        `{"length_ft": "fifty", "width_ft": 12, "depth_inches": 4, "materials": [{"sku": "OHMS-6"}]}`,
			setup:       func(*mocks.MockCatalog) {},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "couldn't understand those measurements",
		},
		{
			name:        "numeric zero depth is missing",
			body:        `{"length_ft": 50, "width_ft": 12, "depth_inches": 0, "materials": [{"sku": "OHMS-6"}]}`,
			setup:       func(*mocks.MockCatalog) {},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "I need the dimensions",
		},
		{
			name:        "spoken zero depth",
			body:        `{"length_ft": 50, "width_ft": 12, "depth_inches": "0", "materials": [{"sku": "OHMS-6"}]}`,
			setup:       func(*mocks.MockCatalog) {},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "greater than zero",
		},
		{
			name: "no valid materials",
			body: `{"length_ft": 50, "width_ft": 12, "depth_inches": 4, "materials": [{"sku": "NOPE"}]}`,
			setup: func(m *mocks.MockCatalog) {
				m.On("ProductBySKU", mock.Anything, "NOPE").Return(nil, nil)
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "couldn't find the materials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, cat := setupRouter(t)
			tt.setup(cat)

			w := postJSON(router, "/api/calculate-materials", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.check != nil {
				tt.check(t, decodeData[model.MaterialsResult](t, w))
			}
			if tt.wantMessage != "" {
				assert.Contains(t, decodeError(t, w).Message, tt.wantMessage)
			}
		})
	}
}

func TestCalculateDelivery(t *testing.T) {
	router, _ := setupRouter(t)

	t.Run("two trucks", func(t *testing.T) {
		w := postJSON(router, "/api/calculate-delivery", `{"zip_code": "43004", "total_weight_tons": "25 tons"}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		est := decodeData[model.DeliveryEstimate](t, w)
		assert.Equal(t, 2, est.TrucksRequired)
		assert.Equal(t, 350.0, est.DeliveryFee)
	})

	t.Run("missing weight", func(t *testing.T) {
		w := postJSON(router, "/api/calculate-delivery", `{"zip_code": "43004"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Message, "total weight")
	})
}

func TestAddToCart(t *testing.T) {
	router, _ := setupRouter(t)

	t.Run("cart with delivery", func(t *testing.T) {
		w := postJSON(router, "/api/add-to-cart", `{
			"session_id": "abc123",
			"items": [{"sku": "OHMS-6", "product_name": "Crusher Run", "quantity": 10.4, "price_per_ton": 45}],
			"delivery": {"fee": 200, "trucks": 1}
		}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		cart := decodeData[model.Cart](t, w)
		assert.Contains(t, cart.CartID, "cart_abc123_")
		assert.InDelta(t, 668.0, cart.Subtotal, 0.001)
		assert.InDelta(t, 46.76, cart.TaxEstimate, 0.001)
		assert.InDelta(t, 714.76, cart.CartTotal, 0.001)
	})

	t.Run("missing session", func(t *testing.T) {
		w := postJSON(router, "/api/add-to-cart", `{"items": [{"sku": "OHMS-6"}]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Message, "technical issue")
	})
}

func TestPrefillCheckout(t *testing.T) {
	router, _ := setupRouter(t)

	t.Run("prefills", func(t *testing.T) {
		w := postJSON(router, "/api/prefill-checkout",
			`{"cart_id": "cart_abc123_1", "customer_name": "Jane Doe", "phone": "(614) 555-0100", "zip_code": 43004}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		checkout := decodeData[model.Checkout](t, w)
		assert.Equal(t, "https://store.example/checkout/", checkout.CheckoutURL)
		assert.Equal(t, "Jane", checkout.CustomerData.Billing.FirstName)
		assert.Equal(t, "6145550100", checkout.CustomerData.Billing.Phone)
	})

	t.Run("missing phone", func(t *testing.T) {
		w := postJSON(router, "/api/prefill-checkout", `{"cart_id": "c", "customer_name": "Jane"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Message, "phone number")
	})
}

func TestCheckOrderStatus(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		setup       func(*mocks.MockCatalog)
		wantStatus  int
		wantMessage string
	}{
		{
			name: "found by number",
			body: `{"order_id": "#5123"}`,
			setup: func(m *mocks.MockCatalog) {
				m.On("OrderByID", mock.Anything, "5123").
					Return(&model.Order{ID: 5123, Number: "5123", Status: "processing", Total: "714.76"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "unknown number",
			body: `{"order_id": 999}`,
			setup: func(m *mocks.MockCatalog) {
				m.On("OrderByID", mock.Anything, "999").Return(nil, nil)
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: "couldn't find an order with number 999",
		},
		{
			name: "nothing for email",
			body: `{"email": "jane@example.com"}`,
			setup: func(m *mocks.MockCatalog) {
				m.On("OrdersByCustomer", mock.Anything, catalog.CustomerQuery{Email: "jane@example.com"}).
					Return([]model.Order{}, nil)
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: "email",
		},
		{
			name:        "no identifier",
			body:        `{}`,
			setup:       func(*mocks.MockCatalog) {},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "order number, phone number, or email",
		},
		{
			name: "store down",
			body: `{"order_id": "5123"}`,
			setup: func(m *mocks.MockCatalog) {
				m.On("OrderByID", mock.Anything, "5123").Return(nil, errors.New("catalog: status 500"))
			},
			wantStatus:  http.StatusBadGateway,
			wantMessage: "trouble looking up your order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, cat := setupRouter(t)
			tt.setup(cat)

			w := postJSON(router, "/api/check-order-status", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusOK {
				status := decodeData[model.OrderStatus](t, w)
				assert.True(t, status.Found)
				assert.Equal(t, "Processing", status.StatusDisplay)
			}
			if tt.wantMessage != "" {
				assert.Contains(t, decodeError(t, w).Message, tt.wantMessage)
			}
			cat.AssertExpectations(t)
		})
	}
}

func TestToolCalls_AreAudited(t *testing.T) {
	logs := &mocks.MockLoggingService{}
	logs.On("CreateLog", mock.Anything, mock.Anything).Return(nil)
	router, _ := setupRouter(t, func(cfg *RouterConfig) { cfg.LoggingService = logs })

	w := postJSON(router, "/api/calculate-delivery", `{"zip_code": "43004", "total_weight_tons": 10}`,
		"X-Call-ID", "call-42")
	require.Equal(t, http.StatusOK, w.Code)

	require.Eventually(t, func() bool { return len(logs.Entries()) == 2 }, timeoutForAsync, tick)

	var tool model.LogEntry
	for _, e := range logs.Entries() {
		if e.Tool != "" {
			tool = e
		}
	}
	assert.Equal(t, ToolCalculateDelivery, tool.Tool)
	assert.Equal(t, "success", tool.Outcome)
	assert.Equal(t, "call-42", tool.CallID)
	assert.Equal(t, "43004", tool.Fields["zip_code"])
}
