//go:build !integration

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		wantID     string
		wantCallID string
	}{
		{name: "generates an id", headers: nil},
		{name: "keeps the client id", headers: map[string]string{RequestIDHeader: "req-1"}, wantID: "req-1"},
		{
			name:       "records the call id",
			headers:    map[string]string{RequestIDHeader: "req-2", CallIDHeader: "call-9"},
			wantID:     "req-2",
			wantCallID: "call-9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID, gotCallID string
			router := gin.New()
			router.Use(RequestID())
			router.GET("/test", func(c *gin.Context) {
				gotID = GetRequestID(c)
				gotCallID = GetCallID(c)
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if tt.wantID == "" {
				_, err := uuid.Parse(gotID)
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantID, gotID)
			}
			assert.Equal(t, gotID, w.Header().Get(RequestIDHeader))
			assert.Equal(t, tt.wantCallID, gotCallID)
		})
	}
}

func TestGetCaller_Empty(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetCaller(c))
	assert.Empty(t, GetRequestID(c))
}
