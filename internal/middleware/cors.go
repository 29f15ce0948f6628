package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// DefaultCORSOrigins are used when none are configured.
var DefaultCORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

// CORS allows browser clients (the voice platform's tool tester, local dashboards) from
// origins to call the API.
func CORS(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = DefaultCORSOrigins
	}

	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language",
			"Authorization", "X-API-Key", "Idempotency-Key", RequestIDHeader, CallIDHeader,
		},
		ExposeHeaders:    []string{RequestIDHeader, idempotencyReplayedHeader},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
