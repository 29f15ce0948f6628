package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/milestonetrucks/voice-agent/internal/service/cache"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency key (RFC standard).
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is the TTL for cached idempotency responses.
	IdempotencyKeyTTL = 5 * time.Minute

	idempotencyReplayedHeader = "X-Idempotency-Replayed"
)

// CachedResponse is a stored response replayed for a repeated Idempotency-Key.
type CachedResponse struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	Cache   cache.Cache[CachedResponse]
	Enabled bool
}

// NewMemoryIdempotencyCache returns an in-process store for replayed responses.
func NewMemoryIdempotencyCache(capacity int, ttl time.Duration) cache.Cache[CachedResponse] {
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}
	return cache.NewShardedCache[CachedResponse](capacity, ttl, 0).Named("idempotency")
}

// Idempotency replays the stored response when a POST arrives again with the same
// Idempotency-Key, path and body. Voice platforms retry tool calls on slow responses,
// and a replay keeps add-to-cart and checkout from running twice.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		cacheKey := idempotencyCacheKey(key, c)
		ctx := c.Request.Context()

		if cached, ok := cfg.Cache.Get(ctx, cacheKey); ok {
			c.Header(idempotencyReplayedHeader, "true")
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		writer := &responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status >= 200 && status < 300 {
			cfg.Cache.Set(ctx, cacheKey, CachedResponse{
				StatusCode:  status,
				ContentType: writer.Header().Get("Content-Type"),
				Body:        writer.body.Bytes(),
			})
		}
	}
}

// idempotencyCacheKey hashes the key with the caller, path and body so a reused key
// with a different payload is treated as a new request.
func idempotencyCacheKey(idempotencyKey string, c *gin.Context) string {
	hasher := sha256.New()
	hasher.Write([]byte(idempotencyKey))
	hasher.Write([]byte{0})
	hasher.Write([]byte(GetCaller(c)))
	hasher.Write([]byte{0})
	hasher.Write([]byte(c.Request.URL.Path))
	hasher.Write([]byte{0})

	if c.Request.Body != nil {
		bodyBytes, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		hasher.Write(bodyBytes)
	}

	return "idem:" + hex.EncodeToString(hasher.Sum(nil))
}

// responseWriter tees the response body for caching.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
