package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/milestonetrucks/voice-agent/internal/domain/model"
	"github.com/milestonetrucks/voice-agent/internal/logger"
	"github.com/milestonetrucks/voice-agent/internal/service"
	"github.com/rs/zerolog"
)

// unstoredPaths are polled by orchestrators and scrapers; they reach the console only.
var unstoredPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// RequestLogger writes one console line per request and, when loggingService is
// set, a stored entry tagged with the call and caller.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		level := levelForStatus(status)
		entry := &model.LogEntry{
			Timestamp:  start,
			Level:      level.String(),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: status,
			Duration:   time.Since(start).Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			Caller:     GetCaller(c),
			CallID:     GetCallID(c),
		}

		log := logger.ForCall(entry.CallID, "")
		log.WithLevel(level).
			Str("request_id", entry.RequestID).
			Str("caller", entry.Caller).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status_code", status).
			Int64("duration_ms", entry.Duration).
			Str("ip", entry.IP).
			Msg(entry.Message)

		if loggingService != nil && !unstoredPaths[entry.Path] {
			store(loggingService, entry)
		}
	}
}

func levelForStatus(status int) zerolog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= http.StatusBadRequest:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
