package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/milestonetrucks/voice-agent/internal/domain/model"
	"github.com/milestonetrucks/voice-agent/internal/service"
)

// Tool call outcomes recorded in the log store and the tool_calls_total metric.
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeNotFound        = "not_found"
	OutcomeUpstreamError   = "upstream_error"
	OutcomeTimeout         = "timeout"
	OutcomeInternalError   = "internal_error"
)

// AuditLog records a completed tool call with its outcome and the arguments worth
// keeping for the call transcript.
func AuditLog(loggingService service.LoggingService, c *gin.Context, tool, outcome string, fields map[string]any) {
	if loggingService == nil {
		return
	}
	store(loggingService, toolCallEntry(c, "info", tool, outcome, fields))
}

// AuditLogError records a failed tool call.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, tool, outcome string, err error, fields map[string]any) {
	if loggingService == nil {
		return
	}

	level := "warn"
	if outcome == OutcomeInternalError || outcome == OutcomeUpstreamError {
		level = "error"
	}
	entry := toolCallEntry(c, level, tool, outcome, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	store(loggingService, entry)
}

func toolCallEntry(c *gin.Context, level, tool, outcome string, fields map[string]any) *model.LogEntry {
	entry := &model.LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   "Tool call",
		RequestID: GetRequestID(c),
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Caller:    GetCaller(c),
		CallID:    GetCallID(c),
		Tool:      tool,
		Outcome:   outcome,
	}
	return entry.WithFields(fields)
}
