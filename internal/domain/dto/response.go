package dto

import (
	"net/http"
	"time"
)

// Error codes carried in ErrorResponse.Error. Clients branch on these; Message is
// for the caller's ears.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInternal       = "internal_error"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeNotFound       = "not_found"
	ErrCodeRateLimit      = "rate_limit_exceeded"
	ErrCodeTimeout        = "timeout"
	// ErrCodeUpstream means the store API failed or was unreachable.
	ErrCodeUpstream = "upstream_error"
	// ErrCodeUnavailable means a backing store of this service is down.
	ErrCodeUnavailable = "service_unavailable"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:         ErrCodeInvalidRequest,
	http.StatusUnauthorized:       ErrCodeUnauthorized,
	http.StatusNotFound:           ErrCodeNotFound,
	http.StatusRequestTimeout:     ErrCodeTimeout,
	http.StatusTooManyRequests:    ErrCodeRateLimit,
	http.StatusBadGateway:         ErrCodeUpstream,
	http.StatusServiceUnavailable: ErrCodeUnavailable,
	http.StatusGatewayTimeout:     ErrCodeTimeout,
}

// SuccessResponse wraps every tool result.
// @Description Successful API response wrapper
type SuccessResponse struct {
	Data      any       `json:"data" swaggertype:"object"`
	RequestID string    `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time `json:"timestamp" example:"2026-10-01T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse is the error envelope. Message is written to be read aloud by the
// voice agent; Details names the offending field on validation failures.
// @Description Standardized error response
type ErrorResponse struct {
	Error     string            `json:"error" example:"invalid_request"`
	Message   string            `json:"message,omitempty" example:"I need the ZIP code for the delivery address to check if we service that area."`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2026-10-01T10:00:00Z"`
} // @name ErrorResponse

// NewError stamps a new error envelope with the current time.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: code, Message: message, Timestamp: time.Now()}
}

func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus maps an HTTP status to its error code; unknown statuses are
// internal errors.
func ErrCodeFromStatus(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return ErrCodeInternal
}
