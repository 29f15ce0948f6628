// Package middleware provides the HTTP middleware in front of the voice agent webhooks.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the HTTP header name for request ID.
	RequestIDHeader = "X-Request-ID"
	// CallIDHeader carries the voice platform's id for the phone call a tool call belongs to.
	CallIDHeader = "X-Call-ID"
)

// ContextKey type for context keys to avoid collisions.
type ContextKey string

const (
	// RequestIDKey is the context key for request ID.
	RequestIDKey ContextKey = "request_id"
	// CallIDKey is the context key for the phone call id.
	CallIDKey ContextKey = "call_id"
	// CallerKey is the context key for the authenticated caller.
	CallerKey ContextKey = "caller"
)

// RequestID ensures each request has an ID, reusing X-Request-ID when the client sends
// one, and records the call id when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(string(RequestIDKey), requestID)
		c.Header(RequestIDHeader, requestID)

		if callID := c.GetHeader(CallIDHeader); callID != "" {
			c.Set(string(CallIDKey), callID)
		}
		c.Next()
	}
}

// GetRequestID retrieves the request ID from the gin context.
func GetRequestID(c *gin.Context) string {
	return c.GetString(string(RequestIDKey))
}

// GetCallID returns the phone call id, or "" when the platform did not send one.
func GetCallID(c *gin.Context) string {
	return c.GetString(string(CallIDKey))
}

// GetCaller returns the authenticated caller, or "" when auth is disabled.
func GetCaller(c *gin.Context) string {
	return c.GetString(string(CallerKey))
}
