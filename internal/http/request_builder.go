package http

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/milestonetrucks/voice-agent/internal/domain/dto"
	"github.com/milestonetrucks/voice-agent/internal/i18n"
	"github.com/milestonetrucks/voice-agent/internal/middleware"
)

// envelopePool recycles response envelopes. gin serializes synchronously, so an
// envelope can go back as soon as c.JSON returns.
type envelopePool[T any] struct {
	p sync.Pool
}

func (ep *envelopePool[T]) get() *T {
	if v, ok := ep.p.Get().(*T); ok {
		return v
	}
	return new(T)
}

func (ep *envelopePool[T]) put(v *T) {
	var zero T
	*v = zero
	ep.p.Put(v)
}

var (
	successPool envelopePool[dto.SuccessResponse]
	errorPool   envelopePool[dto.ErrorResponse]
)

// ResponseBuilder writes the success and error envelopes.
type ResponseBuilder struct {
	c       *gin.Context
	details map[string]string
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// WithDetails attaches machine-readable details to the next error response.
func (b *ResponseBuilder) WithDetails(details map[string]string) *ResponseBuilder {
	b.details = details
	return b
}

// Success sends a successful response with the given data.
func (b *ResponseBuilder) Success(statusCode int, data any) {
	resp := successPool.get()
	defer successPool.put(resp)

	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()
	b.c.JSON(statusCode, resp)
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data any) {
	b.Success(http.StatusOK, data)
}

// Error sends an error response whose message is the translation of messageKey.
// Server errors are attached to the context for ErrorHandler to log.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.Prompt(statusCode, messageKey, nil, err)
}

// Prompt sends an error response whose message is the spoken prompt messageKey filled
// with args.
func (b *ResponseBuilder) Prompt(statusCode int, messageKey string, args []any, err error) {
	message := i18n.GetTranslator().Translatef(messageKey, i18n.GetLocale(b.c), args...)
	b.ErrorWithMessage(statusCode, message, err)
}

// ErrorWithMessage sends an error response with a custom message.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	resp := errorPool.get()
	defer errorPool.put(resp)

	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = message
	resp.Details = b.details
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	if err != nil && statusCode >= http.StatusInternalServerError {
		_ = b.c.Error(err)
	}

	b.c.AbortWithStatusJSON(statusCode, resp)
}

// BuildRequest binds the JSON body into a new T.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Validator interface for types that can validate themselves.
type Validator interface {
	Validate() error
}

// BuildRequestAndValidate binds the body and runs Validate when T implements Validator.
// Validation failures are returned as *dto.ValidationError; anything else is a body that
// could not be decoded.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	req, err := BuildRequest[T](c)
	if err != nil {
		return nil, err
	}

	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// isValidation reports whether err is a request validation failure and returns it.
func isValidation(err error) (*dto.ValidationError, bool) {
	var ve *dto.ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
