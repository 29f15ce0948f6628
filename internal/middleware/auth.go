package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/milestonetrucks/voice-agent/internal/domain/dto"
	"github.com/milestonetrucks/voice-agent/internal/i18n"
	"github.com/milestonetrucks/voice-agent/internal/logger"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"

	bearerPrefix = "Bearer "
	apiKeyCaller = "api-key"
)

// WebhookAuthConfig configures WebhookAuth. Either credential type may be left empty.
type WebhookAuthConfig struct {
	// Secret verifies HS256 bearer tokens.
	Secret []byte
	// Issuer, when set, must match the token's iss claim.
	Issuer string
	// APIKeys are accepted in X-API-Key or the api_key query parameter.
	APIKeys map[string]bool
}

// Enabled reports whether any credential is configured.
func (cfg WebhookAuthConfig) Enabled() bool {
	return len(cfg.Secret) > 0 || len(cfg.APIKeys) > 0
}

// WebhookAuth authenticates the voice platform. A bearer token is checked first, then an
// API key. The caller is stored under CallerKey for logging and rate limiting.
func WebhookAuth(cfg WebhookAuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled() {
			c.Next()
			return
		}

		if header := c.GetHeader("Authorization"); header != "" {
			token, ok := strings.CutPrefix(header, bearerPrefix)
			if !ok || strings.TrimSpace(token) == "" || len(cfg.Secret) == 0 {
				abortUnauthorized(c, i18n.ErrKeyInvalidToken)
				return
			}
			claims, err := ParseWebhookToken(cfg.Secret, cfg.Issuer, strings.TrimSpace(token))
			if err != nil {
				log := logger.Logger()
				log.Warn().Err(err).Str("request_id", GetRequestID(c)).Msg("Rejected webhook token")
				abortUnauthorized(c, i18n.ErrKeyInvalidToken)
				return
			}
			c.Set(string(CallerKey), claims.Subject)
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}
		switch {
		case key == "" && len(cfg.Secret) > 0:
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		case key == "":
			abortUnauthorized(c, i18n.ErrKeyAPIKeyRequired)
			return
		case !cfg.APIKeys[key]:
			abortUnauthorized(c, i18n.ErrKeyInvalidAPIKey)
			return
		}

		c.Set(string(CallerKey), apiKeyCaller)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, messageKey string) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(c))
	errorResp := dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(GetRequestID(c))
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
}
