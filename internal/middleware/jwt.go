package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrWebhookSecretMissing is returned when tokens are issued or checked without a secret.
var ErrWebhookSecretMissing = errors.New("webhook jwt secret is not configured")

// WebhookClaims are the claims the voice platform presents. Subject names the agent.
type WebhookClaims struct {
	jwt.RegisteredClaims
}

// IssueWebhookToken signs an HS256 token for subject. A zero ttl issues a token without
// expiry, which is what most voice platforms need for a static tool credential.
func IssueWebhookToken(secret []byte, issuer, subject string, ttl time.Duration, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", ErrWebhookSecretMissing
	}

	claims := WebhookClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseWebhookToken validates the signature, algorithm, expiry and, when issuer is set,
// the iss claim.
func ParseWebhookToken(secret []byte, issuer, tokenString string) (*WebhookClaims, error) {
	if len(secret) == 0 {
		return nil, ErrWebhookSecretMissing
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(30 * time.Second),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	claims := &WebhookClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse webhook token: %w", err)
	}
	if claims.Subject == "" {
		return nil, errors.New("parse webhook token: missing subject")
	}
	return claims, nil
}
