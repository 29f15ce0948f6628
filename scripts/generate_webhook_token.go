//go:build ignore

// This script prints a bearer token the voice platform can send to the webhook tools.
// Run with: WEBHOOK_JWT_SECRET=... go run scripts/generate_webhook_token.go -ttl 8760h
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/milestonetrucks/voice-agent/internal/middleware"
)

func main() {
	subject := flag.String("subject", "voice-platform", "token subject recorded as the caller")
	issuer := flag.String("issuer", os.Getenv("WEBHOOK_JWT_ISSUER"), "token issuer; must match WEBHOOK_JWT_ISSUER when set")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("WEBHOOK_JWT_SECRET")
	if secret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating secret: %v\n", err)
			os.Exit(1)
		}
		secret = base64.StdEncoding.EncodeToString(b)
		fmt.Println("No WEBHOOK_JWT_SECRET set; add this to your .env file:")
		fmt.Printf("WEBHOOK_JWT_SECRET=%s\n\n", secret)
	}

	token, err := middleware.IssueWebhookToken([]byte(secret), *issuer, *subject, *ttl, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Authorization header for the voice platform tool configuration:")
	fmt.Printf("Authorization: Bearer %s\n", token)
	fmt.Printf("Expires: %s\n", time.Now().Add(*ttl).Format(time.RFC3339))
}
