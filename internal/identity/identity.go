package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"maintrack/internal/apperr"
	"maintrack/internal/pkg/httpclient"
)

// Verifier resolves a bearer token to an administrator identity. A token that
// does not resolve to an admin yields a Forbidden error; a missing or
// unparseable token yields Unauthorized.
type Verifier interface {
	VerifyAdmin(ctx context.Context, token string) (adminID string, err error)
}

// HTTPVerifier implements Verifier against an external identity service.
type HTTPVerifier struct {
	client *httpclient.Client
}

func NewHTTPVerifier(baseURL string) *HTTPVerifier {
	return &HTTPVerifier{
		client: httpclient.New().
			WithTimeout(10 * time.Second).
			WithBaseURL(baseURL),
	}
}

func (v *HTTPVerifier) VerifyAdmin(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", apperr.New(apperr.KindUnauthorized, "authorization token is required")
	}

	resp, err := v.client.Post("/tokens/verify", map[string]string{"token": token})
	if err != nil {
		return "", fmt.Errorf("identity verify failed: %w", err)
	}

	var result struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return "", fmt.Errorf("identity parse error: %w", err)
	}

	if result.UserID == "" {
		return "", apperr.New(apperr.KindUnauthorized, "invalid token")
	}
	if result.Role != "admin" {
		return "", apperr.New(apperr.KindForbidden, "administrator access required")
	}
	return result.UserID, nil
}
