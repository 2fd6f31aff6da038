package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"maintrack/internal/pkg/httpclient"
)

// StripeProvider implements the Provider interface over the Stripe
// payment-links API.
type StripeProvider struct {
	secretKey string
	client    *httpclient.Client
}

func NewStripeProvider(secretKey string) *StripeProvider {
	return &StripeProvider{
		secretKey: secretKey,
		client: httpclient.New().
			WithTimeout(30 * time.Second).
			WithBearerToken(secretKey).
			WithBaseURL("https://api.stripe.com/v1"),
	}
}

func (s *StripeProvider) Name() string {
	return "stripe"
}

func (s *StripeProvider) CreateLink(ctx context.Context, req LinkRequest) (*Link, error) {
	// Stripe amounts are integer cents.
	cents := int64(math.Round(req.Amount * 100))

	form := map[string]string{
		"line_items[0][price_data][currency]":                  "usd",
		"line_items[0][price_data][unit_amount]":               fmt.Sprintf("%d", cents),
		"line_items[0][price_data][product_data][name]":        req.Description,
		"line_items[0][quantity]":                              "1",
		"metadata[reference]":                                  req.Reference,
		"metadata[payer_email]":                                req.PayerEmail,
		"metadata[payer_name]":                                 req.PayerName,
	}

	resp, err := s.client.PostForm("/payment_links", form)
	if err != nil {
		return nil, fmt.Errorf("stripe create payment link failed: %w", err)
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("stripe parse error: %w", err)
	}
	if result.URL == "" {
		return nil, fmt.Errorf("stripe returned no payment link url")
	}

	return &Link{URL: result.URL, Reference: req.Reference}, nil
}
