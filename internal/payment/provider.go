package payment

import "context"

// LinkRequest describes a payment link to create.
type LinkRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	PayerEmail  string  `json:"payer_email"`
	PayerName   string  `json:"payer_name"`
	Reference   string  `json:"reference"`
}

// Link is a hosted checkout URL for a specific amount and reference.
type Link struct {
	URL       string `json:"url"`
	Reference string `json:"reference"`
}

// Provider creates hosted payment links. Implementations call out to an
// external checkout service; callers decide how to handle failure (the
// execution engine degrades to a placeholder URL rather than aborting).
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// CreateLink requests a hosted payment link.
	CreateLink(ctx context.Context, req LinkRequest) (*Link, error)
}
