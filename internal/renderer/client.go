package renderer

import (
	"context"
	"fmt"
	"time"

	"maintrack/internal/models"
	"maintrack/internal/pkg/httpclient"
)

// HTTPRenderer implements Renderer against an external document-rendering
// service that accepts structured JSON and returns the rendered binary.
type HTTPRenderer struct {
	client *httpclient.Client
}

func NewHTTPRenderer(baseURL, apiKey string) *HTTPRenderer {
	return &HTTPRenderer{
		client: httpclient.New().
			WithTimeout(60 * time.Second).
			WithBaseURL(baseURL).
			WithHeader("X-Api-Key", apiKey),
	}
}

func (r *HTTPRenderer) RenderInvoice(ctx context.Context, inv models.InvoiceSnapshot) ([]byte, error) {
	body, err := r.client.Post("/render/invoice", inv)
	if err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", inv.InvoiceNumber, err)
	}
	return body, nil
}

func (r *HTTPRenderer) RenderWorkOrder(ctx context.Context, wo models.WorkOrderSnapshot) ([]byte, error) {
	body, err := r.client.Post("/render/work-order", wo)
	if err != nil {
		return nil, fmt.Errorf("render work order %s: %w", wo.WorkOrderNumber, err)
	}
	return body, nil
}
