package renderer

import (
	"context"

	"maintrack/internal/models"
)

// Renderer produces byte-accurate document artifacts from structured data.
// Rendering is deterministic given identical input.
type Renderer interface {
	// RenderInvoice renders an invoice PDF from a snapshot.
	RenderInvoice(ctx context.Context, inv models.InvoiceSnapshot) ([]byte, error)

	// RenderWorkOrder renders a work-order PDF from a snapshot.
	RenderWorkOrder(ctx context.Context, wo models.WorkOrderSnapshot) ([]byte, error)
}
