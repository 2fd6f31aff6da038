package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintrack/internal/models"
)

// Importer ingests a batch of externally-sourced schedule rows.
type Importer interface {
	ImportBatch(ctx context.Context, rows []models.ImportRow) (*models.ImportResponse, error)
}

// ImportHandler exposes the bulk-import endpoint. Admin authorization is
// enforced by middleware before the handler runs.
type ImportHandler struct {
	reconciler Importer
	logger     *zap.Logger
}

func NewImportHandler(reconciler Importer, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{reconciler: reconciler, logger: logger}
}

// Import handles POST /api/imports/recurring-work-orders.
func (h *ImportHandler) Import(c echo.Context) error {
	var req models.ImportRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if len(req.Rows) == 0 {
		return badRequest(c, "rows is required")
	}

	resp, err := h.reconciler.ImportBatch(c.Request().Context(), req.Rows)
	if err != nil {
		h.logger.Error("Import batch rejected", zap.Error(err))
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
