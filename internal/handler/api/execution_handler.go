package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintrack/internal/alert"
	"maintrack/internal/apperr"
	"maintrack/internal/engine"
	"maintrack/internal/models"
)

// Executor runs one execution cycle.
type Executor interface {
	Execute(ctx context.Context, rwoID, executionID string) (*engine.Result, error)
}

// ExecutionHandler exposes the execute endpoint.
type ExecutionHandler struct {
	orchestrator Executor
	alerts       alert.Notifier
	logger       *zap.Logger
}

func NewExecutionHandler(orchestrator Executor, alerts alert.Notifier, logger *zap.Logger) *ExecutionHandler {
	return &ExecutionHandler{orchestrator: orchestrator, alerts: alerts, logger: logger}
}

// Execute handles POST /api/recurring-work-orders/execute.
func (h *ExecutionHandler) Execute(c echo.Context) error {
	var req models.ExecuteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.RecurringWorkOrderID == "" {
		return badRequest(c, "recurringWorkOrderId is required")
	}

	result, err := h.orchestrator.Execute(c.Request().Context(), req.RecurringWorkOrderID, req.ExecutionID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindExternalService || apperr.KindOf(err) == apperr.KindUnknown {
			h.logger.Error("Execution cycle failed",
				zap.String("recurringWorkOrderId", req.RecurringWorkOrderID), zap.Error(err))
			if alertErr := h.alerts.Alert(fmt.Sprintf(
				"Execution failed for recurring work order %s: %v", req.RecurringWorkOrderID, err)); alertErr != nil {
				h.logger.Warn("Ops alert delivery failed", zap.Error(alertErr))
			}
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "execution failed",
				Details: err.Error(),
			})
		}
		return writeError(c, err)
	}

	resp := models.ExecuteResponse{
		Message:     result.Message,
		ExecutionID: result.ExecutionID,
	}
	if result.NextExecution != nil {
		resp.NextExecution = result.NextExecution.Format(time.RFC3339)
	}
	return c.JSON(http.StatusOK, resp)
}
