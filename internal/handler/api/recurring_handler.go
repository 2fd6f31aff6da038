package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintrack/internal/models"
	"maintrack/internal/pkg/utils"
	"maintrack/internal/repository"
)

// Repos bundles the repositories the recurring work order endpoints need.
type Repos struct {
	Recurring *repository.RecurringWorkOrderRepository
	Execution *repository.ExecutionRepository
	Client    *repository.ClientRepository
	Company   *repository.CompanyRepository
}

// RecurringHandler exposes definition CRUD and status transitions.
type RecurringHandler struct {
	repos  *Repos
	logger *zap.Logger
}

func NewRecurringHandler(repos *Repos, logger *zap.Logger) *RecurringHandler {
	return &RecurringHandler{repos: repos, logger: logger}
}

// Create handles POST /api/recurring-work-orders.
func (h *RecurringHandler) Create(c echo.Context) error {
	var req models.CreateRecurringRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Title == "" {
		return badRequest(c, "title is required")
	}
	if req.ClientID == "" {
		return badRequest(c, "clientId is required")
	}

	client, err := h.repos.Client.FindByID(req.ClientID)
	if err != nil {
		return writeError(c, err)
	}
	if client == nil {
		return badRequest(c, "client does not exist")
	}

	rwo := &models.RecurringWorkOrder{
		ID:                 utils.GenerateUUID(),
		WorkOrderNumber:    utils.GenerateWorkOrderNumber(0),
		Title:              req.Title,
		Description:        req.Description,
		ClientID:           client.ID,
		ClientName:         client.Name,
		ClientEmail:        client.Email,
		CompanyID:          req.CompanyID,
		LocationID:         req.LocationID,
		LocationName:       req.LocationName,
		CategoryID:         req.CategoryID,
		CategoryName:       req.CategoryName,
		Priority:           req.Priority,
		AssignedProviderID: req.AssignedProviderID,
		Status:             models.RecurringStatusActive,
		RecurrencePattern:  req.RecurrencePattern,
		InvoiceSchedule:    req.InvoiceSchedule,
		EstimateBudget:     req.EstimateBudget,
	}

	if req.CompanyID != "" {
		company, err := h.repos.Company.FindByID(req.CompanyID)
		if err != nil {
			return writeError(c, err)
		}
		if company != nil {
			rwo.CompanyName = company.Name
		}
	}

	if req.NextExecution != "" {
		next, err := time.Parse(time.RFC3339, req.NextExecution)
		if err != nil {
			return badRequest(c, "nextExecution must be RFC3339")
		}
		rwo.NextExecution = &next
	}

	if err := h.repos.Recurring.Create(rwo); err != nil {
		h.logger.Error("Failed to create recurring work order", zap.Error(err))
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, rwo)
}

// List handles GET /api/recurring-work-orders.
func (h *RecurringHandler) List(c echo.Context) error {
	limit := utils.ParseInt(c.QueryParam("limit"), 50)
	page := utils.ParseInt(c.QueryParam("page"), 1)
	status := c.QueryParam("status")

	rows, total, err := h.repos.Recurring.FindAll(limit, page, status)
	if err != nil {
		h.logger.Error("Failed to list recurring work orders", zap.Error(err))
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, paginatedResponse("recurringWorkOrders", rows, total, page, limit))
}

// Get handles GET /api/recurring-work-orders/:id.
func (h *RecurringHandler) Get(c echo.Context) error {
	rwo, err := h.repos.Recurring.FindByID(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rwo)
}

// Pause handles POST /api/recurring-work-orders/:id/pause.
func (h *RecurringHandler) Pause(c echo.Context) error {
	return h.setStatus(c, models.RecurringStatusPaused)
}

// Resume handles POST /api/recurring-work-orders/:id/resume.
func (h *RecurringHandler) Resume(c echo.Context) error {
	return h.setStatus(c, models.RecurringStatusActive)
}

// Cancel handles POST /api/recurring-work-orders/:id/cancel. Cancelled is
// terminal; there is no return path.
func (h *RecurringHandler) Cancel(c echo.Context) error {
	return h.setStatus(c, models.RecurringStatusCancelled)
}

func (h *RecurringHandler) setStatus(c echo.Context, status string) error {
	rwo, err := h.repos.Recurring.SetStatus(c.Param("id"), status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rwo)
}

// Delete handles DELETE /api/recurring-work-orders/:id. The delete cascades
// to the definition's executions.
func (h *RecurringHandler) Delete(c echo.Context) error {
	if err := h.repos.Recurring.Delete(c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "recurring work order deleted"})
}

// Executions handles GET /api/recurring-work-orders/:id/executions.
func (h *RecurringHandler) Executions(c echo.Context) error {
	id := c.Param("id")
	if _, err := h.repos.Recurring.FindByID(id); err != nil {
		return writeError(c, err)
	}

	limit := utils.ParseInt(c.QueryParam("limit"), 50)
	page := utils.ParseInt(c.QueryParam("page"), 1)

	execs, total, err := h.repos.Execution.FindByRecurringWorkOrder(id, limit, page)
	if err != nil {
		h.logger.Error("Failed to list executions", zap.Error(err))
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, paginatedResponse("executions", execs, total, page, limit))
}
