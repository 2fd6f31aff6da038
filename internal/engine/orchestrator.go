// Package engine drives recurring work order execution cycles: one cycle
// synthesizes a job record, a priced invoice, a payment link, and a client
// notification, then advances the definition's schedule.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"maintrack/internal/apperr"
	"maintrack/internal/models"
	"maintrack/internal/notify"
	"maintrack/internal/payment"
	"maintrack/internal/pkg/utils"
	"maintrack/internal/renderer"
	"maintrack/internal/repository"
	"maintrack/internal/schedule"
)

// placeholderPaymentLink marks a cycle whose payment-link provider call
// failed. The cycle still completes; the link can be regenerated later.
const placeholderPaymentLink = "#payment-link-generation-failed"

// DefinitionStore is the slice of the recurring work order repository the
// orchestrator consumes.
type DefinitionStore interface {
	FindByID(id string) (*models.RecurringWorkOrder, error)
	RecordOutcome(id string, upd repository.OutcomeUpdate) error
}

// ExecutionStore persists execution cycle records.
type ExecutionStore interface {
	Create(exec *models.Execution) error
	FindByID(id string) (*models.Execution, error)
	Update(exec *models.Execution) error
}

// WorkOrderStore persists generated job records.
type WorkOrderStore interface {
	Create(wo *models.WorkOrder) error
}

// Result is the outcome of one execute call.
type Result struct {
	Skipped       bool
	Message       string
	ExecutionID   string
	NextExecution *time.Time
}

// Orchestrator runs one execution cycle per call. All dependencies are
// injected so tests can substitute deterministic doubles.
type Orchestrator struct {
	defs       DefinitionStore
	execs      ExecutionStore
	workOrders WorkOrderStore
	payments   payment.Provider
	renderer   renderer.Renderer
	notifier   notify.Dispatcher
	claims     ClaimGuard
	logger     *zap.Logger

	now func() time.Time
}

func NewOrchestrator(
	defs DefinitionStore,
	execs ExecutionStore,
	workOrders WorkOrderStore,
	payments payment.Provider,
	rnd renderer.Renderer,
	notifier notify.Dispatcher,
	claims ClaimGuard,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		defs:       defs,
		execs:      execs,
		workOrders: workOrders,
		payments:   payments,
		renderer:   rnd,
		notifier:   notifier,
		claims:     claims,
		logger:     logger,
		now:        time.Now,
	}
}

// Execute runs one cycle for a recurring work order. When executionID is
// non-empty it completes that pre-created pending execution instead of
// creating a new one. A definition that is not active yields a skipped
// result with no side effects, not an error.
func (o *Orchestrator) Execute(ctx context.Context, rwoID, executionID string) (*Result, error) {
	def, err := o.defs.FindByID(rwoID)
	if err != nil {
		return nil, err
	}

	var pending *models.Execution
	if executionID != "" {
		pending, err = o.execs.FindByID(executionID)
		if err != nil {
			return nil, err
		}
		if pending.RecurringWorkOrderID != def.ID {
			return nil, apperr.Newf(apperr.KindValidation,
				"execution %s does not belong to recurring work order %s", executionID, def.ID)
		}
		if pending.Status != models.ExecutionStatusPending {
			return nil, apperr.Newf(apperr.KindConflict,
				"execution %s is already %s", executionID, pending.Status)
		}
	}

	if def.Status != models.RecurringStatusActive {
		o.logger.Info("Skipping execution of inactive recurring work order",
			zap.String("id", def.ID), zap.String("status", def.Status))
		return &Result{
			Skipped: true,
			Message: fmt.Sprintf("recurring work order is %s, execution skipped", def.Status),
		}, nil
	}

	scheduledDate := o.now()
	switch {
	case pending != nil:
		scheduledDate = pending.ScheduledDate
	case def.NextExecution != nil:
		scheduledDate = *def.NextExecution
	}

	ok, err := o.claims.Acquire(ctx, def.ID, scheduledDate)
	if err != nil {
		return nil, fmt.Errorf("acquire execution claim: %w", err)
	}
	if !ok {
		return nil, apperr.Newf(apperr.KindConflict,
			"execution cycle for %s at %s is already in progress", def.ID, scheduledDate.Format("2006-01-02"))
	}

	result, err := o.runCycle(ctx, def, pending, scheduledDate)
	if err != nil {
		// Let a retry of the same cycle re-acquire the claim.
		if relErr := o.claims.Release(ctx, def.ID, scheduledDate); relErr != nil {
			o.logger.Warn("Failed to release execution claim", zap.Error(relErr))
		}
		return nil, err
	}
	return result, nil
}

func (o *Orchestrator) runCycle(ctx context.Context, def *models.RecurringWorkOrder, pending *models.Execution, scheduledDate time.Time) (*Result, error) {
	executionNumber := def.TotalExecutions + 1
	if pending != nil && pending.ExecutionNumber > 0 {
		executionNumber = pending.ExecutionNumber
	}

	invoiceNumber := utils.GenerateInvoiceNumber()
	invoiceSnap := models.InvoiceSnapshot{
		InvoiceNumber: invoiceNumber,
		ClientName:    def.ClientName,
		ClientEmail:   def.ClientEmail,
		CompanyName:   def.CompanyName,
		Title:         def.Title,
		LineItems: []models.InvoiceLineItem{
			{Description: def.Title, Amount: def.EstimateBudget},
		},
		Total:    def.EstimateBudget,
		IssuedAt: o.now(),
	}

	workOrderNumber := utils.GenerateWorkOrderNumber(executionNumber)
	workOrderSnap := models.WorkOrderSnapshot{
		WorkOrderNumber: workOrderNumber,
		Title:           def.Title,
		ClientName:      def.ClientName,
		LocationName:    def.LocationName,
		CategoryName:    def.CategoryName,
		Priority:        def.Priority,
		ScheduledDate:   scheduledDate,
		EstimateBudget:  def.EstimateBudget,
	}

	// Renderer failure is a hard failure: without the artifacts there is
	// nothing to invoice or dispatch.
	invoicePDF, err := o.renderer.RenderInvoice(ctx, invoiceSnap)
	if err != nil {
		return nil, o.failCycle(ctx, def, pending, executionNumber, scheduledDate, err)
	}
	workOrderPDF, err := o.renderer.RenderWorkOrder(ctx, workOrderSnap)
	if err != nil {
		return nil, o.failCycle(ctx, def, pending, executionNumber, scheduledDate, err)
	}

	workOrder := &models.WorkOrder{
		ID:                   utils.GenerateUUID(),
		WorkOrderNumber:      workOrderNumber,
		Title:                def.Title,
		Description:          def.Description,
		ClientID:             def.ClientID,
		ClientName:           def.ClientName,
		CompanyID:            def.CompanyID,
		CompanyName:          def.CompanyName,
		LocationID:           def.LocationID,
		LocationName:         def.LocationName,
		CategoryID:           def.CategoryID,
		CategoryName:         def.CategoryName,
		Priority:             def.Priority,
		Status:               models.WorkOrderStatusApproved,
		RecurringWorkOrderID: def.ID,
		ExecutionNumber:      executionNumber,
		EstimateBudget:       def.EstimateBudget,
		ScheduledDate:        scheduledDate,
	}
	if def.AssignedProviderID != "" {
		now := o.now()
		workOrder.Status = models.WorkOrderStatusAssigned
		workOrder.AssignedProviderID = def.AssignedProviderID
		workOrder.AssignedAt = &now
	}
	if err := o.workOrders.Create(workOrder); err != nil {
		return nil, o.failCycle(ctx, def, pending, executionNumber, scheduledDate, err)
	}

	// Degraded mode: a payment-link failure never aborts the cycle.
	paymentLinkURL := placeholderPaymentLink
	link, err := o.payments.CreateLink(ctx, payment.LinkRequest{
		Amount:      def.EstimateBudget,
		Description: def.Title,
		PayerEmail:  def.ClientEmail,
		PayerName:   def.ClientName,
		Reference:   invoiceNumber,
	})
	if err != nil {
		o.logger.Warn("Payment link creation failed, continuing with placeholder",
			zap.String("recurringWorkOrderId", def.ID),
			zap.String("invoiceNumber", invoiceNumber),
			zap.Error(err))
	} else {
		paymentLinkURL = link.URL
	}

	exec := pending
	if exec == nil {
		exec = &models.Execution{
			ID:                   utils.GenerateUUID(),
			RecurringWorkOrderID: def.ID,
			ExecutionNumber:      executionNumber,
			ScheduledDate:        scheduledDate,
		}
	}
	exec.Status = models.ExecutionStatusExecuted
	exec.InvoiceNumber = invoiceNumber
	exec.PaymentLinkURL = paymentLinkURL
	exec.WorkOrderID = workOrder.ID
	exec.InvoiceSnapshot = &invoiceSnap
	exec.WorkOrderSnapshot = &workOrderSnap

	if pending != nil {
		err = o.execs.Update(exec)
	} else {
		err = o.execs.Create(exec)
	}
	if err != nil {
		return nil, o.failCycle(ctx, def, pending, executionNumber, scheduledDate, err)
	}

	// Best effort: the artifacts are committed, a lost notification only
	// leaves emailSent false.
	if err := o.sendNotification(ctx, def, invoiceNumber, paymentLinkURL, invoicePDF, workOrderPDF); err != nil {
		o.logger.Warn("Notification dispatch failed",
			zap.String("recurringWorkOrderId", def.ID),
			zap.String("executionId", exec.ID),
			zap.Error(err))
	} else {
		exec.EmailSent = true
		if err := o.execs.Update(exec); err != nil {
			o.logger.Warn("Failed to persist emailSent flag", zap.Error(err))
		}
	}

	nextExecution := schedule.Next(def.RecurrencePattern, scheduledDate)
	now := o.now()
	if err := o.defs.RecordOutcome(def.ID, repository.OutcomeUpdate{
		IncrementTotal:   true,
		IncrementSuccess: true,
		LastExecution:    &now,
		NextExecution:    &nextExecution,
	}); err != nil {
		o.logger.Error("Failed to record execution outcome",
			zap.String("recurringWorkOrderId", def.ID), zap.Error(err))
	}

	o.logger.Info("Execution cycle completed",
		zap.String("recurringWorkOrderId", def.ID),
		zap.String("executionId", exec.ID),
		zap.Int("executionNumber", executionNumber),
		zap.Time("nextExecution", nextExecution))

	return &Result{
		Message:       "execution completed",
		ExecutionID:   exec.ID,
		NextExecution: &nextExecution,
	}, nil
}

// failCycle records the failed cycle so it stays auditable, then returns the
// error to re-raise. Sub-steps that already committed (a created work order,
// an obtained payment link) are intentionally not rolled back.
func (o *Orchestrator) failCycle(ctx context.Context, def *models.RecurringWorkOrder, pending *models.Execution, executionNumber int, scheduledDate time.Time, cause error) error {
	exec := pending
	if exec == nil {
		exec = &models.Execution{
			ID:                   utils.GenerateUUID(),
			RecurringWorkOrderID: def.ID,
			ExecutionNumber:      executionNumber,
			ScheduledDate:        scheduledDate,
		}
	}
	exec.Status = models.ExecutionStatusFailed
	exec.FailureReason = cause.Error()

	var writeErr error
	if pending != nil {
		writeErr = o.execs.Update(exec)
	} else {
		writeErr = o.execs.Create(exec)
	}
	if writeErr != nil {
		o.logger.Error("Failed to record failed execution",
			zap.String("recurringWorkOrderId", def.ID), zap.Error(writeErr))
	}

	if err := o.defs.RecordOutcome(def.ID, repository.OutcomeUpdate{IncrementFailed: true}); err != nil {
		o.logger.Error("Failed to increment failure counter",
			zap.String("recurringWorkOrderId", def.ID), zap.Error(err))
	}

	return apperr.Wrap(apperr.KindExternalService, "execution cycle failed", cause)
}

func (o *Orchestrator) sendNotification(ctx context.Context, def *models.RecurringWorkOrder, invoiceNumber, paymentLinkURL string, invoicePDF, workOrderPDF []byte) error {
	if def.ClientEmail == "" {
		return fmt.Errorf("definition %s has no client email", def.ID)
	}

	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your scheduled service <b>%s</b> has been booked.</p>"+
			"<p>Invoice %s — <a href=%q>pay online</a>.</p>",
		def.ClientName, def.Title, invoiceNumber, paymentLinkURL)

	return o.notifier.Send(ctx, notify.Message{
		To:       def.ClientEmail,
		Subject:  fmt.Sprintf("Scheduled service: %s (invoice %s)", def.Title, invoiceNumber),
		HTMLBody: body,
		Attachments: []notify.Attachment{
			{Filename: "invoice.pdf", ContentType: "application/pdf", Data: invoicePDF},
			{Filename: "work-order.pdf", ContentType: "application/pdf", Data: workOrderPDF},
		},
	})
}
