package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"maintrack/internal/apperr"
	"maintrack/internal/models"
	"maintrack/internal/notify"
	"maintrack/internal/payment"
	"maintrack/internal/repository"
)

type fakeDefs struct {
	defs     map[string]*models.RecurringWorkOrder
	outcomes []repository.OutcomeUpdate
}

func (f *fakeDefs) FindByID(id string) (*models.RecurringWorkOrder, error) {
	def, ok := f.defs[id]
	if !ok {
		return nil, apperr.Newf(apperr.KindNotFound, "recurring work order %s not found", id)
	}
	return def, nil
}

func (f *fakeDefs) RecordOutcome(id string, upd repository.OutcomeUpdate) error {
	f.outcomes = append(f.outcomes, upd)
	return nil
}

type fakeExecs struct {
	byID      map[string]*models.Execution
	created   []*models.Execution
	updated   []*models.Execution
	createErr error
}

func (f *fakeExecs) Create(exec *models.Execution) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, exec)
	return nil
}

func (f *fakeExecs) FindByID(id string) (*models.Execution, error) {
	exec, ok := f.byID[id]
	if !ok {
		return nil, apperr.Newf(apperr.KindNotFound, "execution %s not found", id)
	}
	return exec, nil
}

func (f *fakeExecs) Update(exec *models.Execution) error {
	f.updated = append(f.updated, exec)
	return nil
}

type fakeWorkOrders struct {
	created   []*models.WorkOrder
	createErr error
}

func (f *fakeWorkOrders) Create(wo *models.WorkOrder) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, wo)
	return nil
}

type fakePayments struct {
	fail  bool
	calls []payment.LinkRequest
}

func (f *fakePayments) Name() string { return "fake" }

func (f *fakePayments) CreateLink(_ context.Context, req payment.LinkRequest) (*payment.Link, error) {
	f.calls = append(f.calls, req)
	if f.fail {
		return nil, errors.New("provider unavailable")
	}
	return &payment.Link{URL: "https://pay.example.com/" + req.Reference, Reference: req.Reference}, nil
}

type fakeRenderer struct {
	failInvoice   bool
	failWorkOrder bool
	invoices      int
	workOrders    int
}

func (f *fakeRenderer) RenderInvoice(_ context.Context, _ models.InvoiceSnapshot) ([]byte, error) {
	f.invoices++
	if f.failInvoice {
		return nil, errors.New("render service down")
	}
	return []byte("%PDF invoice"), nil
}

func (f *fakeRenderer) RenderWorkOrder(_ context.Context, _ models.WorkOrderSnapshot) ([]byte, error) {
	f.workOrders++
	if f.failWorkOrder {
		return nil, errors.New("render service down")
	}
	return []byte("%PDF work order"), nil
}

type fakeNotifier struct {
	fail bool
	sent []notify.Message
}

func (f *fakeNotifier) Send(_ context.Context, msg notify.Message) error {
	if f.fail {
		return errors.New("smtp relay refused")
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fixture struct {
	defs       *fakeDefs
	execs      *fakeExecs
	workOrders *fakeWorkOrders
	payments   *fakePayments
	renderer   *fakeRenderer
	notifier   *fakeNotifier
	claims     ClaimGuard
	orch       *Orchestrator
}

var testNow = time.Date(2024, time.January, 20, 10, 0, 0, 0, time.UTC)

func newFixture(defs ...*models.RecurringWorkOrder) *fixture {
	f := &fixture{
		defs:       &fakeDefs{defs: map[string]*models.RecurringWorkOrder{}},
		execs:      &fakeExecs{byID: map[string]*models.Execution{}},
		workOrders: &fakeWorkOrders{},
		payments:   &fakePayments{},
		renderer:   &fakeRenderer{},
		notifier:   &fakeNotifier{},
		claims:     newMemoryClaimGuard(time.Hour),
	}
	for _, d := range defs {
		f.defs.defs[d.ID] = d
	}
	f.orch = NewOrchestrator(
		f.defs, f.execs, f.workOrders,
		f.payments, f.renderer, f.notifier,
		f.claims, zap.NewNop(),
	)
	f.orch.now = func() time.Time { return testNow }
	return f
}

func activeDefinition() *models.RecurringWorkOrder {
	next := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	return &models.RecurringWorkOrder{
		ID:           "rwo-1",
		Title:        "HVAC filter replacement",
		ClientID:     "client-1",
		ClientName:   "Acme Diner",
		ClientEmail:  "billing@acmediner.test",
		CompanyName:  "Acme Restaurants",
		LocationID:   "loc-1",
		LocationName: "Acme Diner Downtown",
		CategoryName: "HVAC",
		Priority:     "medium",
		Status:       models.RecurringStatusActive,
		RecurrencePattern: models.RecurrencePattern{
			Type:     models.RecurrenceMonthly,
			Interval: 1,
		},
		NextExecution:  &next,
		EstimateBudget: 450,
	}
}

func TestExecuteSuccess(t *testing.T) {
	f := newFixture(activeDefinition())

	result, err := f.orch.Execute(context.Background(), "rwo-1", "")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Skipped)

	// Next date advances one month from the scheduled date, not from now.
	require.NotNil(t, result.NextExecution)
	assert.Equal(t, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), *result.NextExecution)

	// One executed cycle record with everything wired up.
	require.Len(t, f.execs.created, 1)
	exec := f.execs.created[0]
	assert.Equal(t, models.ExecutionStatusExecuted, exec.Status)
	assert.Equal(t, 1, exec.ExecutionNumber)
	assert.NotEmpty(t, exec.InvoiceNumber)
	assert.Contains(t, exec.PaymentLinkURL, "https://pay.example.com/")
	assert.NotEmpty(t, exec.WorkOrderID)
	assert.True(t, exec.EmailSent)
	require.NotNil(t, exec.InvoiceSnapshot)
	assert.Equal(t, 450.0, exec.InvoiceSnapshot.Total)
	require.NotNil(t, exec.WorkOrderSnapshot)

	// Generated work order copied from the definition, approved since no
	// provider is pre-assigned.
	require.Len(t, f.workOrders.created, 1)
	wo := f.workOrders.created[0]
	assert.Equal(t, models.WorkOrderStatusApproved, wo.Status)
	assert.Equal(t, "rwo-1", wo.RecurringWorkOrderID)
	assert.Equal(t, 1, wo.ExecutionNumber)
	assert.Nil(t, wo.AssignedAt)

	// Both documents rendered, one notification sent with two attachments.
	assert.Equal(t, 1, f.renderer.invoices)
	assert.Equal(t, 1, f.renderer.workOrders)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "billing@acmediner.test", f.notifier.sent[0].To)
	assert.Len(t, f.notifier.sent[0].Attachments, 2)

	// Definition counters advance together on the success path.
	require.Len(t, f.defs.outcomes, 1)
	outcome := f.defs.outcomes[0]
	assert.True(t, outcome.IncrementTotal)
	assert.True(t, outcome.IncrementSuccess)
	assert.False(t, outcome.IncrementFailed)
	require.NotNil(t, outcome.LastExecution)
	assert.Equal(t, testNow, *outcome.LastExecution)
	require.NotNil(t, outcome.NextExecution)
	assert.Equal(t, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), *outcome.NextExecution)
}

func TestExecutePreAssignedProvider(t *testing.T) {
	def := activeDefinition()
	def.AssignedProviderID = "provider-7"
	f := newFixture(def)

	_, err := f.orch.Execute(context.Background(), "rwo-1", "")
	require.NoError(t, err)

	require.Len(t, f.workOrders.created, 1)
	wo := f.workOrders.created[0]
	assert.Equal(t, models.WorkOrderStatusAssigned, wo.Status)
	assert.Equal(t, "provider-7", wo.AssignedProviderID)
	require.NotNil(t, wo.AssignedAt)
	assert.Equal(t, testNow, *wo.AssignedAt)
}

func TestExecuteSkipsInactiveDefinition(t *testing.T) {
	for _, status := range []string{models.RecurringStatusPaused, models.RecurringStatusCancelled} {
		t.Run(status, func(t *testing.T) {
			def := activeDefinition()
			def.Status = status
			f := newFixture(def)

			result, err := f.orch.Execute(context.Background(), "rwo-1", "")
			require.NoError(t, err)
			assert.True(t, result.Skipped)
			assert.Contains(t, result.Message, status)

			// No side effects at all.
			assert.Empty(t, f.execs.created)
			assert.Empty(t, f.workOrders.created)
			assert.Empty(t, f.payments.calls)
			assert.Empty(t, f.defs.outcomes)
		})
	}
}

func TestExecuteDefinitionNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.orch.Execute(context.Background(), "missing", "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestExecutePaymentDegradedMode(t *testing.T) {
	f := newFixture(activeDefinition())
	f.payments.fail = true

	result, err := f.orch.Execute(context.Background(), "rwo-1", "")
	require.NoError(t, err, "payment failure is locally recovered, not propagated")
	assert.False(t, result.Skipped)

	require.Len(t, f.execs.created, 1)
	exec := f.execs.created[0]
	assert.Equal(t, models.ExecutionStatusExecuted, exec.Status)
	assert.Equal(t, placeholderPaymentLink, exec.PaymentLinkURL)

	// Still a success for the counters.
	require.Len(t, f.defs.outcomes, 1)
	assert.True(t, f.defs.outcomes[0].IncrementSuccess)
}

func TestExecuteRendererFailure(t *testing.T) {
	f := newFixture(activeDefinition())
	f.renderer.failInvoice = true

	_, err := f.orch.Execute(context.Background(), "rwo-1", "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindExternalService, apperr.KindOf(err))

	// The failure is auditable: a failed execution with a captured reason.
	require.Len(t, f.execs.created, 1)
	exec := f.execs.created[0]
	assert.Equal(t, models.ExecutionStatusFailed, exec.Status)
	assert.Contains(t, exec.FailureReason, "render service down")

	// Only the failure counter moves.
	require.Len(t, f.defs.outcomes, 1)
	outcome := f.defs.outcomes[0]
	assert.True(t, outcome.IncrementFailed)
	assert.False(t, outcome.IncrementTotal)
	assert.False(t, outcome.IncrementSuccess)

	// Nothing downstream was produced.
	assert.Empty(t, f.workOrders.created)
	assert.Empty(t, f.payments.calls)
	assert.Empty(t, f.notifier.sent)
}

func TestExecuteNotificationFailureIsNonFatal(t *testing.T) {
	f := newFixture(activeDefinition())
	f.notifier.fail = true

	result, err := f.orch.Execute(context.Background(), "rwo-1", "")
	require.NoError(t, err)
	assert.False(t, result.Skipped)

	require.Len(t, f.execs.created, 1)
	exec := f.execs.created[0]
	assert.Equal(t, models.ExecutionStatusExecuted, exec.Status)
	assert.False(t, exec.EmailSent)

	require.Len(t, f.defs.outcomes, 1)
	assert.True(t, f.defs.outcomes[0].IncrementSuccess)
}

func TestExecuteCompletesPendingExecution(t *testing.T) {
	def := activeDefinition()
	scheduled := time.Date(2024, time.January, 18, 0, 0, 0, 0, time.UTC)
	pending := &models.Execution{
		ID:                   "exec-9",
		RecurringWorkOrderID: "rwo-1",
		ExecutionNumber:      4,
		Status:               models.ExecutionStatusPending,
		ScheduledDate:        scheduled,
	}
	f := newFixture(def)
	f.execs.byID["exec-9"] = pending

	result, err := f.orch.Execute(context.Background(), "rwo-1", "exec-9")
	require.NoError(t, err)
	assert.Equal(t, "exec-9", result.ExecutionID)

	// The pending record is completed in place, not duplicated.
	assert.Empty(t, f.execs.created)
	require.NotEmpty(t, f.execs.updated)
	assert.Equal(t, models.ExecutionStatusExecuted, pending.Status)
	assert.Equal(t, 4, pending.ExecutionNumber)

	// The cycle runs against the pre-created scheduled date.
	require.NotNil(t, result.NextExecution)
	assert.Equal(t, scheduled.AddDate(0, 1, 0), *result.NextExecution)
}

func TestExecuteRejectsCompletedExecution(t *testing.T) {
	def := activeDefinition()
	f := newFixture(def)
	f.execs.byID["exec-done"] = &models.Execution{
		ID:                   "exec-done",
		RecurringWorkOrderID: "rwo-1",
		Status:               models.ExecutionStatusExecuted,
	}

	_, err := f.orch.Execute(context.Background(), "rwo-1", "exec-done")
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// No duplicate artifacts.
	assert.Empty(t, f.execs.created)
	assert.Empty(t, f.payments.calls)
	assert.Empty(t, f.workOrders.created)
}

func TestExecuteRejectsMismatchedParent(t *testing.T) {
	def := activeDefinition()
	f := newFixture(def)
	f.execs.byID["exec-other"] = &models.Execution{
		ID:                   "exec-other",
		RecurringWorkOrderID: "rwo-2",
		Status:               models.ExecutionStatusPending,
	}

	_, err := f.orch.Execute(context.Background(), "rwo-1", "exec-other")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestExecuteConcurrentClaimConflict(t *testing.T) {
	def := activeDefinition()
	f := newFixture(def)

	// Simulate a concurrent caller holding the cycle's claim.
	ok, err := f.claims.Acquire(context.Background(), def.ID, *def.NextExecution)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.orch.Execute(context.Background(), "rwo-1", "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Empty(t, f.execs.created)
}

func TestExecuteReleasesClaimOnFailure(t *testing.T) {
	f := newFixture(activeDefinition())
	f.renderer.failInvoice = true

	_, err := f.orch.Execute(context.Background(), "rwo-1", "")
	require.Error(t, err)

	// A retry of the same cycle can acquire the claim again.
	f.renderer.failInvoice = false
	result, err := f.orch.Execute(context.Background(), "rwo-1", "")
	require.NoError(t, err)
	assert.False(t, result.Skipped)
}

func TestExecuteFallsBackToNowWhenNextUnset(t *testing.T) {
	def := activeDefinition()
	def.NextExecution = nil
	f := newFixture(def)

	result, err := f.orch.Execute(context.Background(), "rwo-1", "")
	require.NoError(t, err)

	require.Len(t, f.execs.created, 1)
	assert.Equal(t, testNow, f.execs.created[0].ScheduledDate)
	require.NotNil(t, result.NextExecution)
	assert.Equal(t, testNow.AddDate(0, 1, 0), *result.NextExecution)
}
