package models

// ExecuteRequest triggers one execution cycle of a recurring work order.
// ExecutionID is set when completing an execution pre-created in status
// pending by an external scheduler.
type ExecuteRequest struct {
	RecurringWorkOrderID string `json:"recurringWorkOrderId"`
	ExecutionID          string `json:"executionId,omitempty"`
}

// ExecuteResponse is the success/skip payload of the execute endpoint.
type ExecuteResponse struct {
	Message       string `json:"message"`
	ExecutionID   string `json:"executionId,omitempty"`
	NextExecution string `json:"nextExecution,omitempty"`
}

// ImportRow is one externally-sourced schedule definition row.
type ImportRow struct {
	Restaurant       string   `json:"restaurant"`
	ServiceType      string   `json:"serviceType"`
	LastServiced     string   `json:"lastServiced"`
	NextServiceDates []string `json:"nextServiceDates"`
	FrequencyLabel   string   `json:"frequencyLabel"`
	Scheduling       string   `json:"scheduling"`
	Notes            string   `json:"notes"`
}

// ImportRequest is the bulk-import payload.
type ImportRequest struct {
	Rows []ImportRow `json:"rows"`
}

// RowError reports a single failed import row. Row indices are 1-based.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportResponse is the full accounting of an import batch.
type ImportResponse struct {
	Success bool       `json:"success"`
	Created int        `json:"created"`
	Errors  []RowError `json:"errors"`
}

// CreateRecurringRequest is the manual-creation payload for a recurring
// work order definition.
type CreateRecurringRequest struct {
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	ClientID           string            `json:"clientId"`
	CompanyID          string            `json:"companyId"`
	LocationID         string            `json:"locationId"`
	LocationName       string            `json:"locationName"`
	CategoryID         string            `json:"categoryId"`
	CategoryName       string            `json:"categoryName"`
	Priority           string            `json:"priority"`
	AssignedProviderID string            `json:"assignedProviderId,omitempty"`
	RecurrencePattern  RecurrencePattern `json:"recurrencePattern"`
	InvoiceSchedule    InvoiceSchedule   `json:"invoiceSchedule"`
	NextExecution      string            `json:"nextExecution,omitempty"`
	EstimateBudget     float64           `json:"estimateBudget,omitempty"`
}

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
