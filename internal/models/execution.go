package models

import "time"

// Execution statuses. Executed and failed are terminal.
const (
	ExecutionStatusPending  = "pending"
	ExecutionStatusExecuted = "executed"
	ExecutionStatusFailed   = "failed"
)

// InvoiceLineItem is one priced line on an invoice snapshot.
type InvoiceLineItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// InvoiceSnapshot is the compact invoice data embedded in an Execution so the
// invoice document can be re-rendered on demand without storing the binary.
type InvoiceSnapshot struct {
	InvoiceNumber string            `json:"invoiceNumber"`
	ClientName    string            `json:"clientName"`
	ClientEmail   string            `json:"clientEmail"`
	CompanyName   string            `json:"companyName"`
	Title         string            `json:"title"`
	LineItems     []InvoiceLineItem `json:"lineItems"`
	Total         float64           `json:"total"`
	IssuedAt      time.Time         `json:"issuedAt"`
}

// WorkOrderSnapshot is the compact job data embedded in an Execution.
type WorkOrderSnapshot struct {
	WorkOrderNumber string    `json:"workOrderNumber"`
	Title           string    `json:"title"`
	ClientName      string    `json:"clientName"`
	LocationName    string    `json:"locationName"`
	CategoryName    string    `json:"categoryName"`
	Priority        string    `json:"priority"`
	ScheduledDate   time.Time `json:"scheduledDate"`
	EstimateBudget  float64   `json:"estimateBudget"`
}

// Execution maps to the `executions` table: one concrete cycle attempt of a
// recurring work order.
type Execution struct {
	ID                   string `gorm:"column:id;primaryKey;size:64" json:"id"`
	RecurringWorkOrderID string `gorm:"column:recurring_work_order_id;size:64;index" json:"recurringWorkOrderId"`

	// ExecutionNumber is assigned from the parent's totalExecutions+1 at
	// creation time; unique per parent on a best-effort basis.
	ExecutionNumber int `gorm:"column:execution_number" json:"executionNumber"`

	Status        string    `gorm:"column:status;size:20;index" json:"status"`
	ScheduledDate time.Time `gorm:"column:scheduled_date" json:"scheduledDate"`

	InvoiceNumber  string `gorm:"column:invoice_number;size:100" json:"invoiceNumber,omitempty"`
	PaymentLinkURL string `gorm:"column:payment_link_url;size:500" json:"paymentLinkUrl"`
	WorkOrderID    string `gorm:"column:work_order_id;size:64" json:"workOrderId,omitempty"`
	EmailSent      bool   `gorm:"column:email_sent;default:false" json:"emailSent"`
	FailureReason  string `gorm:"column:failure_reason;type:text" json:"failureReason,omitempty"`

	InvoiceSnapshot   *InvoiceSnapshot   `gorm:"column:invoice_snapshot;type:json;serializer:json" json:"invoiceSnapshot,omitempty"`
	WorkOrderSnapshot *WorkOrderSnapshot `gorm:"column:work_order_snapshot;type:json;serializer:json" json:"workOrderSnapshot,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Execution) TableName() string {
	return "executions"
}
