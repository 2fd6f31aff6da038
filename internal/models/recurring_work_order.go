package models

import "time"

// RecurringWorkOrder statuses. Cancelled is terminal.
const (
	RecurringStatusActive    = "active"
	RecurringStatusPaused    = "paused"
	RecurringStatusCancelled = "cancelled"
)

// Recurrence pattern types.
const (
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
	RecurrenceYearly  = "yearly"
	RecurrenceCustom  = "custom"
)

// RecurrencePattern governs how often execution cycles occur.
type RecurrencePattern struct {
	Type          string `gorm:"column:recurrence_type;size:20" json:"type"`
	Interval      int    `gorm:"column:recurrence_interval;default:1" json:"interval"`
	CustomPattern string `gorm:"column:recurrence_custom_pattern;size:200" json:"customPattern,omitempty"`
}

// InvoiceSchedule is informational display data; the execution math
// only consumes RecurrencePattern.
type InvoiceSchedule struct {
	Type      string `gorm:"column:invoice_schedule_type;size:20" json:"type"`
	Interval  int    `gorm:"column:invoice_schedule_interval;default:1" json:"interval"`
	TimeOfDay string `gorm:"column:invoice_schedule_time;size:10" json:"timeOfDay"`
	Timezone  string `gorm:"column:invoice_schedule_tz;size:60" json:"timezone"`
}

// RecurringWorkOrder maps to the `recurring_work_orders` table.
// Client/company/location names are denormalized at creation time so list
// screens render without joins.
type RecurringWorkOrder struct {
	ID              string `gorm:"column:id;primaryKey;size:64" json:"id"`
	WorkOrderNumber string `gorm:"column:work_order_number;size:100;index" json:"workOrderNumber,omitempty"`
	Title           string `gorm:"column:title;size:300" json:"title"`
	Description     string `gorm:"column:description;type:text" json:"description"`

	ClientID    string `gorm:"column:client_id;size:64;index" json:"clientId"`
	ClientName  string `gorm:"column:client_name;size:200" json:"clientName"`
	ClientEmail string `gorm:"column:client_email;size:200" json:"clientEmail"`

	CompanyID   string `gorm:"column:company_id;size:64" json:"companyId"`
	CompanyName string `gorm:"column:company_name;size:200" json:"companyName"`

	LocationID   string `gorm:"column:location_id;size:64" json:"locationId"`
	LocationName string `gorm:"column:location_name;size:200" json:"locationName"`

	CategoryID   string `gorm:"column:category_id;size:64" json:"categoryId"`
	CategoryName string `gorm:"column:category_name;size:200" json:"categoryName"`

	Priority           string `gorm:"column:priority;size:20" json:"priority"`
	AssignedProviderID string `gorm:"column:assigned_provider_id;size:64" json:"assignedProviderId,omitempty"`

	Status string `gorm:"column:status;size:20;index" json:"status"`

	RecurrencePattern RecurrencePattern `gorm:"embedded" json:"recurrencePattern"`
	InvoiceSchedule   InvoiceSchedule   `gorm:"embedded" json:"invoiceSchedule"`

	NextExecution *time.Time `gorm:"column:next_execution;index" json:"nextExecution"`
	LastExecution *time.Time `gorm:"column:last_execution" json:"lastExecution,omitempty"`

	TotalExecutions      int `gorm:"column:total_executions;default:0" json:"totalExecutions"`
	SuccessfulExecutions int `gorm:"column:successful_executions;default:0" json:"successfulExecutions"`
	FailedExecutions     int `gorm:"column:failed_executions;default:0" json:"failedExecutions"`

	EstimateBudget float64 `gorm:"column:estimate_budget" json:"estimateBudget,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (RecurringWorkOrder) TableName() string {
	return "recurring_work_orders"
}

// CanTransition reports whether a status change is allowed:
// active <-> paused, active|paused -> cancelled. Cancelled has no exit.
func CanTransition(from, to string) bool {
	switch from {
	case RecurringStatusActive:
		return to == RecurringStatusPaused || to == RecurringStatusCancelled
	case RecurringStatusPaused:
		return to == RecurringStatusActive || to == RecurringStatusCancelled
	default:
		return false
	}
}
