package models

import "time"

// Generated work order statuses.
const (
	WorkOrderStatusApproved = "approved"
	WorkOrderStatusAssigned = "assigned"
)

// WorkOrder maps to the `work_orders` table: the concrete job record a cycle
// generates. Field values are copied from the owning recurring definition.
type WorkOrder struct {
	ID              string `gorm:"column:id;primaryKey;size:64" json:"id"`
	WorkOrderNumber string `gorm:"column:work_order_number;size:100;uniqueIndex" json:"workOrderNumber"`
	Title           string `gorm:"column:title;size:300" json:"title"`
	Description     string `gorm:"column:description;type:text" json:"description"`

	ClientID     string `gorm:"column:client_id;size:64" json:"clientId"`
	ClientName   string `gorm:"column:client_name;size:200" json:"clientName"`
	CompanyID    string `gorm:"column:company_id;size:64" json:"companyId"`
	CompanyName  string `gorm:"column:company_name;size:200" json:"companyName"`
	LocationID   string `gorm:"column:location_id;size:64" json:"locationId"`
	LocationName string `gorm:"column:location_name;size:200" json:"locationName"`
	CategoryID   string `gorm:"column:category_id;size:64" json:"categoryId"`
	CategoryName string `gorm:"column:category_name;size:200" json:"categoryName"`
	Priority     string `gorm:"column:priority;size:20" json:"priority"`

	Status             string     `gorm:"column:status;size:20;index" json:"status"`
	AssignedProviderID string     `gorm:"column:assigned_provider_id;size:64" json:"assignedProviderId,omitempty"`
	AssignedAt         *time.Time `gorm:"column:assigned_at" json:"assignedAt,omitempty"`

	RecurringWorkOrderID string `gorm:"column:recurring_work_order_id;size:64;index" json:"recurringWorkOrderId"`
	ExecutionNumber      int    `gorm:"column:execution_number" json:"executionNumber"`

	EstimateBudget float64   `gorm:"column:estimate_budget" json:"estimateBudget"`
	ScheduledDate  time.Time `gorm:"column:scheduled_date" json:"scheduledDate"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (WorkOrder) TableName() string {
	return "work_orders"
}
