package repository

import (
	"gorm.io/gorm"

	"maintrack/internal/models"
)

// WorkOrderRepository handles generated work order records.
type WorkOrderRepository struct {
	db *gorm.DB
}

func NewWorkOrderRepository(db *gorm.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

// Create inserts a generated work order.
func (r *WorkOrderRepository) Create(wo *models.WorkOrder) error {
	return r.db.Create(wo).Error
}

// FindByRecurringWorkOrder returns work orders generated by a definition.
func (r *WorkOrderRepository) FindByRecurringWorkOrder(rwoID string) ([]models.WorkOrder, error) {
	var orders []models.WorkOrder
	err := r.db.Where("recurring_work_order_id = ?", rwoID).Order("execution_number DESC").Find(&orders).Error
	return orders, err
}
