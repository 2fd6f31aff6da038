package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"maintrack/internal/apperr"
	"maintrack/internal/models"
)

// RecurringWorkOrderRepository handles recurring work order definitions.
type RecurringWorkOrderRepository struct {
	db *gorm.DB
}

func NewRecurringWorkOrderRepository(db *gorm.DB) *RecurringWorkOrderRepository {
	return &RecurringWorkOrderRepository{db: db}
}

// Create inserts a new definition.
func (r *RecurringWorkOrderRepository) Create(rwo *models.RecurringWorkOrder) error {
	return r.db.Create(rwo).Error
}

// FindByID returns a definition by id.
func (r *RecurringWorkOrderRepository) FindByID(id string) (*models.RecurringWorkOrder, error) {
	var rwo models.RecurringWorkOrder
	if err := r.db.Where("id = ?", id).First(&rwo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.KindNotFound, "recurring work order %s not found", id)
		}
		return nil, err
	}
	return &rwo, nil
}

// FindAll returns definitions with pagination and optional status filter.
func (r *RecurringWorkOrderRepository) FindAll(limit, page int, status string) ([]models.RecurringWorkOrder, int64, error) {
	var rows []models.RecurringWorkOrder
	var total int64

	db := r.db.Model(&models.RecurringWorkOrder{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	if err := db.Limit(limit).Offset(offset).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// SetStatus applies a status transition, enforcing the state machine:
// active <-> paused, active|paused -> cancelled.
func (r *RecurringWorkOrderRepository) SetStatus(id, newStatus string) (*models.RecurringWorkOrder, error) {
	rwo, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if rwo.Status == newStatus {
		return rwo, nil
	}
	if !models.CanTransition(rwo.Status, newStatus) {
		return nil, apperr.Newf(apperr.KindValidation, "cannot transition from %s to %s", rwo.Status, newStatus)
	}
	if err := r.db.Model(&models.RecurringWorkOrder{}).Where("id = ?", id).
		Update("status", newStatus).Error; err != nil {
		return nil, err
	}
	rwo.Status = newStatus
	return rwo, nil
}

// OutcomeUpdate describes the definition mutation after one execution cycle.
type OutcomeUpdate struct {
	IncrementTotal   bool
	IncrementSuccess bool
	IncrementFailed  bool
	LastExecution    *time.Time
	NextExecution    *time.Time
}

// RecordOutcome applies counter increments and schedule timestamps in one
// update. Increments use SQL expressions so concurrent cycles cannot lose
// an increment.
func (r *RecurringWorkOrderRepository) RecordOutcome(id string, upd OutcomeUpdate) error {
	updates := map[string]interface{}{}
	if upd.IncrementTotal {
		updates["total_executions"] = gorm.Expr("total_executions + 1")
	}
	if upd.IncrementSuccess {
		updates["successful_executions"] = gorm.Expr("successful_executions + 1")
	}
	if upd.IncrementFailed {
		updates["failed_executions"] = gorm.Expr("failed_executions + 1")
	}
	if upd.LastExecution != nil {
		updates["last_execution"] = *upd.LastExecution
	}
	if upd.NextExecution != nil {
		updates["next_execution"] = *upd.NextExecution
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.RecurringWorkOrder{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes a definition together with all its executions.
func (r *RecurringWorkOrderRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recurring_work_order_id = ?", id).Delete(&models.Execution{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.RecurringWorkOrder{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.Newf(apperr.KindNotFound, "recurring work order %s not found", id)
		}
		return nil
	})
}
