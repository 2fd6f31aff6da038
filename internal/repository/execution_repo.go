package repository

import (
	"errors"

	"gorm.io/gorm"

	"maintrack/internal/apperr"
	"maintrack/internal/models"
)

// ExecutionRepository handles execution cycle records.
type ExecutionRepository struct {
	db *gorm.DB
}

func NewExecutionRepository(db *gorm.DB) *ExecutionRepository {
	return &ExecutionRepository{db: db}
}

// Create inserts a new execution record.
func (r *ExecutionRepository) Create(exec *models.Execution) error {
	return r.db.Create(exec).Error
}

// FindByID returns an execution by id.
func (r *ExecutionRepository) FindByID(id string) (*models.Execution, error) {
	var exec models.Execution
	if err := r.db.Where("id = ?", id).First(&exec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.KindNotFound, "execution %s not found", id)
		}
		return nil, err
	}
	return &exec, nil
}

// FindByRecurringWorkOrder returns the execution history of a definition,
// newest first.
func (r *ExecutionRepository) FindByRecurringWorkOrder(rwoID string, limit, page int) ([]models.Execution, int64, error) {
	var execs []models.Execution
	var total int64

	db := r.db.Model(&models.Execution{}).Where("recurring_work_order_id = ?", rwoID)
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

	if err := db.Limit(limit).Offset(offset).Order("execution_number DESC").Find(&execs).Error; err != nil {
		return nil, 0, err
	}
	return execs, total, nil
}

// Update persists changed fields of an execution record.
func (r *ExecutionRepository) Update(exec *models.Execution) error {
	return r.db.Save(exec).Error
}
