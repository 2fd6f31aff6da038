package repository

import (
	"errors"

	"gorm.io/gorm"

	"maintrack/internal/models"
	"maintrack/internal/pkg/utils"
)

// CategoryRepository handles service categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetOrCreate resolves a category by exact name, creating it when absent.
// Callers serialize their rows, so the lookup-then-insert cannot race within
// one import batch.
func (r *CategoryRepository) GetOrCreate(name string) (*models.Category, error) {
	var cat models.Category
	err := r.db.Where("name = ?", name).First(&cat).Error
	if err == nil {
		return &cat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cat = models.Category{
		ID:   utils.GenerateUUID(),
		Name: name,
	}
	if err := r.db.Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}
