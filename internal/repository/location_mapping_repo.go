package repository

import (
	"errors"

	"gorm.io/gorm"

	"maintrack/internal/apperr"
	"maintrack/internal/models"
)

// LocationMappingRepository resolves external location labels.
type LocationMappingRepository struct {
	db *gorm.DB
}

func NewLocationMappingRepository(db *gorm.DB) *LocationMappingRepository {
	return &LocationMappingRepository{db: db}
}

// FindByCSVName resolves an external location label to a mapping.
func (r *LocationMappingRepository) FindByCSVName(name string) (*models.LocationMapping, error) {
	var mapping models.LocationMapping
	if err := r.db.Where("csv_location_name = ?", name).First(&mapping).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.KindNotFound, "location mapping not found for %q", name)
		}
		return nil, err
	}
	return &mapping, nil
}

// Create inserts a new mapping. The unique index on csv_location_name keeps
// one mapping per external label.
func (r *LocationMappingRepository) Create(mapping *models.LocationMapping) error {
	return r.db.Create(mapping).Error
}
