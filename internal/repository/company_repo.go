package repository

import (
	"errors"

	"gorm.io/gorm"

	"maintrack/internal/models"
)

// CompanyRepository handles company lookups for the import preconditions.
type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// FindByName returns a company by exact name, nil if absent.
func (r *CompanyRepository) FindByName(name string) (*models.Company, error) {
	var company models.Company
	if err := r.db.Where("name = ?", name).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// FindByID returns a company by id, nil if absent.
func (r *CompanyRepository) FindByID(id string) (*models.Company, error) {
	var company models.Company
	if err := r.db.Where("id = ?", id).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// Create inserts a company row.
func (r *CompanyRepository) Create(company *models.Company) error {
	return r.db.Create(company).Error
}
