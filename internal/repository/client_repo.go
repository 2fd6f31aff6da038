package repository

import (
	"errors"

	"gorm.io/gorm"

	"maintrack/internal/models"
)

// ClientRepository handles client lookups.
type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// FindByEmail returns a client by email, nil if absent.
func (r *ClientRepository) FindByEmail(email string) (*models.Client, error) {
	var client models.Client
	if err := r.db.Where("email = ?", email).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// FindByID returns a client by id, nil if absent.
func (r *ClientRepository) FindByID(id string) (*models.Client, error) {
	var client models.Client
	if err := r.db.Where("id = ?", id).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// Create inserts a client row.
func (r *ClientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}
