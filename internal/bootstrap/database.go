package bootstrap

import (
	"fmt"

	"gorm.io/gorm"

	"maintrack/internal/models"
	"maintrack/internal/pkg/utils"
)

// MigrateAndSeed ensures required tables exist and inserts the default
// company/client rows the import path depends on.
func MigrateAndSeed(db *gorm.DB, defaultCompanyName, defaultClientEmail string) error {
	if err := db.AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	if err := seedDefaults(db, defaultCompanyName, defaultClientEmail); err != nil {
		return fmt.Errorf("seed defaults failed: %w", err)
	}
	return nil
}

func allModels() []interface{} {
	return []interface{}{
		&models.RecurringWorkOrder{},
		&models.Execution{},
		&models.WorkOrder{},
		&models.LocationMapping{},
		&models.Category{},
		&models.Company{},
		&models.Client{},
	}
}

func seedDefaults(db *gorm.DB, companyName, clientEmail string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		company, err := ensureDefaultCompany(tx, companyName)
		if err != nil {
			return err
		}
		return ensureDefaultClient(tx, clientEmail, company.ID)
	})
}

func ensureDefaultCompany(tx *gorm.DB, name string) (*models.Company, error) {
	if name == "" {
		name = "Default Company"
	}
	var company models.Company
	err := tx.Where("name = ?", name).First(&company).Error
	if err == nil {
		return &company, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	company = models.Company{ID: utils.GenerateUUID(), Name: name}
	if err := tx.Create(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func ensureDefaultClient(tx *gorm.DB, email, companyID string) error {
	if email == "" {
		return nil
	}
	var count int64
	if err := tx.Model(&models.Client{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return tx.Create(&models.Client{
		ID:        utils.GenerateUUID(),
		Name:      "Default Client",
		Email:     email,
		CompanyID: companyID,
	}).Error
}
