package models

import "time"

// Category maps to the `categories` table. Import rows resolve categories by
// exact name and create them when absent.
type Category struct {
	ID        string    `gorm:"column:id;primaryKey;size:64" json:"id"`
	Name      string    `gorm:"column:name;size:200;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Category) TableName() string {
	return "categories"
}

// Company maps to the `companies` table. Only the default-company lookup the
// import path requires is in scope here.
type Company struct {
	ID        string    `gorm:"column:id;primaryKey;size:64" json:"id"`
	Name      string    `gorm:"column:name;size:200;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Company) TableName() string {
	return "companies"
}

// Client maps to the `clients` table.
type Client struct {
	ID        string    `gorm:"column:id;primaryKey;size:64" json:"id"`
	Name      string    `gorm:"column:name;size:200" json:"name"`
	Email     string    `gorm:"column:email;size:200;uniqueIndex" json:"email"`
	CompanyID string    `gorm:"column:company_id;size:64" json:"companyId"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Client) TableName() string {
	return "clients"
}
