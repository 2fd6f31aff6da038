package models

import "time"

// LocationMapping maps to the `location_mappings` table: a translation table
// from an externally-sourced location label to an internal location identity.
// At most one mapping exists per external label.
type LocationMapping struct {
	ID                 string    `gorm:"column:id;primaryKey;size:64" json:"id"`
	CSVLocationName    string    `gorm:"column:csv_location_name;size:300;uniqueIndex" json:"csvLocationName"`
	SystemLocationID   string    `gorm:"column:system_location_id;size:64" json:"systemLocationId"`
	SystemLocationName string    `gorm:"column:system_location_name;size:300" json:"systemLocationName"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (LocationMapping) TableName() string {
	return "location_mappings"
}
