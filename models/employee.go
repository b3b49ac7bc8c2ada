package models

import (
	"time"

	"gorm.io/gorm"
)

// Employee is the HR directory entry backing the employee picker when a
// work-hours row is added by hand. This subsystem treats it as read-only;
// provisioning happens through the admin endpoints.
type Employee struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	ClientID    uint           `gorm:"not null;index" json:"client_id"`
	FullName    string         `gorm:"not null;size:200" json:"full_name"`
	CompanyName string         `gorm:"size:200" json:"company_name"`
	Active      bool           `gorm:"default:true" json:"active"`
}
