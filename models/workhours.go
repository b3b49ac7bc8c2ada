package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WorkHoursRecord is one employee's working data for one month of one
// client. The (client_id, month_year) pair is the bucket the locking
// workflow operates on.
type WorkHoursRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ClientID  uint   `gorm:"not null;index:idx_work_hours_bucket" json:"client_id"`
	MonthYear string `gorm:"not null;size:7;index:idx_work_hours_bucket" json:"month_year"`

	// EmployeeID is empty for manual entries that never went through the
	// directory picker.
	EmployeeID *uint     `gorm:"index" json:"employee_id"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`

	EmployeeName     string          `gorm:"not null;size:200" json:"employee_name"`
	CompanyName      string          `gorm:"size:200" json:"company_name"`
	GrossSalary      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"gross_salary"`
	AbsenceDays      int             `gorm:"not null;default:0" json:"absence_days"`
	MedicalLeaveDate *time.Time      `gorm:"type:date" json:"medical_leave_date"`
	Notes            string          `gorm:"size:500" json:"notes"`
}
