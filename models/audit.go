package models

import "time"

const (
	AuditActionSubmitMonth = "submit_month"
	AuditCategoryPayroll   = "payroll"

	AuditSeverityInfo    = "info"
	AuditSeverityWarning = "warning"
)

// AuditLog is an append-only trail entry written alongside notification
// side effects.
type AuditLog struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	ActorID   uint      `gorm:"not null;index" json:"actor_id"`
	Action    string    `gorm:"not null;size:64;index" json:"action"`
	Category  string    `gorm:"not null;size:32" json:"category"`
	Severity  string    `gorm:"not null;size:16" json:"severity"`
	MonthYear string    `gorm:"size:7" json:"month_year"`
	Details   string    `gorm:"size:500" json:"details"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
