package models

import "time"

// Submission marks a (client, month) bucket as reported to payroll. Its
// mere existence is the lock: the workflow only ever inserts these, never
// updates or deletes them, so there is no soft-delete column and the
// composite unique index closes the double-submit race at the schema.
type Submission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientID  uint   `gorm:"not null;uniqueIndex:idx_submissions_client_month" json:"client_id"`
	MonthYear string `gorm:"not null;size:7;uniqueIndex:idx_submissions_client_month" json:"month_year"`

	HREmail     string    `gorm:"size:254" json:"hr_email"`
	Locked      bool      `gorm:"default:true" json:"locked"`
	SubmittedAt time.Time `gorm:"not null" json:"submitted_at"`
}
