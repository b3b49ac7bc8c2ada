package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// User is a tenant account (a business client) or an operator account.
// Every work-hours record and submission is scoped to a client user.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Username     string         `gorm:"uniqueIndex;not null;size:100" json:"username"`
	CompanyName  string         `gorm:"size:200" json:"company_name"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         Role           `gorm:"not null;size:20" json:"role"`
	// PayrollEmail is the tenant's configured payroll contact, used as the
	// recipient when a submission carries no explicit HR address.
	PayrollEmail string `gorm:"size:254" json:"payroll_email"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsClient() bool {
	return u.Role == RoleClient
}
