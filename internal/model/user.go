package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents the user model stored in the database
type User struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	Email             string         `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password          string         `json:"-" gorm:"type:varchar(255)"`
	Name              string         `json:"name" gorm:"type:varchar(100)"`
	Roles             string         `json:"roles" gorm:"type:varchar(255)"`
	TenantID          uint           `json:"tenant_id" gorm:"index;not null"`
	EmailVerified     bool           `json:"email_verified" gorm:"default:false"`
	VerificationToken string         `json:"-" gorm:"type:varchar(64);index"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Tenant Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}

// RoleSet returns the user's roles as a typed capability set
func (u *User) RoleSet() RoleSet {
	return ParseRoles(u.Roles)
}

// HasRole reports whether the user carries the given role
func (u *User) HasRole(role Role) bool {
	return u.RoleSet().Has(role)
}
