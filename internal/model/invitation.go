package model

import (
	"time"

	"gorm.io/gorm"
)

// Invitation represents a pending invitation for a user to join a tenant.
// The token is a one-time secret delivered by email; acceptance creates the
// user account and marks the invitation as consumed.
type Invitation struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	TenantID   uint           `json:"tenant_id" gorm:"index;not null"`
	Email      string         `json:"email" gorm:"type:varchar(100);index;not null"`
	Roles      string         `json:"roles" gorm:"type:varchar(255)"`
	Token      string         `json:"-" gorm:"type:varchar(64);uniqueIndex"`
	ExpiresAt  time.Time      `json:"expires_at"`
	AcceptedAt *time.Time     `json:"accepted_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// Usable reports whether the invitation can still be accepted at the given time
func (i *Invitation) Usable(now time.Time) bool {
	return i.AcceptedAt == nil && now.Before(i.ExpiresAt)
}
