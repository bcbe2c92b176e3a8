package model

import (
	"time"

	"gorm.io/gorm"
)

// Tenant represents an organizational account scope. IsAdmin marks an
// administrative tenant with cross-business visibility; IssuerBusinessID
// references the business this tenant issues invoices as.
type Tenant struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Name             string         `json:"name" gorm:"type:varchar(100);uniqueIndex"`
	IsAdmin          bool           `json:"is_admin" gorm:"default:false"`
	IssuerBusinessID *uint          `json:"issuer_business_id,omitempty" gorm:"index"`
	Active           bool           `json:"active" gorm:"default:true"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`
}

// IsIssuerBusiness reports whether the given business is currently designated
// as this tenant's issuer business. Such a business is exempt from deletion
// while so designated.
func (t *Tenant) IsIssuerBusiness(businessID uint) bool {
	return t.IssuerBusinessID != nil && *t.IssuerBusinessID == businessID
}
