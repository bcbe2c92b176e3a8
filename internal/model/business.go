package model

import (
	"time"

	"gorm.io/gorm"
)

// Business represents a business entity invoices are issued against
type Business struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	TenantID  uint           `json:"tenant_id" gorm:"index;not null"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null"`
	TaxNumber string         `json:"tax_number" gorm:"type:varchar(20);index"`
	Address   string         `json:"address" gorm:"type:varchar(255)"`
	City      string         `json:"city" gorm:"type:varchar(100)"`
	Active    bool           `json:"active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
