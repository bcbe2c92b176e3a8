package model

import (
	"time"

	"gorm.io/gorm"
)

// Article represents a catalog item a business can put on invoice lines
type Article struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	BusinessID uint           `json:"business_id" gorm:"index;not null"`
	Code       string         `json:"code" gorm:"type:varchar(50);index"`
	Name       string         `json:"name" gorm:"type:varchar(150);not null"`
	Unit       string         `json:"unit" gorm:"type:varchar(20)"`
	Price      float64        `json:"price"`
	TaxID      *uint          `json:"tax_id,omitempty" gorm:"index"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Tax *Tax `json:"tax,omitempty" gorm:"foreignKey:TaxID"`
}
