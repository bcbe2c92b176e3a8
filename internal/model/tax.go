package model

import (
	"time"

	"gorm.io/gorm"
)

// Tax represents a configurable tax rate applied to articles and invoice lines
type Tax struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null"`
	Rate      float64        `json:"rate"` // percent, e.g. 20 for 20%
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
