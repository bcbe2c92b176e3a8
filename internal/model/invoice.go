package model

import (
	"time"

	"gorm.io/gorm"
)

// Invoice status values
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusIssued    = "issued"
	InvoiceStatusCancelled = "cancelled"
)

// Invoice represents an invoice issued by a business
type Invoice struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	BusinessID uint           `json:"business_id" gorm:"index;not null"`
	Number     string         `json:"number" gorm:"type:varchar(50);index"`
	Status     string         `json:"status" gorm:"type:varchar(20);default:'draft'"`
	BuyerName  string         `json:"buyer_name" gorm:"type:varchar(150)"`
	IssueDate  *time.Time     `json:"issue_date,omitempty"`
	Total      float64        `json:"total"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Lines []InvoiceLine `json:"lines,omitempty" gorm:"foreignKey:InvoiceID"`
}

// InvoiceLine represents a single line on an invoice
type InvoiceLine struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	InvoiceID uint      `json:"invoice_id" gorm:"index;not null"`
	ArticleID *uint     `json:"article_id,omitempty" gorm:"index"`
	Name      string    `json:"name" gorm:"type:varchar(150)"`
	Quantity  float64   `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	TaxRate   float64   `json:"tax_rate"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LineTotal returns the line amount including tax
func (l *InvoiceLine) LineTotal() float64 {
	base := l.Quantity * l.UnitPrice
	return base + base*l.TaxRate/100
}
