package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultQuoteStatus is assigned to every quote submitted from the storefront.
const DefaultQuoteStatus = "pending"

// Quote is a customer-submitted request for pricing on one or more products.
type Quote struct {
	ID          string `gorm:"primaryKey;size:36"`
	ClientName  string `gorm:"not null"`
	ClientEmail string `gorm:"not null"`
	ClientPhone *string
	Company     *string
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notes       *string         `gorm:"type:text"`
	Status      string          `gorm:"not null;index"`
	UserID      *string         `gorm:"size:36;index"`
	User        *User           `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Items       []QuoteItem     `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `gorm:"index"`
	UpdatedAt   time.Time
}

func (q *Quote) TableName() string {
	return "quotes"
}

func (q *Quote) BeforeCreate(_ *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.Status == "" {
		q.Status = DefaultQuoteStatus
	}
	return nil
}

// ComputeTotal sets TotalAmount to the sum of the item line totals.
func (q *Quote) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range q.Items {
		total = total.Add(item.TotalPrice)
	}
	q.TotalAmount = total
	return total
}

// QuoteItem is one line of a quote. ProductID is cleared when the product
// is deleted so the quote survives as a historical record.
type QuoteItem struct {
	ID         string          `gorm:"primaryKey;size:36"`
	QuoteID    string          `gorm:"size:36;not null;index"`
	ProductID  *string         `gorm:"size:36;index"`
	Product    *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL"`
	Position   int             `gorm:"not null;default:0"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notes      *string         `gorm:"type:text"`
}

func (i *QuoteItem) TableName() string {
	return "quote_items"
}

func (i *QuoteItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
