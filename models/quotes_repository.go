package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrQuoteNotFound is returned when a quote is not found.
var ErrQuoteNotFound = errors.New("quote not found")

type QuotesRepository struct {
	db *gorm.DB
}

type QuoteFilters struct {
	Status string
}

func NewQuotesRepository(db *gorm.DB) *QuotesRepository {
	return &QuotesRepository{
		db: db,
	}
}

func (r *QuotesRepository) GetFilteredQuotes(ctx context.Context, offset, limit int, filters QuoteFilters) ([]Quote, int64, error) {
	db := r.db.WithContext(ctx)

	filter := func(tx *gorm.DB) *gorm.DB {
		if filters.Status != "" {
			tx = tx.Where("quotes.status = ?", filters.Status)
		}
		return tx
	}

	var total int64
	if err := db.Model(&Quote{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count quotes: %w", err)
	}

	var quotes []Quote
	if err := db.Scopes(filter).
		Preload("User", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "email")
		}).
		Preload("Items", orderItems).
		Preload("Items.Product", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "code", "price")
		}).
		Order("quotes.created_at DESC").
		Order("quotes.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&quotes).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list quotes: %w", err)
	}

	return quotes, total, nil
}

// CreateQuote computes the quote total from its items and writes the quote
// and its items inside one transaction.
func (r *QuotesRepository) CreateQuote(ctx context.Context, quote *Quote) error {
	quote.ComputeTotal()
	if quote.Status == "" {
		quote.Status = DefaultQuoteStatus
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := quote.Items
		if err := tx.Omit("Items", "User").Create(quote).Error; err != nil {
			return fmt.Errorf("failed to create quote: %w", err)
		}
		for i := range items {
			items[i].QuoteID = quote.ID
			items[i].Position = i
		}
		if len(items) > 0 {
			if err := tx.Omit("Product").Create(&items).Error; err != nil {
				if errors.Is(err, gorm.ErrForeignKeyViolated) {
					return ErrUnknownProduct
				}
				return fmt.Errorf("failed to create quote items: %w", err)
			}
		}

		var created Quote
		if err := tx.Preload("Items", orderItems).
			Preload("Items.Product").
			First(&created, "quotes.id = ?", quote.ID).Error; err != nil {
			return fmt.Errorf("failed to reload quote: %w", err)
		}
		*quote = created
		return nil
	})
}

func (r *QuotesRepository) GetQuote(ctx context.Context, id string) (*Quote, error) {
	var quote Quote
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Items", orderItems).
		Preload("Items.Product").
		First(&quote, "quotes.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to find quote: %w", err)
	}
	return &quote, nil
}

func orderItems(tx *gorm.DB) *gorm.DB {
	return tx.Order("quote_items.position ASC")
}
