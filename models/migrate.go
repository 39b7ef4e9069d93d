package models

import (
	"fmt"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the tables of every catalog entity.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Category{},
		&PrintingTechnique{},
		&Product{},
		&Quote{},
		&QuoteItem{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
