package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a top-level grouping of products.
// It includes a unique code and a human-readable name.
type Category struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Name        string    `gorm:"not null"`
	Code        string    `gorm:"uniqueIndex;not null"`
	Description *string   `gorm:"type:text"`
	Products    []Product `gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// ProductCount is only populated by queries that select product_count.
	ProductCount int64 `gorm:"->;-:migration"`
}

func (c *Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CategoryUpdate carries the fields of a partial category update.
type CategoryUpdate struct {
	Name        Optional[string]  `json:"name"`
	Description Optional[*string] `json:"description"`
	Code        Optional[string]  `json:"code"`
}

func (u CategoryUpdate) columns() map[string]any {
	cols := map[string]any{}
	if u.Name.Set {
		cols["name"] = u.Name.Value
	}
	if u.Description.Set {
		cols["description"] = u.Description.Value
	}
	if u.Code.Set {
		cols["code"] = u.Code.Value
	}
	return cols
}
