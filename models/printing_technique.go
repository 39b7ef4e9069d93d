package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PrintingTechnique is a customization method (engraving, embroidery, ...)
// that can be applied to many products.
type PrintingTechnique struct {
	ID          string  `gorm:"primaryKey;size:36"`
	Name        string  `gorm:"uniqueIndex;not null"`
	Description *string `gorm:"type:text"`
	Icon        *string
	Products    []Product `gorm:"many2many:product_printing_techniques"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	ProductCount int64 `gorm:"->;-:migration"`
}

func (t *PrintingTechnique) TableName() string {
	return "printing_techniques"
}

func (t *PrintingTechnique) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

type TechniqueUpdate struct {
	Name        Optional[string]  `json:"name"`
	Description Optional[*string] `json:"description"`
	Icon        Optional[*string] `json:"icon"`
}

func (u TechniqueUpdate) columns() map[string]any {
	cols := map[string]any{}
	if u.Name.Set {
		cols["name"] = u.Name.Value
	}
	if u.Description.Set {
		cols["description"] = u.Description.Value
	}
	if u.Icon.Set {
		cols["icon"] = u.Icon.Value
	}
	return cols
}
