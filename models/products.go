package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a customizable promotional product in the catalog.
// Images, materials, colors and sizes are ordered lists persisted as JSON text.
type Product struct {
	ID                 string              `gorm:"primaryKey;size:36"`
	Name               string              `gorm:"not null"`
	Code               string              `gorm:"uniqueIndex;not null"`
	Description        *string             `gorm:"type:text"`
	Price              decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	Image              *string
	Images             []string `gorm:"type:text;serializer:json"`
	Featured           bool     `gorm:"not null;default:false;index"`
	MinQuantity        *int
	MaxQuantity        *int
	Materials          []string            `gorm:"type:text;serializer:json"`
	Colors             []string            `gorm:"type:text;serializer:json"`
	Sizes              []string            `gorm:"type:text;serializer:json"`
	CustomizationInfo  *string             `gorm:"type:text"`
	CategoryID         string              `gorm:"size:36;not null;index"`
	Category           Category            `gorm:"foreignKey:CategoryID"`
	PrintingTechniques []PrintingTechnique `gorm:"many2many:product_printing_techniques"`
	CreatedAt          time.Time           `gorm:"index"`
	UpdatedAt          time.Time
}

func (p *Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProductUpdate carries the fields of a partial product update. A set
// PrintingTechniqueIDs replaces the whole technique set.
type ProductUpdate struct {
	Name                 Optional[string]
	Description          Optional[*string]
	Code                 Optional[string]
	Price                Optional[decimal.NullDecimal]
	Image                Optional[*string]
	Images               Optional[[]string]
	Featured             Optional[bool]
	MinQuantity          Optional[*int]
	MaxQuantity          Optional[*int]
	Materials            Optional[[]string]
	Colors               Optional[[]string]
	Sizes                Optional[[]string]
	CustomizationInfo    Optional[*string]
	CategoryID           Optional[string]
	PrintingTechniqueIDs Optional[[]string]
}

// apply copies the set fields onto p so gorm runs the field serializers.
func (u ProductUpdate) apply(p *Product) []string {
	var changed []string
	set := func(column string, ok bool, fn func()) {
		if ok {
			fn()
			changed = append(changed, column)
		}
	}
	set("name", u.Name.Set, func() { p.Name = u.Name.Value })
	set("description", u.Description.Set, func() { p.Description = u.Description.Value })
	set("code", u.Code.Set, func() { p.Code = u.Code.Value })
	set("price", u.Price.Set, func() { p.Price = u.Price.Value })
	set("image", u.Image.Set, func() { p.Image = u.Image.Value })
	set("images", u.Images.Set, func() { p.Images = u.Images.Value })
	set("featured", u.Featured.Set, func() { p.Featured = u.Featured.Value })
	set("min_quantity", u.MinQuantity.Set, func() { p.MinQuantity = u.MinQuantity.Value })
	set("max_quantity", u.MaxQuantity.Set, func() { p.MaxQuantity = u.MaxQuantity.Value })
	set("materials", u.Materials.Set, func() { p.Materials = u.Materials.Value })
	set("colors", u.Colors.Set, func() { p.Colors = u.Colors.Value })
	set("sizes", u.Sizes.Set, func() { p.Sizes = u.Sizes.Value })
	set("customization_info", u.CustomizationInfo.Set, func() { p.CustomizationInfo = u.CustomizationInfo.Value })
	set("category_id", u.CategoryID.Set, func() { p.CategoryID = u.CategoryID.Value })
	return changed
}

// OrEmpty returns list, or an empty list when nothing was stored.
func OrEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
