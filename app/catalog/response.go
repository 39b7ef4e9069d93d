package catalog

import (
	"time"

	"github.com/agencia1/merch-catalog/app/api"
	"github.com/agencia1/merch-catalog/models"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description *string `json:"description"`
}

type Technique struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

type Product struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Code               string      `json:"code"`
	Description        *string     `json:"description"`
	Price              *float64    `json:"price"`
	Image              *string     `json:"image"`
	Images             []string    `json:"images"`
	Featured           bool        `json:"featured"`
	MinQuantity        *int        `json:"minQuantity"`
	MaxQuantity        *int        `json:"maxQuantity"`
	Materials          []string    `json:"materials"`
	Colors             []string    `json:"colors"`
	Sizes              []string    `json:"sizes"`
	CustomizationInfo  *string     `json:"customizationInfo"`
	CategoryID         string      `json:"categoryId"`
	Category           *Category   `json:"category"`
	PrintingTechniques []Technique `json:"printingTechniques"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

type Response struct {
	Products   []Product      `json:"products"`
	Pagination api.Pagination `json:"pagination"`
}

// PriceValue returns a nullable price as a JSON-friendly float.
func PriceValue(price decimal.NullDecimal) *float64 {
	if !price.Valid {
		return nil
	}
	f := price.Decimal.InexactFloat64()
	return &f
}

// ToProduct maps a model product, with whatever relations were loaded.
func ToProduct(p *models.Product) Product {
	product := Product{
		ID:                 p.ID,
		Name:               p.Name,
		Code:               p.Code,
		Description:        p.Description,
		Price:              PriceValue(p.Price),
		Image:              p.Image,
		Images:             models.OrEmpty(p.Images),
		Featured:           p.Featured,
		MinQuantity:        p.MinQuantity,
		MaxQuantity:        p.MaxQuantity,
		Materials:          models.OrEmpty(p.Materials),
		Colors:             models.OrEmpty(p.Colors),
		Sizes:              models.OrEmpty(p.Sizes),
		CustomizationInfo:  p.CustomizationInfo,
		CategoryID:         p.CategoryID,
		PrintingTechniques: make([]Technique, len(p.PrintingTechniques)),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	if p.Category.ID != "" {
		product.Category = &Category{
			ID:          p.Category.ID,
			Name:        p.Category.Name,
			Code:        p.Category.Code,
			Description: p.Category.Description,
		}
	}
	for i, t := range p.PrintingTechniques {
		product.PrintingTechniques[i] = Technique{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Icon:        t.Icon,
		}
	}
	return product
}
