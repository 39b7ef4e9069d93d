// Package seed loads the demo catalog into an empty database.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/agencia1/merch-catalog/models"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed.yaml
var defaultData []byte

type Category struct {
	Name        string `yaml:"name"`
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
}

type Technique struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

type Product struct {
	Name              string   `yaml:"name"`
	Code              string   `yaml:"code"`
	Description       string   `yaml:"description"`
	Price             string   `yaml:"price"`
	Image             string   `yaml:"image"`
	Images            []string `yaml:"images"`
	Featured          bool     `yaml:"featured"`
	MinQuantity       *int     `yaml:"minQuantity"`
	MaxQuantity       *int     `yaml:"maxQuantity"`
	Materials         []string `yaml:"materials"`
	Colors            []string `yaml:"colors"`
	Sizes             []string `yaml:"sizes"`
	CustomizationInfo string   `yaml:"customizationInfo"`
	// Category is a category code, Techniques are technique names.
	Category   string   `yaml:"category"`
	Techniques []string `yaml:"techniques"`
}

type Data struct {
	Categories []Category  `yaml:"categories"`
	Techniques []Technique `yaml:"techniques"`
	Products   []Product   `yaml:"products"`
}

// Parse decodes seed data and checks that every product reference resolves.
func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}

	categories := make(map[string]bool, len(data.Categories))
	for _, c := range data.Categories {
		categories[c.Code] = true
	}
	techniques := make(map[string]bool, len(data.Techniques))
	for _, t := range data.Techniques {
		techniques[t.Name] = true
	}
	for _, p := range data.Products {
		if !categories[p.Category] {
			return nil, fmt.Errorf("product %s: unknown category %q", p.Code, p.Category)
		}
		for _, name := range p.Techniques {
			if !techniques[name] {
				return nil, fmt.Errorf("product %s: unknown printing technique %q", p.Code, name)
			}
		}
		if p.Price != "" {
			if _, err := decimal.NewFromString(p.Price); err != nil {
				return nil, fmt.Errorf("product %s: invalid price %q", p.Code, p.Price)
			}
		}
	}
	return &data, nil
}

// Default returns the embedded demo catalog.
func Default() (*Data, error) {
	return Parse(defaultData)
}

// Seeder writes seed data through the catalog repositories.
type Seeder struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, logger: slog.Default()}
}

// Result counts the records a Run created.
type Result struct {
	Categories int
	Techniques int
	Products   int
	Skipped    bool
}

// Run writes data in one transaction unless the database already holds
// categories. A failed run leaves the database as it was.
func (s *Seeder) Run(ctx context.Context, data *Data) (Result, error) {
	var res Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = s.load(ctx, tx, data)
		return err
	})
	if err != nil {
		return Result{}, err
	}
	if res.Skipped {
		return res, nil
	}

	s.logger.Info("database seeded",
		"categories", res.Categories,
		"techniques", res.Techniques,
		"products", res.Products,
	)
	return res, nil
}

func (s *Seeder) load(ctx context.Context, tx *gorm.DB, data *Data) (Result, error) {
	categories := models.NewCategoriesRepository(tx)
	techniques := models.NewTechniquesRepository(tx)
	products := models.NewProductsRepository(tx)

	existing, err := categories.GetAllCategories(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(existing) > 0 {
		s.logger.Info("database already seeded, skipping", "categories", len(existing))
		return Result{Skipped: true}, nil
	}

	var res Result
	categoryIDs := make(map[string]string, len(data.Categories))
	for _, c := range data.Categories {
		category := &models.Category{Name: c.Name, Code: c.Code, Description: optional(c.Description)}
		if err := categories.CreateCategory(ctx, category); err != nil {
			return res, fmt.Errorf("failed to seed category %s: %w", c.Code, err)
		}
		categoryIDs[c.Code] = category.ID
		res.Categories++
	}

	techniqueIDs := make(map[string]string, len(data.Techniques))
	for _, t := range data.Techniques {
		technique := &models.PrintingTechnique{Name: t.Name, Description: optional(t.Description), Icon: optional(t.Icon)}
		if err := techniques.CreateTechnique(ctx, technique); err != nil {
			return res, fmt.Errorf("failed to seed printing technique %s: %w", t.Name, err)
		}
		techniqueIDs[t.Name] = technique.ID
		res.Techniques++
	}

	for _, p := range data.Products {
		product := &models.Product{
			Name:              p.Name,
			Code:              p.Code,
			Description:       optional(p.Description),
			Image:             optional(p.Image),
			Images:            models.OrEmpty(p.Images),
			Featured:          p.Featured,
			MinQuantity:       p.MinQuantity,
			MaxQuantity:       p.MaxQuantity,
			Materials:         models.OrEmpty(p.Materials),
			Colors:            models.OrEmpty(p.Colors),
			Sizes:             models.OrEmpty(p.Sizes),
			CustomizationInfo: optional(p.CustomizationInfo),
			CategoryID:        categoryIDs[p.Category],
		}
		if p.Price != "" {
			product.Price = decimal.NewNullDecimal(decimal.RequireFromString(p.Price))
		}
		ids := make([]string, 0, len(p.Techniques))
		for _, name := range p.Techniques {
			ids = append(ids, techniqueIDs[name])
		}
		if err := products.CreateProduct(ctx, product, ids); err != nil {
			return res, fmt.Errorf("failed to seed product %s: %w", p.Code, err)
		}
		res.Products++
	}
	return res, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
