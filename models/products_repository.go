package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// AllCategories is the category filter value that disables category filtering.
const AllCategories = "all"

type ProductsRepository struct {
	db *gorm.DB
}

type ProductFilters struct {
	// Search matches name, description or code, case-insensitively.
	Search string
	// Category matches against the category name; the first match wins.
	Category string
	Featured *bool
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetFilteredProducts(ctx context.Context, offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	db := r.db.WithContext(ctx)

	var categoryID string
	if name := strings.TrimSpace(filters.Category); name != "" && !strings.EqualFold(name, AllCategories) {
		var category Category
		err := db.Where("LOWER(categories.name) LIKE ? ESCAPE '\\'", likePattern(name)).
			Order("categories.name ASC").
			Take(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown category: empty page rather than an error
			return []Product{}, 0, nil
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to resolve category filter: %w", err)
		}
		categoryID = category.ID
	}

	filter := func(tx *gorm.DB) *gorm.DB {
		if search := strings.TrimSpace(filters.Search); search != "" {
			pattern := likePattern(search)
			tx = tx.Where(
				"(LOWER(products.name) LIKE ? ESCAPE '\\' OR LOWER(products.description) LIKE ? ESCAPE '\\' OR LOWER(products.code) LIKE ? ESCAPE '\\')",
				pattern, pattern, pattern,
			)
		}
		if categoryID != "" {
			tx = tx.Where("products.category_id = ?", categoryID)
		}
		if filters.Featured != nil {
			tx = tx.Where("products.featured = ?", *filters.Featured)
		}
		return tx
	}

	// Count total after filtering
	var total int64
	if err := db.Model(&Product{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Apply pagination
	var products []Product
	if err := db.Scopes(filter, withRelations).
		Order("products.created_at DESC").
		Order("products.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return products, total, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// CreateProduct stores product and links the given printing techniques in one
// transaction. On success product is refreshed with its relations.
func (r *ProductsRepository) CreateProduct(ctx context.Context, product *Product, techniqueIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := exists(tx, &Product{}, "code = ?", product.Code)
		if err != nil {
			return err
		}
		if taken {
			return ErrProductCodeExists
		}
		if err := requireCategory(tx, product.CategoryID); err != nil {
			return err
		}
		techniques, err := loadTechniques(tx, techniqueIDs)
		if err != nil {
			return err
		}
		product.PrintingTechniques = techniques

		if err := tx.Omit("Category").Create(product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrProductCodeExists
			}
			return fmt.Errorf("failed to create product: %w", err)
		}

		created, err := r.find(tx, product.ID)
		if err != nil {
			return err
		}
		*product = *created
		return nil
	})
}

// UpdateProduct applies the set fields of update. A set PrintingTechniqueIDs
// replaces the technique set instead of merging into it.
func (r *ProductsRepository) UpdateProduct(ctx context.Context, id string, update ProductUpdate) (*Product, error) {
	var updated *Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := r.find(tx, id)
		if err != nil {
			return err
		}
		if update.Code.Set {
			taken, err := exists(tx, &Product{}, "code = ? AND id <> ?", update.Code.Value, id)
			if err != nil {
				return err
			}
			if taken {
				return ErrProductCodeExists
			}
		}
		if update.CategoryID.Set {
			if err := requireCategory(tx, update.CategoryID.Value); err != nil {
				return err
			}
		}

		if changed := update.apply(product); len(changed) > 0 {
			if err := tx.Model(product).Select(changed).Updates(product).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrProductCodeExists
				}
				return fmt.Errorf("failed to update product: %w", err)
			}
		}

		if update.PrintingTechniqueIDs.Set {
			techniques, err := loadTechniques(tx, update.PrintingTechniqueIDs.Value)
			if err != nil {
				return err
			}
			assoc := tx.Model(&Product{ID: id}).Association("PrintingTechniques")
			if len(techniques) == 0 {
				err = assoc.Clear()
			} else {
				err = assoc.Replace(techniques)
			}
			if err != nil {
				return fmt.Errorf("failed to replace printing techniques: %w", err)
			}
		}

		updated, err = r.find(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProduct removes a product and its technique links. Quote items that
// referenced the product are kept with their product reference cleared.
func (r *ProductsRepository) DeleteProduct(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := exists(tx, &Product{}, "id = ?", id)
		if err != nil {
			return err
		}
		if !found {
			return ErrProductNotFound
		}
		if err := tx.Model(&QuoteItem{}).Where("product_id = ?", id).Update("product_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach quote items: %w", err)
		}
		if err := tx.Model(&Product{ID: id}).Association("PrintingTechniques").Clear(); err != nil {
			return fmt.Errorf("failed to clear printing techniques: %w", err)
		}
		if err := tx.Delete(&Product{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

func (r *ProductsRepository) find(tx *gorm.DB, id string) (*Product, error) {
	var product Product
	if err := tx.Scopes(withRelations).
		Where("products.id = ?", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

func withRelations(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Category").
		Preload("PrintingTechniques", func(db *gorm.DB) *gorm.DB {
			return db.Order("printing_techniques.name ASC")
		})
}

func requireCategory(tx *gorm.DB, id string) error {
	found, err := exists(tx, &Category{}, "id = ?", id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%q: %w", id, ErrUnknownCategory)
	}
	return nil
}

// loadTechniques resolves ids to printing techniques, failing if any is unknown.
func loadTechniques(tx *gorm.DB, ids []string) ([]PrintingTechnique, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []PrintingTechnique{}, nil
	}
	var techniques []PrintingTechnique
	if err := tx.Where("id IN ?", ids).Find(&techniques).Error; err != nil {
		return nil, fmt.Errorf("failed to load printing techniques: %w", err)
	}
	if len(techniques) != len(ids) {
		return nil, fmt.Errorf("%v: %w", ids, ErrUnknownTechnique)
	}
	return techniques, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a lower-cased "contains" pattern for LIKE ... ESCAPE '\'.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
