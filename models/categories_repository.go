package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

const categoryCountSelect = "categories.*, (SELECT COUNT(*) FROM products WHERE products.category_id = categories.id) AS product_count"

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

// GetAllCategories returns every category ordered by name, with product counts.
func (r *CategoriesRepository) GetAllCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).
		Model(&Category{}).
		Select(categoryCountSelect).
		Order("categories.name ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoriesRepository) GetCategory(ctx context.Context, id string) (*Category, error) {
	return r.find(r.db.WithContext(ctx), id)
}

func (r *CategoriesRepository) CreateCategory(ctx context.Context, category *Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := exists(tx, &Category{}, "code = ?", category.Code)
		if err != nil {
			return err
		}
		if taken {
			return ErrCategoryCodeExists
		}
		if err := tx.Create(category).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrCategoryCodeExists
			}
			return fmt.Errorf("failed to create category: %w", err)
		}
		return nil
	})
}

// UpdateCategory applies the set fields of update and returns the refreshed category.
func (r *CategoriesRepository) UpdateCategory(ctx context.Context, id string, update CategoryUpdate) (*Category, error) {
	var updated *Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.find(tx, id); err != nil {
			return err
		}
		if update.Code.Set {
			taken, err := exists(tx, &Category{}, "code = ? AND id <> ?", update.Code.Value, id)
			if err != nil {
				return err
			}
			if taken {
				return ErrCategoryCodeExists
			}
		}
		if cols := update.columns(); len(cols) > 0 {
			if err := tx.Model(&Category{ID: id}).Updates(cols).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrCategoryCodeExists
				}
				return fmt.Errorf("failed to update category: %w", err)
			}
		}
		var err error
		updated, err = r.find(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteCategory removes a category, refusing while any product references it.
func (r *CategoriesRepository) DeleteCategory(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := r.find(tx, id)
		if err != nil {
			return err
		}
		if category.ProductCount > 0 {
			return ErrCategoryInUse
		}
		if err := tx.Delete(&Category{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
}

func (r *CategoriesRepository) find(tx *gorm.DB, id string) (*Category, error) {
	var category Category
	if err := tx.Model(&Category{}).
		Select(categoryCountSelect).
		Where("categories.id = ?", id).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

// exists reports whether any row of model matches the condition.
func exists(tx *gorm.DB, model any, query string, args ...any) (bool, error) {
	var count int64
	if err := tx.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check uniqueness: %w", err)
	}
	return count > 0, nil
}
