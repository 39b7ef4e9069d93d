package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

const techniqueCountSelect = "printing_techniques.*, (SELECT COUNT(*) FROM product_printing_techniques WHERE product_printing_techniques.printing_technique_id = printing_techniques.id) AS product_count"

type TechniquesRepository struct {
	db *gorm.DB
}

func NewTechniquesRepository(db *gorm.DB) *TechniquesRepository {
	return &TechniquesRepository{
		db: db,
	}
}

// GetAllTechniques returns every printing technique ordered by name, with product counts.
func (r *TechniquesRepository) GetAllTechniques(ctx context.Context) ([]PrintingTechnique, error) {
	var techniques []PrintingTechnique
	if err := r.db.WithContext(ctx).
		Model(&PrintingTechnique{}).
		Select(techniqueCountSelect).
		Order("printing_techniques.name ASC").
		Find(&techniques).Error; err != nil {
		return nil, fmt.Errorf("failed to list printing techniques: %w", err)
	}
	return techniques, nil
}

func (r *TechniquesRepository) GetTechnique(ctx context.Context, id string) (*PrintingTechnique, error) {
	return r.find(r.db.WithContext(ctx), id)
}

func (r *TechniquesRepository) CreateTechnique(ctx context.Context, technique *PrintingTechnique) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := exists(tx, &PrintingTechnique{}, "name = ?", technique.Name)
		if err != nil {
			return err
		}
		if taken {
			return ErrTechniqueNameExists
		}
		if err := tx.Create(technique).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrTechniqueNameExists
			}
			return fmt.Errorf("failed to create printing technique: %w", err)
		}
		return nil
	})
}

func (r *TechniquesRepository) UpdateTechnique(ctx context.Context, id string, update TechniqueUpdate) (*PrintingTechnique, error) {
	var updated *PrintingTechnique
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.find(tx, id); err != nil {
			return err
		}
		if update.Name.Set {
			taken, err := exists(tx, &PrintingTechnique{}, "name = ? AND id <> ?", update.Name.Value, id)
			if err != nil {
				return err
			}
			if taken {
				return ErrTechniqueNameExists
			}
		}
		if cols := update.columns(); len(cols) > 0 {
			if err := tx.Model(&PrintingTechnique{ID: id}).Updates(cols).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrTechniqueNameExists
				}
				return fmt.Errorf("failed to update printing technique: %w", err)
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

// DeleteTechnique removes a printing technique, refusing while any product uses it.
func (r *TechniquesRepository) DeleteTechnique(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		technique, err := r.find(tx, id)
		if err != nil {
			return err
		}
		if technique.ProductCount > 0 {
			return ErrTechniqueInUse
		}
		if err := tx.Delete(&PrintingTechnique{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete printing technique: %w", err)
		}
		return nil
	})
}

func (r *TechniquesRepository) find(tx *gorm.DB, id string) (*PrintingTechnique, error) {
	var technique PrintingTechnique
	if err := tx.Model(&PrintingTechnique{}).
		Select(techniqueCountSelect).
		Where("printing_techniques.id = ?", id).
		First(&technique).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTechniqueNotFound
		}
		return nil, fmt.Errorf("failed to find printing technique: %w", err)
	}
	return &technique, nil
}
