package models

import (
	"errors"
	"fmt"
)

var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryCodeExists is returned when another category already uses the code.
	ErrCategoryCodeExists = errors.New("category code already exists")
	// ErrCategoryInUse is returned when deleting a category that still has products.
	ErrCategoryInUse = errors.New("category has associated products")

	ErrTechniqueNotFound   = errors.New("printing technique not found")
	ErrTechniqueNameExists = errors.New("printing technique name already exists")
	ErrTechniqueInUse      = errors.New("printing technique has associated products")

	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound   = errors.New("product not found")
	ErrProductCodeExists = errors.New("product code already exists")

	// ErrInvalidReference is returned when a write points at a category or
	// printing technique that does not exist.
	ErrInvalidReference = errors.New("referenced record does not exist")

	ErrUnknownCategory  = fmt.Errorf("category: %w", ErrInvalidReference)
	ErrUnknownTechnique = fmt.Errorf("printing technique: %w", ErrInvalidReference)
	ErrUnknownProduct   = fmt.Errorf("product: %w", ErrInvalidReference)
)
