package categories

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/agencia1/merch-catalog/app/api"
	"github.com/agencia1/merch-catalog/models"
)

type CategoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	Description  *string   `json:"description"`
	ProductCount int64     `json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, id string, update models.CategoryUpdate) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type CategoryHandler struct {
	repo   CategoryProvider
	logger *slog.Logger
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r, logger: slog.Default()}
}

func toResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Code:         c.Code,
		Description:  c.Description,
		ProductCount: c.ProductCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		api.InternalError(w, h.logger, "Error fetching categories", err)
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i := range categories {
		response[i] = toResponse(&categories[i])
	}
	api.WriteJSON(w, http.StatusOK, response)
}

func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	category, err := h.repo.GetCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err, "Error fetching category")
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(category))
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string  `json:"name"`
		Code        string  `json:"code"`
		Description *string `json:"description"`
	}

	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Code = strings.TrimSpace(input.Code)
	if input.Code == "" || input.Name == "" {
		api.WriteError(w, http.StatusBadRequest, "Missing name or code")
		return
	}

	category := &models.Category{
		Name:        input.Name,
		Code:        input.Code,
		Description: input.Description,
	}

	if err := h.repo.CreateCategory(r.Context(), category); err != nil {
		h.writeError(w, err, "Error creating category")
		return
	}

	api.WriteJSON(w, http.StatusCreated, toResponse(category))
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var update models.CategoryUpdate
	if err := api.DecodeJSON(r, &update); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if (update.Name.Set && strings.TrimSpace(update.Name.Value) == "") ||
		(update.Code.Set && strings.TrimSpace(update.Code.Value) == "") {
		api.WriteError(w, http.StatusBadRequest, "Name and code cannot be empty")
		return
	}
	if update.Name.Set {
		update.Name.Value = strings.TrimSpace(update.Name.Value)
	}
	if update.Code.Set {
		update.Code.Value = strings.TrimSpace(update.Code.Value)
	}

	category, err := h.repo.UpdateCategory(r.Context(), r.PathValue("id"), update)
	if err != nil {
		h.writeError(w, err, "Error updating category")
		return
	}
	api.WriteJSON(w, http.StatusOK, toResponse(category))
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err, "Error deleting category")
		return
	}
	api.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Category deleted successfully"})
}

func (h *CategoryHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrCategoryNotFound):
		api.WriteError(w, http.StatusNotFound, "Category not found")
	case errors.Is(err, models.ErrCategoryCodeExists):
		api.WriteError(w, http.StatusBadRequest, "Category code already exists")
	case errors.Is(err, models.ErrCategoryInUse):
		api.WriteError(w, http.StatusBadRequest, "Cannot delete category with associated products")
	default:
		api.InternalError(w, h.logger, fallback, err)
	}
}
