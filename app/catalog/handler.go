package catalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/agencia1/merch-catalog/app/api"
	"github.com/agencia1/merch-catalog/models"
)

type ProductProvider interface {
	GetFilteredProducts(ctx context.Context, offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product, techniqueIDs []string) error
	UpdateProduct(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type CatalogHandler struct {
	repo   ProductProvider
	logger *slog.Logger
}

func NewCatalogHandler(r ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		repo:   r,
		logger: slog.Default(),
	}
}

// ParseFilters reads the search, category and featured query params.
// A featured value that is not a boolean is ignored.
func ParseFilters(r *http.Request) models.ProductFilters {
	q := r.URL.Query()
	filters := models.ProductFilters{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}
	if fStr := q.Get("featured"); fStr != "" {
		if featured, err := strconv.ParseBool(fStr); err == nil {
			filters.Featured = &featured
		}
	}
	return filters
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	page, limit := api.ParsePage(r)
	pagination := api.NewPagination(page, limit, 0)

	res, total, err := h.repo.GetFilteredProducts(r.Context(), pagination.Offset(), limit, ParseFilters(r))
	if err != nil {
		api.InternalError(w, h.logger, "Error fetching products", err)
		return
	}

	products := make([]Product, len(res))
	for i := range res {
		products[i] = ToProduct(&res[i])
	}

	api.WriteJSON(w, http.StatusOK, Response{
		Products:   products,
		Pagination: api.NewPagination(page, limit, total),
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.repo.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err, "Error fetching product")
		return
	}
	api.WriteJSON(w, http.StatusOK, ToProduct(product))
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input createInput
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if !input.valid() {
		api.WriteError(w, http.StatusBadRequest, "Missing name, code or categoryId")
		return
	}

	product := input.product()
	if err := h.repo.CreateProduct(r.Context(), product, input.PrintingTechniqueIDs); err != nil {
		h.writeError(w, err, "Error creating product")
		return
	}
	api.WriteJSON(w, http.StatusCreated, ToProduct(product))
}

func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input updateInput
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.blankRequired() {
		api.WriteError(w, http.StatusBadRequest, "Missing name, code or categoryId")
		return
	}

	product, err := h.repo.UpdateProduct(r.Context(), r.PathValue("id"), input.update())
	if err != nil {
		h.writeError(w, err, "Error updating product")
		return
	}
	api.WriteJSON(w, http.StatusOK, ToProduct(product))
}

func (h *CatalogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err, "Error deleting product")
		return
	}
	api.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Product deleted successfully"})
}

func (h *CatalogHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrProductNotFound):
		api.WriteError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, models.ErrProductCodeExists):
		api.WriteError(w, http.StatusBadRequest, "Product code already exists")
	case errors.Is(err, models.ErrUnknownCategory):
		api.WriteError(w, http.StatusBadRequest, "Category not found")
	case errors.Is(err, models.ErrUnknownTechnique):
		api.WriteError(w, http.StatusBadRequest, "Printing technique not found")
	default:
		api.InternalError(w, h.logger, fallback, err)
	}
}
