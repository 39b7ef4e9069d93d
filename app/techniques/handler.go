package techniques

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

type TechniqueResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Icon         *string   `json:"icon"`
	ProductCount int64     `json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type TechniqueProvider interface {
	GetAllTechniques(ctx context.Context) ([]models.PrintingTechnique, error)
	GetTechnique(ctx context.Context, id string) (*models.PrintingTechnique, error)
	CreateTechnique(ctx context.Context, technique *models.PrintingTechnique) error
	UpdateTechnique(ctx context.Context, id string, update models.TechniqueUpdate) (*models.PrintingTechnique, error)
	DeleteTechnique(ctx context.Context, id string) error
}

type TechniqueHandler struct {
	repo   TechniqueProvider
	logger *slog.Logger
}

func NewTechniqueHandler(r TechniqueProvider) *TechniqueHandler {
	return &TechniqueHandler{repo: r, logger: slog.Default()}
}

// ToResponse converts a technique into its API shape.
func ToResponse(t *models.PrintingTechnique) TechniqueResponse {
	return TechniqueResponse{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		Icon:         t.Icon,
		ProductCount: t.ProductCount,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (h *TechniqueHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	techniques, err := h.repo.GetAllTechniques(r.Context())
	if err != nil {
		api.InternalError(w, h.logger, "Error fetching printing techniques", err)
		return
	}

	response := make([]TechniqueResponse, len(techniques))
	for i := range techniques {
		response[i] = ToResponse(&techniques[i])
	}
	api.WriteJSON(w, http.StatusOK, response)
}

func (h *TechniqueHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	technique, err := h.repo.GetTechnique(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err, "Error fetching printing technique")
		return
	}
	api.WriteJSON(w, http.StatusOK, ToResponse(technique))
}

func (h *TechniqueHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		Icon        *string `json:"icon"`
	}
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		api.WriteError(w, http.StatusBadRequest, "Missing name")
		return
	}

	technique := &models.PrintingTechnique{
		Name:        input.Name,
		Description: input.Description,
		Icon:        input.Icon,
	}
	if err := h.repo.CreateTechnique(r.Context(), technique); err != nil {
		h.writeError(w, err, "Error creating printing technique")
		return
	}
	api.WriteJSON(w, http.StatusCreated, ToResponse(technique))
}

func (h *TechniqueHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var update models.TechniqueUpdate
	if err := api.DecodeJSON(r, &update); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if update.Name.Set && strings.TrimSpace(update.Name.Value) == "" {
		api.WriteError(w, http.StatusBadRequest, "Missing name")
		return
	}
	if update.Name.Set {
		update.Name.Value = strings.TrimSpace(update.Name.Value)
	}

	technique, err := h.repo.UpdateTechnique(r.Context(), r.PathValue("id"), update)
	if err != nil {
		h.writeError(w, err, "Error updating printing technique")
		return
	}
	api.WriteJSON(w, http.StatusOK, ToResponse(technique))
}

func (h *TechniqueHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteTechnique(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err, "Error deleting printing technique")
		return
	}
	api.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Printing technique deleted successfully"})
}

func (h *TechniqueHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrTechniqueNotFound):
		api.WriteError(w, http.StatusNotFound, "Printing technique not found")
	case errors.Is(err, models.ErrTechniqueNameExists):
		api.WriteError(w, http.StatusBadRequest, "Printing technique name already exists")
	case errors.Is(err, models.ErrTechniqueInUse):
		api.WriteError(w, http.StatusBadRequest, "Cannot delete printing technique with associated products")
	default:
		api.InternalError(w, h.logger, fallback, err)
	}
}
