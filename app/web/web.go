// Package web renders the storefront and back office pages. Pages are
// server-rendered; static/app.js talks to the JSON API for live search,
// the quote dialog and admin writes.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/agencia1/merch-catalog/models"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

type ProductReader interface {
	GetFilteredProducts(ctx context.Context, offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

type CategoryReader interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
}

type TechniqueReader interface {
	GetAllTechniques(ctx context.Context) ([]models.PrintingTechnique, error)
}

type Handler struct {
	products   ProductReader
	categories CategoryReader
	techniques TechniqueReader
	salesEmail string
	pages      map[string]*template.Template
	logger     *slog.Logger
}

var pageFiles = []string{
	"home.gohtml",
	"catalog.gohtml",
	"tecnicas.gohtml",
	"admin_dashboard.gohtml",
	"admin_products.gohtml",
	"admin_product.gohtml",
	"admin_product_form.gohtml",
	"admin_settings.gohtml",
}

var funcs = template.FuncMap{
	"price": formatPrice,
	"str": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"join": strings.Join,
	"lines": func(list []string) string {
		return strings.Join(list, "\n")
	},
	"num": func(n *int) string {
		if n == nil {
			return ""
		}
		return fmt.Sprint(*n)
	},
	"priceInput": func(p decimal.NullDecimal) string {
		if !p.Valid {
			return ""
		}
		return p.Decimal.String()
	},
	"hasTechnique": func(p *models.Product, id string) bool {
		if p == nil {
			return false
		}
		for _, t := range p.PrintingTechniques {
			if t.ID == id {
				return true
			}
		}
		return false
	},
}

// formatPrice renders a product price the way the storefront shows it.
func formatPrice(p decimal.NullDecimal) string {
	if !p.Valid {
		return "Consultar"
	}
	return "$" + p.Decimal.StringFixed(2)
}

func NewHandler(p ProductReader, c CategoryReader, t TechniqueReader, salesEmail string) (*Handler, error) {
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, page := range pageFiles {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.gohtml",
			"templates/partials.gohtml",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}
		pages[page] = tmpl
	}
	return &Handler{
		products:   p,
		categories: c,
		techniques: t,
		salesEmail: salesEmail,
		pages:      pages,
		logger:     slog.Default(),
	}, nil
}

// Static serves the embedded assets, to be mounted under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

type layoutData struct {
	Title      string
	Section    string
	SalesEmail string
	Page       any
}

func (h *Handler) render(w http.ResponseWriter, page, title, section string, data any) {
	tmpl, ok := h.pages[page]
	if !ok {
		h.fail(w, fmt.Errorf("unknown page %s", page))
		return
	}

	// Render into a buffer so a template error never leaves a half-written page
	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "layout", layoutData{
		Title:      title,
		Section:    section,
		SalesEmail: h.salesEmail,
		Page:       data,
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write page", "page", page, "error", err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	h.logger.Error("failed to render page", "error", err)
	http.Error(w, "Error interno del servidor", http.StatusInternalServerError)
}
