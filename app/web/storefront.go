package web

import (
	"net/http"

	"github.com/agencia1/merch-catalog/app/api"
	"github.com/agencia1/merch-catalog/app/catalog"
	"github.com/agencia1/merch-catalog/models"
	"golang.org/x/sync/errgroup"
)

const featuredLimit = 8

type homePage struct {
	Featured   []models.Product
	Techniques []models.PrintingTechnique
}

func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	var page homePage
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		featured := true
		products, _, err := h.products.GetFilteredProducts(ctx, 0, featuredLimit, models.ProductFilters{Featured: &featured})
		page.Featured = products
		return err
	})
	g.Go(func() error {
		techniques, err := h.techniques.GetAllTechniques(ctx)
		page.Techniques = techniques
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, "home.gohtml", "Agencia 1 - Regalos Publicitarios", "home", page)
}

type catalogPage struct {
	Products   []models.Product
	Categories []models.Category
	Filters    models.ProductFilters
	Featured   bool
	Pagination api.Pagination
}

func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	page, limit := api.ParsePage(r)
	filters := catalog.ParseFilters(r)
	data := catalogPage{Filters: filters, Featured: filters.Featured != nil && *filters.Featured}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		products, total, err := h.products.GetFilteredProducts(ctx, api.NewPagination(page, limit, 0).Offset(), limit, filters)
		data.Products = products
		data.Pagination = api.NewPagination(page, limit, total)
		return err
	})
	g.Go(func() error {
		categories, err := h.categories.GetAllCategories(ctx)
		data.Categories = categories
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, "catalog.gohtml", "Catálogo de Productos", "products", data)
}

func (h *Handler) HandleTechniques(w http.ResponseWriter, r *http.Request) {
	techniques, err := h.techniques.GetAllTechniques(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, "tecnicas.gohtml", "Técnicas de Impresión", "tecnicas", mergeTechniques(techniques))
}
