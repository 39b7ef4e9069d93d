package web

import (
	"errors"
	"net/http"

	"github.com/agencia1/merch-catalog/app/api"
	"github.com/agencia1/merch-catalog/models"
	"golang.org/x/sync/errgroup"
)

const recentProducts = 5

type dashboardPage struct {
	ProductCount   int64
	CategoryCount  int
	TechniqueCount int
	Recent         []models.Product
}

// HandleAdmin loads the dashboard totals concurrently.
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	var page dashboardPage
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		recent, total, err := h.products.GetFilteredProducts(ctx, 0, recentProducts, models.ProductFilters{})
		page.Recent, page.ProductCount = recent, total
		return err
	})
	g.Go(func() error {
		categories, err := h.categories.GetAllCategories(ctx)
		page.CategoryCount = len(categories)
		return err
	})
	g.Go(func() error {
		techniques, err := h.techniques.GetAllTechniques(ctx)
		page.TechniqueCount = len(techniques)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, "admin_dashboard.gohtml", "Dashboard", "admin", page)
}

func (h *Handler) HandleAdminProducts(w http.ResponseWriter, r *http.Request) {
	page, limit := api.ParsePage(r)
	q := r.URL.Query()
	filters := models.ProductFilters{Search: q.Get("search"), Category: q.Get("category")}
	data := catalogPage{Filters: filters}

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
	h.render(w, "admin_products.gohtml", "Productos", "admin", data)
}

func (h *Handler) HandleAdminProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetByID(r.Context(), r.PathValue("id"))
	if errors.Is(err, models.ErrProductNotFound) {
		http.Error(w, "Producto no encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, "admin_product.gohtml", product.Name, "admin", product)
}

type productFormPage struct {
	Product    *models.Product
	Categories []models.Category
	Techniques []models.PrintingTechnique
}

func (h *Handler) HandleAdminProductNew(w http.ResponseWriter, r *http.Request) {
	h.renderProductForm(w, r, "")
}

func (h *Handler) HandleAdminProductEdit(w http.ResponseWriter, r *http.Request) {
	h.renderProductForm(w, r, r.PathValue("id"))
}

func (h *Handler) renderProductForm(w http.ResponseWriter, r *http.Request, id string) {
	var data productFormPage
	g, ctx := errgroup.WithContext(r.Context())
	if id != "" {
		g.Go(func() error {
			product, err := h.products.GetByID(ctx, id)
			data.Product = product
			return err
		})
	}
	g.Go(func() error {
		categories, err := h.categories.GetAllCategories(ctx)
		data.Categories = categories
		return err
	})
	g.Go(func() error {
		techniques, err := h.techniques.GetAllTechniques(ctx)
		data.Techniques = techniques
		return err
	})
	err := g.Wait()
	if errors.Is(err, models.ErrProductNotFound) {
		http.Error(w, "Producto no encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		h.fail(w, err)
		return
	}

	title := "Nuevo Producto"
	if data.Product != nil {
		title = "Editar " + data.Product.Name
	}
	h.render(w, "admin_product_form.gohtml", title, "admin", data)
}

type settingsPage struct {
	Categories []models.Category
	Techniques []models.PrintingTechnique
}

func (h *Handler) HandleAdminSettings(w http.ResponseWriter, r *http.Request) {
	var data settingsPage
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		categories, err := h.categories.GetAllCategories(ctx)
		data.Categories = categories
		return err
	})
	g.Go(func() error {
		techniques, err := h.techniques.GetAllTechniques(ctx)
		data.Techniques = techniques
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, "admin_settings.gohtml", "Configuración", "admin", data)
}
