// Package server wires the resource handlers and pages into one http.Handler.
package server

import (
	"log/slog"
	"net/http"

	"github.com/agencia1/merch-catalog/app/api"
	"github.com/agencia1/merch-catalog/app/catalog"
	"github.com/agencia1/merch-catalog/app/categories"
	"github.com/agencia1/merch-catalog/app/notify"
	"github.com/agencia1/merch-catalog/app/quotes"
	"github.com/agencia1/merch-catalog/app/techniques"
	"github.com/agencia1/merch-catalog/app/web"
	"github.com/agencia1/merch-catalog/internal/database"
	"github.com/agencia1/merch-catalog/models"
	"gorm.io/gorm"
)

type Options struct {
	SalesEmail string
	Mailer     notify.Mailer
	Logger     *slog.Logger
}

// New builds the application handler on top of db.
func New(db *gorm.DB, opts Options) (http.Handler, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mailer := opts.Mailer
	if mailer == nil {
		mailer = notify.NewLogMailer(logger)
	}

	categoriesRepo := models.NewCategoriesRepository(db)
	techniquesRepo := models.NewTechniquesRepository(db)
	productsRepo := models.NewProductsRepository(db)
	quotesRepo := models.NewQuotesRepository(db)

	pages, err := web.NewHandler(productsRepo, categoriesRepo, techniquesRepo, opts.SalesEmail)
	if err != nil {
		return nil, err
	}
	categoryHandler := categories.NewCategoryHandler(categoriesRepo)
	techniqueHandler := techniques.NewTechniqueHandler(techniquesRepo)
	catalogHandler := catalog.NewCatalogHandler(productsRepo)
	quoteHandler := quotes.NewQuoteHandler(quotesRepo)
	emailHandler := notify.NewEmailHandler(mailer, opts.SalesEmail)

	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /{$}", pages.HandleHome)
	mux.HandleFunc("GET /products", pages.HandleCatalog)
	mux.HandleFunc("GET /tecnicas", pages.HandleTechniques)
	mux.HandleFunc("GET /admin", pages.HandleAdmin)
	mux.HandleFunc("GET /admin/products", pages.HandleAdminProducts)
	mux.HandleFunc("GET /admin/products/new", pages.HandleAdminProductNew)
	mux.HandleFunc("GET /admin/products/{id}", pages.HandleAdminProduct)
	mux.HandleFunc("GET /admin/products/{id}/edit", pages.HandleAdminProductEdit)
	mux.HandleFunc("GET /admin/settings", pages.HandleAdminSettings)
	mux.Handle("GET /static/", web.Static())

	// API
	mux.HandleFunc("GET /api/categories", categoryHandler.HandleGetAll)
	mux.HandleFunc("POST /api/categories", categoryHandler.HandleCreate)
	mux.HandleFunc("GET /api/categories/{id}", categoryHandler.HandleGet)
	mux.HandleFunc("PUT /api/categories/{id}", categoryHandler.HandleUpdate)
	mux.HandleFunc("DELETE /api/categories/{id}", categoryHandler.HandleDelete)

	mux.HandleFunc("GET /api/printing-techniques", techniqueHandler.HandleGetAll)
	mux.HandleFunc("POST /api/printing-techniques", techniqueHandler.HandleCreate)
	mux.HandleFunc("GET /api/printing-techniques/{id}", techniqueHandler.HandleGet)
	mux.HandleFunc("PUT /api/printing-techniques/{id}", techniqueHandler.HandleUpdate)
	mux.HandleFunc("DELETE /api/printing-techniques/{id}", techniqueHandler.HandleDelete)

	mux.HandleFunc("GET /api/products", catalogHandler.HandleGet)
	mux.HandleFunc("POST /api/products", catalogHandler.HandleCreate)
	mux.HandleFunc("GET /api/products/{id}", catalogHandler.HandleGetProduct)
	mux.HandleFunc("PUT /api/products/{id}", catalogHandler.HandleUpdate)
	mux.HandleFunc("DELETE /api/products/{id}", catalogHandler.HandleDelete)

	mux.HandleFunc("GET /api/quotes", quoteHandler.HandleGet)
	mux.HandleFunc("POST /api/quotes", quoteHandler.HandleCreate)
	mux.HandleFunc("GET /api/quotes/{id}", quoteHandler.HandleGetQuote)

	mux.HandleFunc("POST /api/send-email", emailHandler.HandleSend)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := database.Ping(r.Context(), db); err != nil {
			logger.Error("health check failed", "error", err)
			api.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return Recover(logger, LogRequests(logger, mux)), nil
}
