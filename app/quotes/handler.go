package quotes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/agencia1/merch-catalog/app/api"
	"github.com/agencia1/merch-catalog/app/catalog"
	"github.com/agencia1/merch-catalog/models"
	"github.com/shopspring/decimal"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Product struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Code  string   `json:"code"`
	Price *float64 `json:"price"`
}

type Item struct {
	ID         string   `json:"id"`
	QuoteID    string   `json:"quoteId"`
	ProductID  *string  `json:"productId"`
	Product    *Product `json:"product"`
	Quantity   int      `json:"quantity"`
	UnitPrice  float64  `json:"unitPrice"`
	TotalPrice float64  `json:"totalPrice"`
	Notes      *string  `json:"notes"`
}

type Quote struct {
	ID          string    `json:"id"`
	ClientName  string    `json:"clientName"`
	ClientEmail string    `json:"clientEmail"`
	ClientPhone *string   `json:"clientPhone"`
	Company     *string   `json:"company"`
	TotalAmount float64   `json:"totalAmount"`
	Notes       *string   `json:"notes"`
	Status      string    `json:"status"`
	UserID      *string   `json:"userId"`
	User        *User     `json:"user"`
	Items       []Item    `json:"items"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Response struct {
	Quotes     []Quote        `json:"quotes"`
	Pagination api.Pagination `json:"pagination"`
}

type QuoteProvider interface {
	GetFilteredQuotes(ctx context.Context, offset, limit int, filters models.QuoteFilters) ([]models.Quote, int64, error)
	GetQuote(ctx context.Context, id string) (*models.Quote, error)
	CreateQuote(ctx context.Context, quote *models.Quote) error
}

type QuoteHandler struct {
	repo   QuoteProvider
	logger *slog.Logger
}

func NewQuoteHandler(r QuoteProvider) *QuoteHandler {
	return &QuoteHandler{repo: r, logger: slog.Default()}
}

func toQuote(q *models.Quote) Quote {
	quote := Quote{
		ID:          q.ID,
		ClientName:  q.ClientName,
		ClientEmail: q.ClientEmail,
		ClientPhone: q.ClientPhone,
		Company:     q.Company,
		TotalAmount: q.TotalAmount.InexactFloat64(),
		Notes:       q.Notes,
		Status:      q.Status,
		UserID:      q.UserID,
		Items:       make([]Item, len(q.Items)),
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
	if q.User != nil {
		quote.User = &User{ID: q.User.ID, Name: q.User.Name, Email: q.User.Email}
	}
	for i, item := range q.Items {
		quote.Items[i] = Item{
			ID:         item.ID,
			QuoteID:    item.QuoteID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.InexactFloat64(),
			TotalPrice: item.TotalPrice.InexactFloat64(),
			Notes:      item.Notes,
		}
		if p := item.Product; p != nil {
			quote.Items[i].Product = &Product{
				ID:    p.ID,
				Name:  p.Name,
				Code:  p.Code,
				Price: catalog.PriceValue(p.Price),
			}
		}
	}
	return quote
}

func (h *QuoteHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	page, limit := api.ParsePage(r)
	filters := models.QuoteFilters{Status: strings.TrimSpace(r.URL.Query().Get("status"))}

	res, total, err := h.repo.GetFilteredQuotes(r.Context(), api.NewPagination(page, limit, 0).Offset(), limit, filters)
	if err != nil {
		api.InternalError(w, h.logger, "Error fetching quotes", err)
		return
	}

	quotes := make([]Quote, len(res))
	for i := range res {
		quotes[i] = toQuote(&res[i])
	}
	api.WriteJSON(w, http.StatusOK, Response{
		Quotes:     quotes,
		Pagination: api.NewPagination(page, limit, total),
	})
}

func (h *QuoteHandler) HandleGetQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.repo.GetQuote(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, models.ErrQuoteNotFound) {
			api.WriteError(w, http.StatusNotFound, "Quote not found")
			return
		}
		api.InternalError(w, h.logger, "Error fetching quote", err)
		return
	}
	api.WriteJSON(w, http.StatusOK, toQuote(quote))
}

type itemInput struct {
	ProductID  string     `json:"productId"`
	Quantity   api.Number `json:"quantity"`
	UnitPrice  api.Number `json:"unitPrice"`
	TotalPrice api.Number `json:"totalPrice"`
	Notes      *string    `json:"notes"`
}

type createInput struct {
	ClientName  string      `json:"clientName"`
	ClientEmail string      `json:"clientEmail"`
	ClientPhone *string     `json:"clientPhone"`
	Company     *string     `json:"company"`
	Notes       *string     `json:"notes"`
	Items       []itemInput `json:"items"`
}

func (in createInput) valid() bool {
	if strings.TrimSpace(in.ClientName) == "" || strings.TrimSpace(in.ClientEmail) == "" || len(in.Items) == 0 {
		return false
	}
	for _, item := range in.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return false
		}
	}
	return true
}

func (in createInput) quote() *models.Quote {
	quote := &models.Quote{
		ClientName:  strings.TrimSpace(in.ClientName),
		ClientEmail: strings.TrimSpace(in.ClientEmail),
		ClientPhone: in.ClientPhone,
		Company:     in.Company,
		Notes:       in.Notes,
		Status:      models.DefaultQuoteStatus,
		Items:       make([]models.QuoteItem, len(in.Items)),
	}
	for i, item := range in.Items {
		productID := strings.TrimSpace(item.ProductID)
		quote.Items[i] = models.QuoteItem{
			ProductID:  &productID,
			UnitPrice:  orZero(item.UnitPrice),
			TotalPrice: orZero(item.TotalPrice),
			Notes:      item.Notes,
		}
		if qty := item.Quantity.Int(); qty != nil {
			quote.Items[i].Quantity = *qty
		}
	}
	return quote
}

func orZero(n api.Number) decimal.Decimal {
	if d := n.Decimal(); d.Valid {
		return d.Decimal
	}
	return decimal.Zero
}

func (h *QuoteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input createInput
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if !input.valid() {
		api.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	quote := input.quote()
	if err := h.repo.CreateQuote(r.Context(), quote); err != nil {
		if errors.Is(err, models.ErrUnknownProduct) {
			api.WriteError(w, http.StatusBadRequest, "Product not found")
			return
		}
		api.InternalError(w, h.logger, "Error creating quote", err)
		return
	}

	h.logger.Info("quote created", "id", quote.ID, "items", len(quote.Items), "total", quote.TotalAmount.StringFixed(2))
	api.WriteJSON(w, http.StatusCreated, toQuote(quote))
}
