package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agencia1/merch-catalog/app/notify"
	"github.com/agencia1/merch-catalog/internal/database"
	"github.com/agencia1/merch-catalog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	sent []notify.Message
}

func (m *recordingMailer) Send(_ context.Context, msg notify.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

func setupServer(t *testing.T) (*httptest.Server, *recordingMailer) {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "catalog.db"), database.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	require.NoError(t, models.AutoMigrate(db))

	mailer := &recordingMailer{}
	handler, err := New(db, Options{
		SalesEmail: "ventas@example.com",
		Mailer:     mailer,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, mailer
}

func call(t *testing.T, srv *httptest.Server, method, path string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

func TestCatalogFlow(t *testing.T) {
	srv, mailer := setupServer(t)

	var hogar struct {
		ID string `json:"id"`
	}
	status := call(t, srv, http.MethodPost, "/api/categories", map[string]any{"name": "Hogar", "code": "HOG"}, &hogar)
	require.Equal(t, http.StatusCreated, status)

	var laser struct {
		ID string `json:"id"`
	}
	status = call(t, srv, http.MethodPost, "/api/printing-techniques", map[string]any{"name": "Grabado Láser", "icon": "⚡"}, &laser)
	require.Equal(t, http.StatusCreated, status)

	var termo struct {
		ID                 string   `json:"id"`
		Price              *float64 `json:"price"`
		Colors             []string `json:"colors"`
		PrintingTechniques []struct {
			Name string `json:"name"`
		} `json:"printingTechniques"`
	}
	status = call(t, srv, http.MethodPost, "/api/products", map[string]any{
		"name":                 "Termo",
		"code":                 "TER-001",
		"price":                "15990",
		"featured":             true,
		"colors":               []string{"Negro", "Blanco"},
		"categoryId":           hogar.ID,
		"printingTechniqueIds": []string{laser.ID},
	}, &termo)
	require.Equal(t, http.StatusCreated, status)
	require.NotNil(t, termo.Price)
	assert.Equal(t, 15990.0, *termo.Price)
	assert.Equal(t, []string{"Negro", "Blanco"}, termo.Colors)
	require.Len(t, termo.PrintingTechniques, 1)

	t.Run("duplicate product code", func(t *testing.T) {
		var body map[string]string
		status := call(t, srv, http.MethodPost, "/api/products", map[string]any{
			"name": "Otro", "code": "TER-001", "categoryId": hogar.ID,
		}, &body)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Product code already exists", body["error"])
	})

	t.Run("padded code on update still conflicts", func(t *testing.T) {
		var ropa struct {
			ID string `json:"id"`
		}
		require.Equal(t, http.StatusCreated, call(t, srv, http.MethodPost, "/api/categories", map[string]any{"name": "Ropa", "code": "ROP"}, &ropa))

		var body map[string]string
		status := call(t, srv, http.MethodPut, "/api/categories/"+ropa.ID, map[string]any{"code": " HOG "}, &body)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Category code already exists", body["error"])

		require.Equal(t, http.StatusOK, call(t, srv, http.MethodDelete, "/api/categories/"+ropa.ID, nil, &body))
	})

	t.Run("unknown category", func(t *testing.T) {
		var body map[string]string
		status := call(t, srv, http.MethodPost, "/api/products", map[string]any{
			"name": "Otro", "code": "OTR-001", "categoryId": "missing",
		}, &body)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Category not found", body["error"])
	})

	t.Run("category filter", func(t *testing.T) {
		var list struct {
			Products []struct {
				Code string `json:"code"`
			} `json:"products"`
			Pagination struct {
				Total int `json:"total"`
				Pages int `json:"pages"`
			} `json:"pagination"`
		}
		require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/products?category=hog", nil, &list))
		require.Len(t, list.Products, 1)
		assert.Equal(t, "TER-001", list.Products[0].Code)
		assert.Equal(t, 1, list.Pagination.Pages)

		require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/products?category=Ropa", nil, &list))
		assert.Empty(t, list.Products)
		assert.Equal(t, 0, list.Pagination.Total)
	})

	t.Run("category in use cannot be deleted", func(t *testing.T) {
		var body map[string]string
		status := call(t, srv, http.MethodDelete, "/api/categories/"+hogar.ID, nil, &body)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Cannot delete category with associated products", body["error"])
	})

	t.Run("quote keeps item order and totals", func(t *testing.T) {
		var quote struct {
			ID          string  `json:"id"`
			Status      string  `json:"status"`
			TotalAmount float64 `json:"totalAmount"`
			Items       []struct {
				Quantity int `json:"quantity"`
				Product  *struct {
					Code string `json:"code"`
				} `json:"product"`
			} `json:"items"`
		}
		status := call(t, srv, http.MethodPost, "/api/quotes", map[string]any{
			"clientName":  "Ana",
			"clientEmail": "ana@example.com",
			"items": []map[string]any{
				{"productId": termo.ID, "quantity": 10, "unitPrice": 15990, "totalPrice": 159900},
				{"productId": termo.ID, "quantity": "2", "unitPrice": "15990", "totalPrice": "31980"},
			},
		}, &quote)
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "pending", quote.Status)
		assert.Equal(t, 191880.0, quote.TotalAmount)
		require.Len(t, quote.Items, 2)
		assert.Equal(t, 10, quote.Items[0].Quantity)
		assert.Equal(t, 2, quote.Items[1].Quantity)
		require.NotNil(t, quote.Items[0].Product)
		assert.Equal(t, "TER-001", quote.Items[0].Product.Code)

		var fetched struct {
			ID string `json:"id"`
		}
		require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/quotes/"+quote.ID, nil, &fetched))
		assert.Equal(t, quote.ID, fetched.ID)
	})

	t.Run("quote with unknown product", func(t *testing.T) {
		var body map[string]string
		status := call(t, srv, http.MethodPost, "/api/quotes", map[string]any{
			"clientName":  "Ana",
			"clientEmail": "ana@example.com",
			"items":       []map[string]any{{"productId": "missing", "quantity": 1}},
		}, &body)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Product not found", body["error"])
	})

	t.Run("email stub", func(t *testing.T) {
		var body struct {
			Success   bool `json:"success"`
			EmailData struct {
				To      string `json:"to"`
				Subject string `json:"subject"`
			} `json:"emailData"`
		}
		status := call(t, srv, http.MethodPost, "/api/send-email", map[string]any{
			"type":         "quote-product",
			"clientName":   "Ana",
			"clientEmail":  "ana@example.com",
			"productName":  "Termo",
			"productCode":  "TER-001",
			"productPrice": 15990,
			"quantity":     "3",
		}, &body)
		require.Equal(t, http.StatusOK, status)
		assert.True(t, body.Success)
		assert.Equal(t, "ventas@example.com", body.EmailData.To)
		assert.Equal(t, "Solicitud de Cotización - Termo", body.EmailData.Subject)
		require.Len(t, mailer.sent, 1)
		assert.Contains(t, mailer.sent[0].HTMLContent, "$47970.00")
	})

	t.Run("product delete clears quote item references", func(t *testing.T) {
		var body map[string]string
		require.Equal(t, http.StatusOK, call(t, srv, http.MethodDelete, "/api/products/"+termo.ID, nil, &body))
		assert.Equal(t, "Product deleted successfully", body["message"])

		var quotes struct {
			Quotes []struct {
				Items []struct {
					ProductID *string `json:"productId"`
				} `json:"items"`
			} `json:"quotes"`
		}
		require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/quotes", nil, &quotes))
		require.Len(t, quotes.Quotes, 1)
		for _, item := range quotes.Quotes[0].Items {
			assert.Nil(t, item.ProductID)
		}

		require.Equal(t, http.StatusOK, call(t, srv, http.MethodDelete, "/api/categories/"+hogar.ID, nil, &body))
	})
}

func TestPagesAndHealth(t *testing.T) {
	srv, _ := setupServer(t)

	for _, path := range []string{"/", "/products", "/tecnicas", "/admin", "/admin/products", "/admin/products/new", "/admin/settings"} {
		t.Run(path, func(t *testing.T) {
			res, err := http.Get(srv.URL + path)
			require.NoError(t, err)
			defer res.Body.Close()
			assert.Equal(t, http.StatusOK, res.StatusCode)
			assert.True(t, strings.HasPrefix(res.Header.Get("Content-Type"), "text/html"))
		})
	}

	t.Run("unknown page", func(t *testing.T) {
		res, err := http.Get(srv.URL + "/nope")
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("health", func(t *testing.T) {
		var body map[string]string
		require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/health", nil, &body))
		assert.Equal(t, "ok", body["status"])
	})
}

func TestRecover(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	handler := Recover(logger, LogRequests(logger, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, logs.String(), "handler panic")
}

func TestLogRequests(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	handler := LogRequests(logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tea", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "request", entry["msg"])
	assert.Equal(t, "/tea", entry["path"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
}
