package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agencia1/merch-catalog/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock Repo ---

type MockProductRepo struct {
	SourceProducts []models.Product
	Err            error

	// Fields to capture call arguments
	lastCalledOffset  int
	lastCalledLimit   int
	lastCalledFilters models.ProductFilters
	lastCalledID      string
	lastCreated       *models.Product
	lastTechniqueIDs  []string
	lastUpdate        models.ProductUpdate
}

func (m *MockProductRepo) GetFilteredProducts(ctx context.Context, offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error) {
	m.lastCalledOffset = offset
	m.lastCalledLimit = limit
	m.lastCalledFilters = filters

	if m.Err != nil {
		return nil, 0, m.Err
	}

	// Simulate filtering
	var filteredProducts []models.Product
	for _, p := range m.SourceProducts {
		match := true
		if filters.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filters.Search)) {
			match = false
		}
		if filters.Category != "" && filters.Category != models.AllCategories &&
			!strings.Contains(strings.ToLower(p.Category.Name), strings.ToLower(filters.Category)) {
			match = false
		}
		if filters.Featured != nil && p.Featured != *filters.Featured {
			match = false
		}
		if match {
			filteredProducts = append(filteredProducts, p)
		}
	}

	total := int64(len(filteredProducts))

	// Simulate pagination
	start := offset
	if start > len(filteredProducts) {
		start = len(filteredProducts)
	}
	end := offset + limit
	if end > len(filteredProducts) {
		end = len(filteredProducts)
	}

	return filteredProducts[start:end], total, nil
}

func (m *MockProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	m.lastCalledID = id
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.SourceProducts {
		if m.SourceProducts[i].ID == id {
			return &m.SourceProducts[i], nil
		}
	}
	return nil, models.ErrProductNotFound
}

func (m *MockProductRepo) CreateProduct(ctx context.Context, product *models.Product, techniqueIDs []string) error {
	m.lastCreated = product
	m.lastTechniqueIDs = techniqueIDs
	if m.Err != nil {
		return m.Err
	}
	product.ID = "new-product"
	return nil
}

func (m *MockProductRepo) UpdateProduct(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	m.lastCalledID = id
	m.lastUpdate = update
	if m.Err != nil {
		return nil, m.Err
	}
	return &models.Product{ID: id, Name: update.Name.Value}, nil
}

func (m *MockProductRepo) DeleteProduct(ctx context.Context, id string) error {
	m.lastCalledID = id
	return m.Err
}

// --- Test Helpers ---

func createTestProducts() []models.Product {
	hogar := models.Category{ID: "cat-hogar", Code: "HOGAR", Name: "Hogar"}
	ropa := models.Category{ID: "cat-ropa", Code: "ROPA", Name: "Ropa Corporativa"}

	return []models.Product{
		{ID: "p1", Code: "TER-007", Name: "Termo Acero", Price: decimal.NewNullDecimal(decimal.NewFromInt(6800)), CategoryID: hogar.ID, Category: hogar, Featured: true},
		{ID: "p2", Code: "TAZ-001", Name: "Taza Cerámica", Price: decimal.NewNullDecimal(decimal.NewFromFloat(3500.5)), CategoryID: hogar.ID, Category: hogar},
		{ID: "p3", Code: "POL-010", Name: "Polera Algodón", CategoryID: ropa.ID, Category: ropa, Featured: true, Colors: []string{"Rojo", "Azul"}},
		{ID: "p4", Code: "GOR-002", Name: "Gorro Bordado", CategoryID: ropa.ID, Category: ropa},
	}
}

// --- Tests: GET /api/products ---

func TestHandleGet(t *testing.T) {
	testCases := []struct {
		name               string
		url                string
		mockRepoSetup      func() *MockProductRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder, repo *MockProductRepo)
	}{
		{
			name: "Success with default pagination",
			url:  "/api/products",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: createTestProducts()}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder, repo *MockProductRepo) {
				var resp Response
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Len(t, resp.Products, 4)
				assert.Equal(t, 1, resp.Pagination.Page)
				assert.Equal(t, 10, resp.Pagination.Limit)
				assert.Equal(t, int64(4), resp.Pagination.Total)
				assert.Equal(t, 1, resp.Pagination.Pages)
				assert.Equal(t, 0, repo.lastCalledOffset)
				assert.Equal(t, 10, repo.lastCalledLimit)
			},
		},
		{
			name: "Second page",
			url:  "/api/products?page=2&limit=3",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: createTestProducts()}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder, repo *MockProductRepo) {
				var resp Response
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Len(t, resp.Products, 1)
				assert.Equal(t, "p4", resp.Products[0].ID)
				assert.Equal(t, 2, resp.Pagination.Pages)
				assert.Equal(t, 3, repo.lastCalledOffset)
			},
		},
		{
			name: "Featured filter",
			url:  "/api/products?featured=true&limit=8",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: createTestProducts()}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder, repo *MockProductRepo) {
				var resp Response
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Len(t, resp.Products, 2)
				for _, p := range resp.Products {
					assert.True(t, p.Featured)
				}
				require.NotNil(t, repo.lastCalledFilters.Featured)
				assert.True(t, *repo.lastCalledFilters.Featured)
			},
		},
		{
			name: "Search and category are forwarded",
			url:  "/api/products?search=Termo&category=Hogar",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: createTestProducts()}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder, repo *MockProductRepo) {
				var resp Response
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				require.Len(t, resp.Products, 1)
				assert.Equal(t, "TER-007", resp.Products[0].Code)
				assert.Equal(t, 6800.0, *resp.Products[0].Price)
				assert.Equal(t, "Hogar", resp.Products[0].Category.Name)
				assert.Equal(t, "Termo", repo.lastCalledFilters.Search)
				assert.Equal(t, "Hogar", repo.lastCalledFilters.Category)
			},
		},
		{
			name: "Malformed featured is ignored",
			url:  "/api/products?featured=maybe",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: createTestProducts()}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder, repo *MockProductRepo) {
				assert.Nil(t, repo.lastCalledFilters.Featured)
			},
		},
		{
			name: "Array fields are always lists",
			url:  "/api/products?search=Gorro",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: createTestProducts()}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder, repo *MockProductRepo) {
				assert.Contains(t, rec.Body.String(), `"images":[]`)
				assert.Contains(t, rec.Body.String(), `"colors":[]`)
				assert.Contains(t, rec.Body.String(), `"price":null`)
			},
		},
		{
			name: "Limit is clamped",
			url:  "/api/products?limit=500",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder, repo *MockProductRepo) {
				assert.Equal(t, 100, repo.lastCalledLimit)
				assert.Contains(t, rec.Body.String(), `"products":[]`)
			},
		},
		{
			name: "Repository error",
			url:  "/api/products",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Err: errors.New("database is down")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder, repo *MockProductRepo) {
				assert.JSONEq(t, `{"error":"Error fetching products"}`, rec.Body.String())
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := tc.mockRepoSetup()
			handler := NewCatalogHandler(repo)
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			rec := httptest.NewRecorder()

			handler.HandleGet(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			tc.checkResponse(t, rec, repo)
		})
	}
}
