package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/KativuCraig/manymor-frontend/internal/catalog/domain"
	"github.com/KativuCraig/manymor-frontend/internal/gateway"
)

type stubSource struct {
	products   []domain.Product
	categories []domain.Category
	err        error
}

func (s *stubSource) Products(context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubSource) Categories(context.Context) ([]domain.Category, error) {
	return s.categories, s.err
}

func (s *stubSource) Product(_ context.Context, id uint) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, product := range s.products {
		if product.ID == id {
			return &product, nil
		}
	}
	return nil, fmt.Errorf("product %d: %w", id, gateway.ErrNotFound)
}

func testSource(count int) *stubSource {
	products := make([]domain.Product, 0, count)
	for i := 1; i <= count; i++ {
		products = append(products, domain.Product{
			ID:            uint(i),
			Name:          fmt.Sprintf("Product %03d", i),
			Price:         decimal.NewFromInt(int64(i * 10)),
			StockQuantity: i % 2,
			CategoryID:    1,
			CategoryName:  "Electronics",
		})
	}
	return &stubSource{
		products:   products,
		categories: []domain.Category{{ID: 1, Name: "Electronics"}},
	}
}

func newRouter(source domain.CatalogSource) *mux.Router {
	router := mux.NewRouter()
	NewCatalogHandler(source).RegisterRoutes(router)
	return router
}

type browseEnvelope struct {
	Success bool           `json:"success"`
	Data    browseResponse `json:"data"`
	Error   string         `json:"error"`
}

func browse(t *testing.T, router *mux.Router, target string) (int, browseEnvelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope browseEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return rec.Code, envelope
}

func TestBrowseCatalogDefaults(t *testing.T) {
	router := newRouter(testSource(30))

	code, envelope := browse(t, router, "/api/catalog")
	require.Equal(t, http.StatusOK, code)
	require.True(t, envelope.Success)
	require.Equal(t, 30, envelope.Data.TotalCount)
	require.Equal(t, 3, envelope.Data.TotalPages)
	require.Equal(t, 1, envelope.Data.Page)
	require.Len(t, envelope.Data.Items, domain.DefaultPageSize)
	require.Empty(t, envelope.Data.ActiveFilters)
	require.Empty(t, envelope.Data.CanonicalQuery)
	require.Len(t, envelope.Data.Categories, 1)
}

func TestBrowseCatalogWithFilters(t *testing.T) {
	router := newRouter(testSource(30))

	code, envelope := browse(t, router, "/api/catalog?in_stock=true&sort=price_desc&page=2")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 15, envelope.Data.TotalCount)
	require.Equal(t, 2, envelope.Data.Page)
	require.Contains(t, envelope.Data.ActiveFilters, "In Stock Only")
	require.Equal(t, "in_stock=true&page=2&sort=price_desc", envelope.Data.CanonicalQuery)
}

func TestBrowseCatalogClampsPage(t *testing.T) {
	router := newRouter(testSource(30))

	code, envelope := browse(t, router, "/api/catalog?page=99")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 1, envelope.Data.Page)
	require.True(t, envelope.Data.PageClamped)
	// The canonical query reflects the clamped page so the client can
	// replace its URL.
	require.Empty(t, envelope.Data.CanonicalQuery)
}

func TestBrowseCatalogSourceFailure(t *testing.T) {
	router := newRouter(&stubSource{err: errors.New("gateway down")})

	code, envelope := browse(t, router, "/api/catalog")
	require.Equal(t, http.StatusBadGateway, code)
	require.False(t, envelope.Success)
	require.NotEmpty(t, envelope.Error)
}

func TestGetProduct(t *testing.T) {
	router := newRouter(testSource(5))

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/catalog/products/3", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var envelope struct {
			Success bool           `json:"success"`
			Data    domain.Product `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
		require.Equal(t, uint(3), envelope.Data.ID)
	})

	t.Run("missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/catalog/products/99", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id does not match the route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/catalog/products/abc", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}
