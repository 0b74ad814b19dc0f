package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhodgson/phone-catalog-tracker/internal/api/handlers"
	"github.com/mhodgson/phone-catalog-tracker/internal/store"
	domain "github.com/mhodgson/phone-catalog-tracker/pkg/types"
)

func newProductsServer(s *stubStore) *echo.Echo {
	e := echo.New()
	handlers.NewProductsHandler(s).Register(e.Group("/api/v1"))
	return e
}

func TestListProducts(t *testing.T) {
	t.Parallel()

	s := &stubStore{
		products: []domain.PhoneProduct{
			{
				Title:       "iPhone 12 Pro Max 128GB",
				Model:       ptr("iphone"),
				Version:     ptr("12 Pro Max"),
				CapacityMB:  ptr(131072),
				Colour:      "Pacific Blue",
				Price:       "999.99",
				IsAvailable: true,
				Source:      "page1",
			},
		},
		total: 1,
	}

	e := newProductsServer(s)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?model=iphone&available=true&limit=10", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, s.gotQuery)
	require.NotNil(t, s.gotQuery.Model)
	assert.Equal(t, "iphone", *s.gotQuery.Model)
	require.NotNil(t, s.gotQuery.Available)
	assert.True(t, *s.gotQuery.Available)
	assert.Equal(t, 10, s.gotQuery.Limit)

	assert.Contains(t, rec.Body.String(), `"total":1`)
	assert.Contains(t, rec.Body.String(), `"12 Pro Max"`)
}

// Unresolved fields serialize as explicit nulls, never omitted.
func TestListProductsExplicitNulls(t *testing.T) {
	t.Parallel()

	s := &stubStore{
		products: []domain.PhoneProduct{{Title: "Mystery Phone", Colour: "black"}},
		total:    1,
	}

	e := newProductsServer(s)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"model":null`)
	assert.Contains(t, body, `"version":null`)
	assert.Contains(t, body, `"capacity_mb":null`)
	assert.Contains(t, body, `"shipping_date":null`)
}

// Omitting limit applies the store default, and the response reports that
// default rather than the zero the client never sent.
func TestListProductsEchoesEffectiveLimit(t *testing.T) {
	t.Parallel()

	s := &stubStore{total: 120}

	e := newProductsServer(s)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"limit":50`)

	// An explicit in-range limit is echoed unchanged.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/products?limit=10", http.NoBody)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"limit":10`)
}

func TestListProductsEmptyResult(t *testing.T) {
	t.Parallel()

	e := newProductsServer(&stubStore{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"products":[]`)
}

func TestListProductsBadParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
	}{
		{"non-boolean available", "?available=maybe"},
		{"non-numeric limit", "?limit=ten"},
		{"zero limit", "?limit=0"},
		{"negative offset", "?offset=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newProductsServer(&stubStore{})
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products"+tt.query, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListProductsStoreError(t *testing.T) {
	t.Parallel()

	e := newProductsServer(&stubStore{listErr: errors.New("db down")})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetProduct(t *testing.T) {
	t.Parallel()

	s := &stubStore{product: &domain.PhoneProduct{
		Title:  "Nokia 3310 100MB",
		Model:  ptr("nokia"),
		Colour: "orange",
	}}

	e := newProductsServer(s)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/nokia:3310:orange:102400", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nokia:3310:orange:102400", s.gotKey)
	assert.Contains(t, rec.Body.String(), "Nokia 3310 100MB")
}

func TestGetProductNotFound(t *testing.T) {
	t.Parallel()

	e := newProductsServer(&stubStore{getErr: store.ErrNotFound})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/missing", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
