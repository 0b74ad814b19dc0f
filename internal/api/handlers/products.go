package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mhodgson/phone-catalog-tracker/internal/api/middleware"
	"github.com/mhodgson/phone-catalog-tracker/internal/store"
	domain "github.com/mhodgson/phone-catalog-tracker/pkg/types"
)

// ProductsHandler handles product query endpoints.
type ProductsHandler struct {
	store store.Store
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(s store.Store) *ProductsHandler {
	return &ProductsHandler{store: s}
}

// ListProductsResponse is the response for listing products.
type ListProductsResponse struct {
	Products []domain.PhoneProduct `json:"products"`
	Total    int                   `json:"total"`
	Limit    int                   `json:"limit"`
	Offset   int                   `json:"offset"`
}

// ListProducts returns products with optional filters for model, version,
// colour, availability, source, and pagination.
func (h *ProductsHandler) ListProducts(c echo.Context) error {
	q := &store.ProductQuery{
		OrderBy: c.QueryParam("order_by"),
	}

	if v := c.QueryParam("model"); v != "" {
		q.Model = &v
	}

	if v := c.QueryParam("version"); v != "" {
		q.Version = &v
	}

	if v := c.QueryParam("colour"); v != "" {
		q.Colour = &v
	}

	if v := c.QueryParam("source"); v != "" {
		q.Source = &v
	}

	if v := c.QueryParam("available"); v != "" {
		available, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "available must be a boolean")
		}
		q.Available = &available
	}

	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		q.Limit = limit
	}

	if v := c.QueryParam("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "offset must be a non-negative integer")
		}
		q.Offset = offset
	}

	products, total, err := h.store.ListProducts(c.Request().Context(), q)
	if err != nil {
		middleware.Logger(c).Error("product query failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "product query failed")
	}

	if products == nil {
		products = []domain.PhoneProduct{}
	}

	return c.JSON(http.StatusOK, ListProductsResponse{
		Products: products,
		Total:    total,
		Limit:    q.EffectiveLimit(),
		Offset:   q.Offset,
	})
}

// GetProduct returns a single product by its identity key.
func (h *ProductsHandler) GetProduct(c echo.Context) error {
	key := c.Param("key")

	product, err := h.store.GetProduct(c.Request().Context(), key)
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		middleware.Logger(c).Error("product lookup failed", "identity_key", key, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "product lookup failed")
	}

	return c.JSON(http.StatusOK, product)
}

// Register wires the product endpoints onto the API group.
func (h *ProductsHandler) Register(g *echo.Group) {
	g.GET("/products", h.ListProducts)
	g.GET("/products/:key", h.GetProduct)
}
