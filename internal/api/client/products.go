package client

import (
	"context"
	"net/url"
	"strconv"

	domain "github.com/mhodgson/phone-catalog-tracker/pkg/types"
)

// ProductsResponse wraps a paginated products response.
type ProductsResponse struct {
	Products []domain.PhoneProduct `json:"products"`
	Total    int                   `json:"total"`
}

// ListProductsParams defines query parameters for product queries.
type ListProductsParams struct {
	Model     string
	Version   string
	Colour    string
	Available *bool
	Source    string
	Limit     int
	Offset    int
	OrderBy   string
}

// ListProducts returns products matching the given parameters.
func (c *Client) ListProducts(
	ctx context.Context,
	params *ListProductsParams,
) (*ProductsResponse, error) {
	q := url.Values{}
	if params.Model != "" {
		q.Set("model", params.Model)
	}
	if params.Version != "" {
		q.Set("version", params.Version)
	}
	if params.Colour != "" {
		q.Set("colour", params.Colour)
	}
	if params.Available != nil {
		q.Set("available", strconv.FormatBool(*params.Available))
	}
	if params.Source != "" {
		q.Set("source", params.Source)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.OrderBy != "" {
		q.Set("order_by", params.OrderBy)
	}

	path := "/api/v1/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp := &ProductsResponse{}
	if err := c.get(ctx, path, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetProduct returns a single product by its identity key.
func (c *Client) GetProduct(ctx context.Context, identityKey string) (*domain.PhoneProduct, error) {
	p := &domain.PhoneProduct{}
	if err := c.get(ctx, "/api/v1/products/"+url.PathEscape(identityKey), p); err != nil {
		return nil, err
	}
	return p, nil
}
