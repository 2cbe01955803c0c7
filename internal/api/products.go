package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fracki1010/edu-cart-app/internal/domain"
)

// ProductFilter narrows and orders a catalog listing. Zero values are
// omitted from the query entirely.
type ProductFilter struct {
	Categories []string
	PriceMin   float64
	PriceMax   float64
	SortBy     string // "price", "name", "created_at"
	Order      string // "asc", "desc"
}

func (f ProductFilter) query() url.Values {
	params := url.Values{}
	for _, cat := range f.Categories {
		params.Add("categories", cat)
	}
	if f.PriceMin > 0 {
		params.Set("price_min", strconv.FormatFloat(f.PriceMin, 'f', -1, 64))
	}
	if f.PriceMax > 0 {
		params.Set("price_max", strconv.FormatFloat(f.PriceMax, 'f', -1, 64))
	}
	if f.SortBy != "" {
		params.Set("sort_by", f.SortBy)
		params.Set("order", f.Order)
	}
	return params
}

func (c *Client) GetProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	var wires []productWire
	if err := c.do(ctx, http.MethodGet, "/products", filter.query(), nil, &wires); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(wires))
	for _, w := range wires {
		products = append(products, toProduct(w))
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var w productWire
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, &w); err != nil {
		return domain.Product{}, err
	}
	return toProduct(w), nil
}

// ProductPayload is the admin create/update body. Pointer fields are
// omitted when nil so partial updates only touch what was set.
type ProductPayload struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	CategoryID  *int64   `json:"category_id,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Stock       *int     `json:"stock_current,omitempty"`
	StockMin    *int     `json:"stock_min,omitempty"`
	SKU         *string  `json:"sku,omitempty"`
}

func (c *Client) CreateProduct(ctx context.Context, payload ProductPayload) (domain.Product, error) {
	var w productWire
	if err := c.do(ctx, http.MethodPost, "/products", nil, payload, &w); err != nil {
		return domain.Product{}, err
	}
	return toProduct(w), nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, payload ProductPayload) (domain.Product, error) {
	var w productWire
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/products/%d", id), nil, payload, &w); err != nil {
		return domain.Product{}, err
	}
	return toProduct(w), nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil, nil)
}

func (c *Client) GetCategories(ctx context.Context) ([]domain.Category, error) {
	var wires []categoryWire
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &wires); err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(wires))
	for _, w := range wires {
		categories = append(categories, domain.Category{ID: w.ID, Name: w.Name})
	}
	return categories, nil
}
