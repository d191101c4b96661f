package platform

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ProductFilter narrows a product listing.
type ProductFilter struct {
	Page     int
	Limit    int
	Category string
	Search   string
}

func (f ProductFilter) query() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

// ListProducts fetches a page of products.
func (c *Client) ListProducts(ctx context.Context, filter ProductFilter) (*ProductPage, error) {
	const op = "products.list"

	env, err := c.Get(ctx, op, "/api/products", filter.query())
	if err != nil {
		return nil, err
	}
	page, err := UnmarshalData[ProductPage](env)
	if err != nil {
		return nil, newError(op, 0, nil, fmt.Errorf("parse products: %w", err))
	}
	return &page, nil
}

// productData is the data payload of single-product responses.
type productData struct {
	Product Product `json:"product"`
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	const op = "products.get"

	env, err := c.Get(ctx, op, "/api/products/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	data, err := UnmarshalData[productData](env)
	if err != nil {
		return nil, newError(op, 0, nil, fmt.Errorf("parse product: %w", err))
	}
	return &data.Product, nil
}

// CreateProduct adds a new product to the catalog.
func (c *Client) CreateProduct(ctx context.Context, p Product) (*Product, error) {
	const op = "products.create"

	env, err := c.Post(ctx, op, "/api/products", p)
	if err != nil {
		return nil, err
	}
	data, err := UnmarshalData[productData](env)
	if err != nil {
		return nil, newError(op, 0, nil, fmt.Errorf("parse product: %w", err))
	}
	return &data.Product, nil
}

// UpdateProduct replaces mutable fields of an existing product.
func (c *Client) UpdateProduct(ctx context.Context, id string, p Product) (*Product, error) {
	const op = "products.update"

	env, err := c.Put(ctx, op, "/api/products/"+url.PathEscape(id), p)
	if err != nil {
		return nil, err
	}
	data, err := UnmarshalData[productData](env)
	if err != nil {
		return nil, newError(op, 0, nil, fmt.Errorf("parse product: %w", err))
	}
	return &data.Product, nil
}

// DeleteProduct removes a product from the catalog.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.Delete(ctx, "products.delete", "/api/products/"+url.PathEscape(id))
	return err
}
