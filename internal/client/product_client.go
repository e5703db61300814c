package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"catalog-manager/internal/domain"
	"catalog-manager/internal/service"
)

type productClient struct {
	*Client
}

// NewProductClient returns a ProductService backed by the REST API
func NewProductClient(c *Client) service.ProductService {
	return &productClient{Client: c}
}

func (c *productClient) ListAllProducts(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *productClient) GetProductByID(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *productClient) ListProductViews(ctx context.Context) ([]domain.ProductView, error) {
	views := []domain.ProductView{}
	if err := c.do(ctx, http.MethodGet, "/products/info", nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (c *productClient) ListProductViewsByCategory(ctx context.Context, categoryID int) ([]domain.ProductView, error) {
	views := []domain.ProductView{}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/category/%d", categoryID), nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

// ListProductViewsByFilter leaves unset dates out of the query so the
// server applies its open bounds
func (c *productClient) ListProductViewsByFilter(ctx context.Context, filter domain.Filter) ([]domain.ProductView, error) {
	views := []domain.ProductView{}
	if err := c.do(ctx, http.MethodGet, "/products/filter"+filterQuery(filter), nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func filterQuery(filter domain.Filter) string {
	query := url.Values{}
	if !filter.DateBegin.IsZero() {
		query.Set("from", filter.DateBegin.String())
	}
	if !filter.DateEnd.IsZero() {
		query.Set("to", filter.DateEnd.String())
	}
	if filter.CategoryID != nil {
		query.Set("id", strconv.Itoa(*filter.CategoryID))
	}
	if len(query) == 0 {
		return ""
	}
	return "?" + query.Encode()
}

func (c *productClient) AddProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	var created domain.Product
	if err := c.do(ctx, http.MethodPost, "/products", product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *productClient) UpdateProduct(ctx context.Context, product domain.Product) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", product.ID), product, nil)
}

func (c *productClient) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}
