package client

import (
	"context"
	"fmt"
	"net/http"

	"catalog-manager/internal/domain"
	"catalog-manager/internal/service"
)

type categoryClient struct {
	*Client
}

// NewCategoryClient returns a CategoryService backed by the REST API
func NewCategoryClient(c *Client) service.CategoryService {
	return &categoryClient{Client: c}
}

func (c *categoryClient) GetCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	var category domain.Category
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categories/%d", id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *categoryClient) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories := []domain.Category{}
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *categoryClient) ListCategoryViews(ctx context.Context) ([]domain.CategoryWithCount, error) {
	views := []domain.CategoryWithCount{}
	if err := c.do(ctx, http.MethodGet, "/categories/info", nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (c *categoryClient) GetCategoryViewByID(ctx context.Context, id int) (*domain.CategoryWithCount, error) {
	var view domain.CategoryWithCount
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categories/info/%d", id), nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *categoryClient) ListSubCategories(ctx context.Context) ([]domain.Category, error) {
	categories := []domain.Category{}
	if err := c.do(ctx, http.MethodGet, "/categories/subs", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *categoryClient) ListSubCategoryViews(ctx context.Context, parentID int) ([]domain.CategoryWithCount, error) {
	views := []domain.CategoryWithCount{}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categories/info/%d/subs", parentID), nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (c *categoryClient) AddCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	var created domain.Category
	if err := c.do(ctx, http.MethodPost, "/categories", category, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *categoryClient) UpdateCategory(ctx context.Context, category domain.Category) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", category.ID), category, nil)
}

func (c *categoryClient) DeleteCategory(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil)
}

func (c *categoryClient) ListPossibleParents(ctx context.Context) ([]domain.Category, error) {
	categories := []domain.Category{}
	if err := c.do(ctx, http.MethodGet, "/categories/possibleparents", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *categoryClient) ListPossibleParentsForID(ctx context.Context, id int) ([]domain.Category, error) {
	categories := []domain.Category{}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categories/possibleparents/%d", id), nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
