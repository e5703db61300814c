package service

import (
	"context"
	"time"

	"catalog-manager/internal/domain"
	"catalog-manager/internal/repository"

	"go.uber.org/zap"
)

// ProductService defines the catalog operations on products
type ProductService interface {
	ListAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int) (*domain.Product, error)
	ListProductViews(ctx context.Context) ([]domain.ProductView, error)
	ListProductViewsByCategory(ctx context.Context, categoryID int) ([]domain.ProductView, error)
	ListProductViewsByFilter(ctx context.Context, filter domain.Filter) ([]domain.ProductView, error)
	AddProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, id int) error
}

// Option configures a ProductService
type Option func(*productService)

// WithClock replaces the clock used to stamp new products
func WithClock(now func() time.Time) Option {
	return func(s *productService) {
		s.now = now
	}
}

type productService struct {
	repo   repository.ProductRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewProductService creates a new instance of ProductService
func NewProductService(repo repository.ProductRepository, logger *zap.Logger, opts ...Option) ProductService {
	s := &productService{repo: repo, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *productService) ListAllProducts(ctx context.Context) ([]domain.Product, error) {
	s.logger.Debug("List all products")
	return s.repo.FindAll(ctx)
}

// GetProductByID fails with NotFound when the product does not exist
func (s *productService) GetProductByID(ctx context.Context, id int) (*domain.Product, error) {
	s.logger.Debug("Get product by id", zap.Int("prod_id", id))

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("Failed to get product from DB")
	}
	return product, nil
}

func (s *productService) ListProductViews(ctx context.Context) ([]domain.ProductView, error) {
	s.logger.Debug("List product views")
	return s.repo.FindAllViews(ctx)
}

func (s *productService) ListProductViewsByCategory(ctx context.Context, categoryID int) ([]domain.ProductView, error) {
	s.logger.Debug("List product views by category", zap.Int("category_id", categoryID))
	return s.repo.FindViewsByCategoryID(ctx, categoryID)
}

// ListProductViewsByFilter uses the date-only query when no category is set.
// Unset dates are open bounds.
func (s *productService) ListProductViewsByFilter(ctx context.Context, filter domain.Filter) ([]domain.ProductView, error) {
	filter = filter.Bounded()
	s.logger.Debug("List product views by filter",
		zap.Stringer("date_begin", filter.DateBegin),
		zap.Stringer("date_end", filter.DateEnd),
		zap.Intp("category_id", filter.CategoryID),
	)

	if filter.CategoryID == nil {
		return s.repo.FindViewsByDateInterval(ctx, filter.DateBegin, filter.DateEnd)
	}
	return s.repo.FindViewsByDateIntervalAndCategory(ctx, filter.DateBegin, filter.DateEnd, *filter.CategoryID)
}

// AddProduct stamps the product with today's date before storing it
func (s *productService) AddProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	product.DateAdded = domain.DateOf(s.now())
	s.logger.Debug("Add product",
		zap.String("prod_name", product.Name),
		zap.Stringer("date_added", product.DateAdded),
	)
	return s.repo.Add(ctx, product)
}

func (s *productService) UpdateProduct(ctx context.Context, product domain.Product) error {
	s.logger.Debug("Update product", zap.Int("prod_id", product.ID))
	return s.repo.Update(ctx, product)
}

func (s *productService) DeleteProduct(ctx context.Context, id int) error {
	s.logger.Debug("Delete product", zap.Int("prod_id", id))
	return s.repo.Delete(ctx, id)
}
