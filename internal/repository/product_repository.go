package repository

import (
	"context"

	"catalog-manager/internal/database"
	"catalog-manager/internal/domain"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	FindAllViews(ctx context.Context) ([]domain.ProductView, error)
	FindViewsByCategoryID(ctx context.Context, categoryID int) ([]domain.ProductView, error)
	FindViewsByDateInterval(ctx context.Context, begin, end domain.Date) ([]domain.ProductView, error)
	FindViewsByDateIntervalAndCategory(ctx context.Context, begin, end domain.Date, categoryID int) ([]domain.ProductView, error)
	Add(ctx context.Context, product domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product domain.Product) error
	Delete(ctx context.Context, id int) error
}

type productRepository struct {
	db      *sqlx.DB
	queries database.ProductQueries
	logger  *zap.Logger
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sqlx.DB, queries database.ProductQueries, logger *zap.Logger) ProductRepository {
	return &productRepository{db: db, queries: queries, logger: logger}
}

func productArgs(p domain.Product) map[string]any {
	return map[string]any{
		"prod_id":     p.ID,
		"prod_name":   p.Name,
		"prod_amount": p.Amount,
		"date_added":  dateArg(p.DateAdded),
		"category_id": p.CategoryID,
	}
}

func (r *productRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	r.logger.Debug("Finding all products")

	products := []domain.Product{}
	if err := selectNamed(ctx, r.db, &products, r.queries.SelectAll, map[string]any{}); err != nil {
		return nil, storeError("Failed to get products from DB", "list products", err)
	}
	return products, nil
}

// FindByID returns nil without error when the product does not exist
func (r *productRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	r.logger.Debug("Finding product", zap.Int("prod_id", id))

	var product domain.Product
	found, err := getNamed(ctx, r.db, &product, r.queries.SelectByID, map[string]any{"prod_id": id})
	if err != nil {
		return nil, storeError("Failed to get product from DB", "find product by ID", err)
	}
	if !found {
		return nil, nil
	}
	return &product, nil
}

func (r *productRepository) FindAllViews(ctx context.Context) ([]domain.ProductView, error) {
	r.logger.Debug("Finding all product views")
	return r.views(ctx, "list product views", r.queries.SelectAllViews, map[string]any{})
}

// FindViewsByCategoryID matches products whose category or its parent is categoryID
func (r *productRepository) FindViewsByCategoryID(ctx context.Context, categoryID int) ([]domain.ProductView, error) {
	r.logger.Debug("Finding product views by category", zap.Int("category_id", categoryID))
	return r.views(ctx, "list product views by category", r.queries.SelectViewsByCategory,
		map[string]any{"category_id": categoryID})
}

// FindViewsByDateInterval matches products added within [begin, end]
func (r *productRepository) FindViewsByDateInterval(ctx context.Context, begin, end domain.Date) ([]domain.ProductView, error) {
	r.logger.Debug("Finding product views by date interval",
		zap.Stringer("date_begin", begin),
		zap.Stringer("date_end", end),
	)
	return r.views(ctx, "list product views by date interval", r.queries.SelectViewsByDateInterval,
		map[string]any{"date_begin": dateArg(begin), "date_end": dateArg(end)})
}

func (r *productRepository) FindViewsByDateIntervalAndCategory(ctx context.Context, begin, end domain.Date, categoryID int) ([]domain.ProductView, error) {
	r.logger.Debug("Finding product views by filter",
		zap.Stringer("date_begin", begin),
		zap.Stringer("date_end", end),
		zap.Int("category_id", categoryID),
	)
	return r.views(ctx, "list product views by filter", r.queries.SelectViewsByMixedFilter,
		map[string]any{"date_begin": dateArg(begin), "date_end": dateArg(end), "category_id": categoryID})
}

func (r *productRepository) views(ctx context.Context, op, query string, arg map[string]any) ([]domain.ProductView, error) {
	views := []domain.ProductView{}
	if err := selectNamed(ctx, r.db, &views, query, arg); err != nil {
		return nil, storeError("Failed to get products from DB", op, err)
	}
	return views, nil
}

// Add inserts product and returns it with its generated id
func (r *productRepository) Add(ctx context.Context, product domain.Product) (*domain.Product, error) {
	r.logger.Debug("Adding product",
		zap.String("prod_name", product.Name),
		zap.Int("category_id", product.CategoryID),
	)

	var id int
	if _, err := getNamed(ctx, r.db, &id, r.queries.Insert, productArgs(product)); err != nil {
		return nil, storeError("Failed to add product to DB", "insert product", err)
	}

	product.ID = id
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, product domain.Product) error {
	r.logger.Debug("Updating product", zap.Int("prod_id", product.ID))

	rows, err := execNamed(ctx, r.db, r.queries.Update, productArgs(product))
	if err != nil {
		return storeError("Failed to update product in DB", "update product", err)
	}
	if rows == 0 {
		return domain.NotFound("Failed to update product in DB")
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int) error {
	r.logger.Debug("Deleting product", zap.Int("prod_id", id))

	rows, err := execNamed(ctx, r.db, r.queries.Delete, map[string]any{"prod_id": id})
	if err != nil {
		return storeError("Failed to delete product in DB", "delete product", err)
	}
	if rows == 0 {
		return domain.NotFound("Failed to delete product in DB")
	}
	return nil
}
