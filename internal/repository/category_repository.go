package repository

import (
	"context"

	"catalog-manager/internal/database"
	"catalog-manager/internal/domain"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]domain.Category, error)
	FindByID(ctx context.Context, id int) (*domain.Category, error)
	FindAllSubCategories(ctx context.Context) ([]domain.Category, error)
	FindAllViews(ctx context.Context) ([]domain.CategoryWithCount, error)
	FindViewByID(ctx context.Context, id int) (*domain.CategoryWithCount, error)
	FindSubCategoryViewsByParentID(ctx context.Context, id int) ([]domain.CategoryWithCount, error)
	HasSubCategories(ctx context.Context, id int) (bool, error)
	Add(ctx context.Context, category domain.Category) (*domain.Category, error)
	Update(ctx context.Context, category domain.Category) error
	Delete(ctx context.Context, id int) error
	FindAllPossibleParents(ctx context.Context) ([]domain.Category, error)
	FindAllPossibleParentsForID(ctx context.Context, id int) ([]domain.Category, error)
}

type categoryRepository struct {
	db      *sqlx.DB
	queries database.CategoryQueries
	logger  *zap.Logger
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *sqlx.DB, queries database.CategoryQueries, logger *zap.Logger) CategoryRepository {
	return &categoryRepository{db: db, queries: queries, logger: logger}
}

func categoryArgs(c domain.Category) map[string]any {
	return map[string]any{
		"category_id":   c.ID,
		"category_name": c.Name,
		"parent_id":     nullableID(c.ParentID),
	}
}

func idArg(id int) map[string]any {
	return map[string]any{"category_id": id}
}

// FindAll retrieves every category
func (r *categoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	r.logger.Debug("Finding all categories")

	categories := []domain.Category{}
	if err := selectNamed(ctx, r.db, &categories, r.queries.SelectAll, idArg(0)); err != nil {
		return nil, storeError("Failed to get categories from DB", "list categories", err)
	}
	return categories, nil
}

// FindByID returns nil without error when the category does not exist
func (r *categoryRepository) FindByID(ctx context.Context, id int) (*domain.Category, error) {
	r.logger.Debug("Finding category", zap.Int("category_id", id))

	var category domain.Category
	found, err := getNamed(ctx, r.db, &category, r.queries.SelectByID, idArg(id))
	if err != nil {
		return nil, storeError("Failed to get category from DB", "find category by ID", err)
	}
	if !found {
		return nil, nil
	}
	return &category, nil
}

// FindAllSubCategories retrieves every category that has a parent
func (r *categoryRepository) FindAllSubCategories(ctx context.Context) ([]domain.Category, error) {
	r.logger.Debug("Finding all subcategories")

	categories := []domain.Category{}
	if err := selectNamed(ctx, r.db, &categories, r.queries.SelectChildren, idArg(0)); err != nil {
		return nil, storeError("Failed to get subcategories from DB", "list subcategories", err)
	}
	return categories, nil
}

func (r *categoryRepository) FindAllViews(ctx context.Context) ([]domain.CategoryWithCount, error) {
	r.logger.Debug("Finding all category views")

	views := []domain.CategoryWithCount{}
	if err := selectNamed(ctx, r.db, &views, r.queries.SelectAllWithCount, idArg(0)); err != nil {
		return nil, storeError("Failed to get categories from DB", "list category views", err)
	}
	return views, nil
}

// FindViewByID returns nil without error when the category does not exist
func (r *categoryRepository) FindViewByID(ctx context.Context, id int) (*domain.CategoryWithCount, error) {
	r.logger.Debug("Finding category view", zap.Int("category_id", id))

	var view domain.CategoryWithCount
	found, err := getNamed(ctx, r.db, &view, r.queries.SelectWithCountByID, idArg(id))
	if err != nil {
		return nil, storeError("Failed to get category from DB", "find category view by ID", err)
	}
	if !found {
		return nil, nil
	}
	return &view, nil
}

func (r *categoryRepository) FindSubCategoryViewsByParentID(ctx context.Context, id int) ([]domain.CategoryWithCount, error) {
	r.logger.Debug("Finding subcategory views", zap.Int("parent_id", id))

	views := []domain.CategoryWithCount{}
	if err := selectNamed(ctx, r.db, &views, r.queries.SelectChildrenWithCount, idArg(id)); err != nil {
		return nil, storeError("Failed to get subcategories from DB", "list subcategory views", err)
	}
	return views, nil
}

// HasSubCategories reports whether any category names id as its parent
func (r *categoryRepository) HasSubCategories(ctx context.Context, id int) (bool, error) {
	r.logger.Debug("Checking for subcategories", zap.Int("category_id", id))

	var exists bool
	if _, err := getNamed(ctx, r.db, &exists, r.queries.HasChildren, idArg(id)); err != nil {
		return false, storeError("Failed to get subcategories from DB", "check subcategories", err)
	}
	return exists, nil
}

// Add inserts category and returns it with its generated id
func (r *categoryRepository) Add(ctx context.Context, category domain.Category) (*domain.Category, error) {
	r.logger.Debug("Adding category", zap.String("category_name", category.Name))

	var id int
	if _, err := getNamed(ctx, r.db, &id, r.queries.Insert, categoryArgs(category)); err != nil {
		return nil, storeError("Failed to add category to DB", "insert category", err)
	}

	category.ID = id
	return &category, nil
}

func (r *categoryRepository) Update(ctx context.Context, category domain.Category) error {
	r.logger.Debug("Updating category", zap.Int("category_id", category.ID))

	rows, err := execNamed(ctx, r.db, r.queries.Update, categoryArgs(category))
	if err != nil {
		return storeError("Failed to update category in DB", "update category", err)
	}
	if rows == 0 {
		return domain.NotFound("Failed to update category in DB")
	}
	return nil
}

// Delete removes the category. Products still attached to it make the store
// reject the statement, which surfaces as an integrity violation.
func (r *categoryRepository) Delete(ctx context.Context, id int) error {
	r.logger.Debug("Deleting category", zap.Int("category_id", id))

	rows, err := execNamed(ctx, r.db, r.queries.Delete, idArg(id))
	if err != nil {
		if isConstraintViolation(err) {
			return domain.IntegrityViolation("There are some products in category", err)
		}
		return storeError("Failed to delete category", "delete category", err)
	}
	if rows == 0 {
		return domain.NotFound("Failed to delete category")
	}
	return nil
}

// FindAllPossibleParents returns the root categories
func (r *categoryRepository) FindAllPossibleParents(ctx context.Context) ([]domain.Category, error) {
	r.logger.Debug("Finding possible parents")

	categories := []domain.Category{}
	if err := selectNamed(ctx, r.db, &categories, r.queries.SelectParents, idArg(0)); err != nil {
		return nil, storeError("Failed to get categories from DB", "list possible parents", err)
	}
	return categories, nil
}

// FindAllPossibleParentsForID returns the root categories other than id.
// Descendants of id always have a parent, so they are never candidates.
func (r *categoryRepository) FindAllPossibleParentsForID(ctx context.Context, id int) ([]domain.Category, error) {
	r.logger.Debug("Finding possible parents", zap.Int("category_id", id))

	categories := []domain.Category{}
	if err := selectNamed(ctx, r.db, &categories, r.queries.SelectParentsForID, idArg(id)); err != nil {
		return nil, storeError("Failed to get categories from DB", "list possible parents for ID", err)
	}
	return categories, nil
}
