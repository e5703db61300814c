package service

import (
	"context"

	"catalog-manager/internal/domain"
	"catalog-manager/internal/repository"

	"go.uber.org/zap"
)

// CategoryService defines the catalog operations on categories. It is
// implemented over the store here and over HTTP by the client package.
type CategoryService interface {
	GetCategoryByID(ctx context.Context, id int) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListCategoryViews(ctx context.Context) ([]domain.CategoryWithCount, error)
	GetCategoryViewByID(ctx context.Context, id int) (*domain.CategoryWithCount, error)
	ListSubCategories(ctx context.Context) ([]domain.Category, error)
	ListSubCategoryViews(ctx context.Context, parentID int) ([]domain.CategoryWithCount, error)
	AddCategory(ctx context.Context, category domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, id int) error
	ListPossibleParents(ctx context.Context) ([]domain.Category, error)
	ListPossibleParentsForID(ctx context.Context, id int) ([]domain.Category, error)
}

type categoryService struct {
	repo   repository.CategoryRepository
	logger *zap.Logger
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(repo repository.CategoryRepository, logger *zap.Logger) CategoryService {
	return &categoryService{repo: repo, logger: logger}
}

// GetCategoryByID fails with NotFound when the category does not exist
func (s *categoryService) GetCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	s.logger.Debug("Get category by id", zap.Int("category_id", id))

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.NotFound("Failed to get category from DB")
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	s.logger.Debug("List categories")
	return s.repo.FindAll(ctx)
}

func (s *categoryService) ListCategoryViews(ctx context.Context) ([]domain.CategoryWithCount, error) {
	s.logger.Debug("List category views")
	return s.repo.FindAllViews(ctx)
}

// GetCategoryViewByID fails with NotFound when the category does not exist
func (s *categoryService) GetCategoryViewByID(ctx context.Context, id int) (*domain.CategoryWithCount, error) {
	s.logger.Debug("Get category view by id", zap.Int("category_id", id))

	view, err := s.repo.FindViewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, domain.NotFound("Failed to get category from DB")
	}
	return view, nil
}

func (s *categoryService) ListSubCategories(ctx context.Context) ([]domain.Category, error) {
	s.logger.Debug("List subcategories")
	return s.repo.FindAllSubCategories(ctx)
}

func (s *categoryService) ListSubCategoryViews(ctx context.Context, parentID int) ([]domain.CategoryWithCount, error) {
	s.logger.Debug("List subcategory views", zap.Int("parent_id", parentID))
	return s.repo.FindSubCategoryViewsByParentID(ctx, parentID)
}

func (s *categoryService) AddCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	s.logger.Debug("Add category", zap.String("category_name", category.Name))
	return s.repo.Add(ctx, category)
}

func (s *categoryService) UpdateCategory(ctx context.Context, category domain.Category) error {
	s.logger.Debug("Update category", zap.Int("category_id", category.ID))
	return s.repo.Update(ctx, category)
}

// DeleteCategory keeps the integrity violation of a guarded category intact
func (s *categoryService) DeleteCategory(ctx context.Context, id int) error {
	s.logger.Debug("Delete category", zap.Int("category_id", id))
	return s.repo.Delete(ctx, id)
}

func (s *categoryService) ListPossibleParents(ctx context.Context) ([]domain.Category, error) {
	s.logger.Debug("List possible parents")
	return s.repo.FindAllPossibleParents(ctx)
}

// ListPossibleParentsForID returns the categories id may be attached to.
// A root that already has subcategories cannot become a subcategory itself,
// so it gets no candidates. Unknown ids fall through to the plain query.
func (s *categoryService) ListPossibleParentsForID(ctx context.Context, id int) ([]domain.Category, error) {
	s.logger.Debug("List possible parents for id", zap.Int("category_id", id))

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if category != nil && category.IsRoot() {
		hasChildren, err := s.repo.HasSubCategories(ctx, id)
		if err != nil {
			return nil, err
		}
		if hasChildren {
			return []domain.Category{}, nil
		}
	}

	return s.repo.FindAllPossibleParentsForID(ctx, id)
}
