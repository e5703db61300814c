package transport

import (
	"net/http"
	"strconv"

	"catalog-manager/internal/domain"
	"catalog-manager/internal/middleware"
	"catalog-manager/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryRequest represents the category create/update payload
type CategoryRequest struct {
	ID       int     `json:"categoryId"`
	Name     *string `json:"categoryName" validate:"required"`
	ParentID *int    `json:"parentId,omitempty"`
}

// toCategory treats a missing or non-positive parent as a root
func (req CategoryRequest) toCategory() domain.Category {
	category := domain.Category{ID: req.ID, Name: *req.Name}
	if req.ParentID != nil {
		category.ParentID = domain.ParentRef(*req.ParentID)
	}
	return category
}

// CategoryHandler handles HTTP requests for category operations
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// RegisterRoutes registers all category routes
func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.AddCategory)
		r.Get("/info", h.ListCategoryViews)
		r.Get("/info/{id}", h.GetCategoryView)
		r.Get("/info/{id}/subs", h.ListSubCategoryViews)
		r.Get("/subs", h.ListSubCategories)
		r.Get("/possibleparents", h.ListPossibleParents)
		r.Get("/possibleparents/{id}", h.ListPossibleParentsForID)
		r.Get("/{id}", h.GetCategory)
		r.Put("/{id}", h.UpdateCategory)
		r.Delete("/{id}", h.DeleteCategory)
	})
}

// pathID reads the {id} URL parameter, answering 400 when it is not a number
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.ListCategories(r.Context())
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategoryByID(r.Context(), id)
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) ListCategoryViews(w http.ResponseWriter, r *http.Request) {
	views, err := h.categoryService.ListCategoryViews(r.Context())
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, views)
}

func (h *CategoryHandler) GetCategoryView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := h.categoryService.GetCategoryViewByID(r.Context(), id)
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, view)
}

func (h *CategoryHandler) ListSubCategoryViews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	views, err := h.categoryService.ListSubCategoryViews(r.Context(), id)
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, views)
}

func (h *CategoryHandler) ListSubCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.ListSubCategories(r.Context())
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// AddCategory handles category creation
func (h *CategoryHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Category validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	created, err := h.categoryService.AddCategory(r.Context(), req.toCategory())
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Category created", zap.Int("category_id", created.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, created)
}

// UpdateCategory handles category updates. The id in the path wins over the body.
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Category validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}
	req.ID = id

	if err := h.categoryService.UpdateCategory(r.Context(), req.toCategory()); err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Category updated", zap.Int("category_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCategory handles category deletion
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(r.Context(), id); err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Category deleted", zap.Int("category_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoryHandler) ListPossibleParents(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.ListPossibleParents(r.Context())
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) ListPossibleParentsForID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	categories, err := h.categoryService.ListPossibleParentsForID(r.Context(), id)
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, categories)
}
