package web

import (
	"net/http"

	"go.uber.org/zap"
)

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	views, err := h.categories.ListCategoryViews(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "categories", &PageData{
		Title:    "Categories",
		Location: "categories",
		Data:     map[string]any{"categories": views},
	})
}

func (h *Handler) SubCategories(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	views, err := h.categories.ListSubCategoryViews(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "subcategories", &PageData{
		Location: "categories",
		Data:     map[string]any{"subcategories": views},
	})
}

func (h *Handler) NewCategory(w http.ResponseWriter, r *http.Request) {
	parents, err := h.categories.ListPossibleParents(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.renderCategoryForm(w, r, http.StatusOK, categoryForm{}, parents, 0, nil)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	form, errs := parseCategoryForm(r)
	if len(errs) > 0 {
		parents, err := h.categories.ListPossibleParents(r.Context())
		if err != nil {
			h.renderError(w, r, err)
			return
		}
		h.renderCategoryForm(w, r, http.StatusBadRequest, form, parents, 0, errs)
		return
	}

	created, err := h.categories.AddCategory(r.Context(), form.toCategory())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.logger.Info("Category created", zap.Int("category_id", created.ID))
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

func (h *Handler) EditCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	category, err := h.categories.GetCategoryByID(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderEditCategory(w, r, http.StatusOK, categoryFormOf(*category), nil)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	form, errs := parseCategoryForm(r)
	form.ID = id
	if len(errs) > 0 {
		h.renderEditCategory(w, r, http.StatusBadRequest, form, errs)
		return
	}

	if err := h.categories.UpdateCategory(r.Context(), form.toCategory()); err != nil {
		h.renderError(w, r, err)
		return
	}

	h.logger.Info("Category updated", zap.Int("category_id", id))
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.categories.DeleteCategory(r.Context(), id); err != nil {
		h.renderError(w, r, err)
		return
	}

	h.logger.Info("Category deleted", zap.Int("category_id", id))
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

// renderEditCategory loads the product count and the parent candidates of
// the edited category
func (h *Handler) renderEditCategory(w http.ResponseWriter, r *http.Request, status int, form categoryForm, errs map[string]string) {
	view, err := h.categories.GetCategoryViewByID(r.Context(), form.ID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	parents, err := h.categories.ListPossibleParentsForID(r.Context(), form.ID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.renderCategoryForm(w, r, status, form, parents, view.ProductCount, errs)
}

func (h *Handler) renderCategoryForm(w http.ResponseWriter, r *http.Request, status int, form categoryForm, parents any, productCount int, errs map[string]string) {
	title := "New category"
	if form.ID != 0 {
		title = "Edit category"
	}

	h.render(w, r, status, "category", &PageData{
		Title:    title,
		Location: "categories",
		Data: map[string]any{
			"isNew":        form.ID == 0,
			"category":     form,
			"parents":      parents,
			"productCount": productCount,
		},
		Errors: errs,
	})
}
