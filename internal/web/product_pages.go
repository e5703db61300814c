package web

import (
	"net/http"

	"catalog-manager/internal/domain"

	"go.uber.org/zap"
)

// Products lists products filtered by the query string, defaulting to the
// current month
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	h.listProducts(w, r)
}

func (h *Handler) FilterProducts(w http.ResponseWriter, r *http.Request) {
	h.listProducts(w, r)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	filter, errs := parseFilterForm(r, h.today())

	categories, err := h.categories.ListPossibleParents(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	data := map[string]any{
		"filter":     filter,
		"categories": categories,
		"products":   []domain.ProductView{},
	}
	if len(errs) > 0 {
		h.render(w, r, http.StatusBadRequest, "products", &PageData{
			Title: "Products", Location: "products", Data: data, Errors: errs,
		})
		return
	}

	views, err := h.products.ListProductViewsByFilter(r.Context(), filter)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	data["products"] = views

	h.render(w, r, http.StatusOK, "products", &PageData{
		Title: "Products", Location: "products", Data: data,
	})
}

func (h *Handler) NewProduct(w http.ResponseWriter, r *http.Request) {
	h.renderProductForm(w, r, http.StatusOK, productForm{}, nil)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	form, errs := parseProductForm(r)
	if len(errs) > 0 {
		h.renderProductForm(w, r, http.StatusBadRequest, form, errs)
		return
	}

	created, err := h.products.AddProduct(r.Context(), form.toProduct())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.logger.Info("Product created", zap.Int("prod_id", created.ID))
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (h *Handler) EditProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	product, err := h.products.GetProductByID(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderProductForm(w, r, http.StatusOK, productFormOf(*product), nil)
}

// UpdateProduct keeps the stored date when the form does not carry one
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	form, errs := parseProductForm(r)
	form.ID = id
	if len(errs) > 0 {
		h.renderProductForm(w, r, http.StatusBadRequest, form, errs)
		return
	}

	if form.DateAdded.IsZero() {
		stored, err := h.products.GetProductByID(r.Context(), id)
		if err != nil {
			h.renderError(w, r, err)
			return
		}
		form.DateAdded = stored.DateAdded
	}

	if err := h.products.UpdateProduct(r.Context(), form.toProduct()); err != nil {
		h.renderError(w, r, err)
		return
	}

	h.logger.Info("Product updated", zap.Int("prod_id", id))
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.products.DeleteProduct(r.Context(), id); err != nil {
		h.renderError(w, r, err)
		return
	}

	h.logger.Info("Product deleted", zap.Int("prod_id", id))
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// renderProductForm offers the subcategories as product categories
func (h *Handler) renderProductForm(w http.ResponseWriter, r *http.Request, status int, form productForm, errs map[string]string) {
	categories, err := h.categories.ListSubCategories(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	title := "New product"
	if form.ID != 0 {
		title = "Edit product"
	}

	h.render(w, r, status, "product", &PageData{
		Title:    title,
		Location: "products",
		Data: map[string]any{
			"isNew":      form.ID == 0,
			"product":    form,
			"categories": categories,
		},
		Errors: errs,
	})
}
