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

// ProductRequest represents the product create/update payload. Only the
// presence of each field is checked here, its value is left to the store.
type ProductRequest struct {
	ID         int         `json:"productId"`
	Name       *string     `json:"productName" validate:"required"`
	Amount     *int        `json:"productAmount" validate:"required"`
	DateAdded  domain.Date `json:"dateAdded"`
	CategoryID *int        `json:"categoryId" validate:"required"`
}

func (req ProductRequest) toProduct() domain.Product {
	return domain.Product{
		ID:         req.ID,
		Name:       *req.Name,
		Amount:     *req.Amount,
		DateAdded:  req.DateAdded,
		CategoryID: *req.CategoryID,
	}
}

// Filter query parameters
const (
	filterFrom       = "from"
	filterTo         = "to"
	filterCategoryID = "id"
)

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.AddProduct)
		r.Get("/info", h.ListProductViews)
		r.Get("/filter", h.FilterProductViews)
		r.Get("/category/{id}", h.ListProductViewsByCategory)
		r.Get("/{id}", h.GetProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListAllProducts(r.Context())
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := h.productService.GetProductByID(r.Context(), id)
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) ListProductViews(w http.ResponseWriter, r *http.Request) {
	views, err := h.productService.ListProductViews(r.Context())
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, views)
}

// ListProductViewsByCategory lists the views of a category and its
// subcategories regardless of their date
func (h *ProductHandler) ListProductViewsByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	views, err := h.productService.ListProductViewsByCategory(r.Context(), id)
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, views)
}

// ParseFilterQuery reads from, to and id from the query string. Absent dates
// default to the open interval bounds. An inverted interval is passed through
// and matches nothing.
func ParseFilterQuery(r *http.Request) (domain.Filter, []middleware.ValidationError) {
	var (
		filter domain.Filter
		errs   []middleware.ValidationError
		query  = r.URL.Query()
	)

	if raw := query.Get(filterFrom); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			errs = append(errs, middleware.ValidationError{Field: filterFrom, Message: "Date must be formatted as YYYY-MM-DD"})
		}
		filter.DateBegin = d
	}
	if raw := query.Get(filterTo); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			errs = append(errs, middleware.ValidationError{Field: filterTo, Message: "Date must be formatted as YYYY-MM-DD"})
		}
		filter.DateEnd = d
	}
	if raw := query.Get(filterCategoryID); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, middleware.ValidationError{Field: filterCategoryID, Message: "Value must be a number"})
		} else {
			filter.CategoryID = &id
		}
	}

	return filter.Bounded(), errs
}

// FilterProductViews lists product views by category and/or date interval
func (h *ProductHandler) FilterProductViews(w http.ResponseWriter, r *http.Request) {
	filter, errs := ParseFilterQuery(r)
	if len(errs) > 0 {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	views, err := h.productService.ListProductViewsByFilter(r.Context(), filter)
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, views)
}

// AddProduct handles product creation. The date added is set by the service.
func (h *ProductHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	created, err := h.productService.AddProduct(r.Context(), req.toProduct())
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Product created", zap.Int("prod_id", created.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, created)
}

// UpdateProduct handles product updates. The id in the path wins over the body.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}
	req.ID = id

	if err := h.productService.UpdateProduct(r.Context(), req.toProduct()); err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Product updated", zap.Int("prod_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteProduct handles product deletion
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Product deleted", zap.Int("prod_id", id))
	w.WriteHeader(http.StatusNoContent)
}
