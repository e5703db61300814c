package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"catalog-manager/internal/domain"
	"catalog-manager/internal/middleware"
	"catalog-manager/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Option configures a Handler
type Option func(*Handler)

// WithClock replaces the clock used for the default product filter
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

// Handler serves the catalog pages
type Handler struct {
	categories service.CategoryService
	products   service.ProductService
	renderer   *Renderer
	logger     *zap.Logger
	now        func() time.Time
}

// NewHandler creates a Handler. It panics when the embedded templates do not parse.
func NewHandler(categories service.CategoryService, products service.ProductService, logger *zap.Logger, opts ...Option) *Handler {
	renderer, err := NewRenderer()
	if err != nil {
		panic(err)
	}

	h := &Handler{
		categories: categories,
		products:   products,
		renderer:   renderer,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes registers all page routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Home)

	r.Get("/categories", h.Categories)
	r.Get("/categories/info/{id}/subs", h.SubCategories)
	r.Post("/categories/{id}/delete", h.DeleteCategory)
	r.Get("/category", h.NewCategory)
	r.Post("/category", h.CreateCategory)
	r.Get("/category/{id}", h.EditCategory)
	r.Post("/category/{id}", h.UpdateCategory)

	r.Get("/products", h.Products)
	r.Post("/products/filter", h.FilterProducts)
	r.Post("/products/{id}/delete", h.DeleteProduct)
	r.Get("/product", h.NewProduct)
	r.Post("/product", h.CreateProduct)
	r.Get("/product/{id}", h.EditProduct)
	r.Post("/product/{id}", h.UpdateProduct)
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/categories", http.StatusFound)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	if err := h.renderer.Page(w, status, name, data); err != nil {
		h.logger.Error("Failed to render page",
			zap.String("page", name),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// renderError shows the exception page with the status of the error kind,
// or the no_source page when the catalog cannot be reached
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := middleware.StatusForError(err)
	fields := []zap.Field{
		zap.Error(err),
		zap.Int("status", status),
		zap.String("path", r.URL.Path),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("Page failed", fields...)
	} else {
		h.logger.Warn("Page rejected", fields...)
	}

	if errors.Is(err, domain.ErrUnavailable) {
		h.render(w, r, status, "no_source", &PageData{
			Title: "Catalog unavailable",
			Data:  map[string]any{"message": domain.MessageOf(err)},
		})
		return
	}

	h.render(w, r, status, "exception", &PageData{
		Title: "Error",
		Data: map[string]any{
			"status":     status,
			"statusText": http.StatusText(status),
			"message":    domain.MessageOf(err),
		},
	})
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, domain.InvalidInput("invalid id"))
		return 0, false
	}
	return id, true
}

func (h *Handler) today() domain.Date {
	return domain.DateOf(h.now())
}
