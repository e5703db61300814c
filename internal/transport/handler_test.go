package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"catalog-manager/internal/config"
	"catalog-manager/internal/database"
	"catalog-manager/internal/domain"
	"catalog-manager/internal/middleware"
	"catalog-manager/internal/repository"
	"catalog-manager/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testToday = time.Date(2024, time.May, 17, 10, 30, 0, 0, time.UTC)

// newTestRouter wires both handlers over a migrated sqlite store
func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	db, err := database.New(context.Background(), config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "catalog.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(zap.NewNop()) })
	require.NoError(t, database.RunMigrations(db.DB().DB, config.DriverSQLite, zap.NewNop()))

	queries := database.MustLoadDefaultQueries()
	logger := zap.NewNop()

	categories := service.NewCategoryService(repository.NewCategoryRepository(db.DB(), queries.Category, logger), logger)
	products := service.NewProductService(
		repository.NewProductRepository(db.DB(), queries.Product, logger),
		logger,
		service.WithClock(func() time.Time { return testToday }),
	)

	r := chi.NewRouter()
	NewCategoryHandler(categories, logger).RegisterRoutes(r)
	NewProductHandler(products, logger).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func createCategory(t *testing.T, h http.Handler, name string, parentID *int) domain.Category {
	t.Helper()
	w := doJSON(t, h, http.MethodPost, "/categories", domain.Category{Name: name, ParentID: parentID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[domain.Category](t, w)
}

func createProduct(t *testing.T, h http.Handler, name string, amount, categoryID int) domain.Product {
	t.Helper()
	w := doJSON(t, h, http.MethodPost, "/products", domain.Product{Name: name, Amount: amount, CategoryID: categoryID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[domain.Product](t, w)
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[middleware.ErrorResponse](t, w).Error.Message
}
