package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"catalog-manager/internal/config"
	"catalog-manager/internal/database"
	"catalog-manager/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/leanovate/gopter"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testStore struct {
	db         *sqlx.DB
	categories CategoryRepository
	products   ProductRepository
}

// newTestStore opens a migrated sqlite database private to t
func newTestStore(t *testing.T) *testStore {
	t.Helper()

	svc, err := database.New(context.Background(), config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "catalog.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close(zap.NewNop()) })

	require.NoError(t, database.RunMigrations(svc.DB().DB, config.DriverSQLite, zap.NewNop()))

	return newStoreOn(svc.DB())
}

func newStoreOn(db *sqlx.DB) *testStore {
	queries := database.MustLoadDefaultQueries()
	logger := zap.NewNop()
	return &testStore{
		db:         db,
		categories: NewCategoryRepository(db, queries.Category, logger),
		products:   NewProductRepository(db, queries.Product, logger),
	}
}

var nameSeq atomic.Int64

// uniqueName keeps generated names apart under the unique constraint
func uniqueName(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, nameSeq.Add(1))
}

func (s *testStore) addCategory(t *testing.T, name string, parentID *int) domain.Category {
	t.Helper()
	created, err := s.categories.Add(context.Background(), domain.Category{Name: name, ParentID: parentID})
	require.NoError(t, err)
	return *created
}

func (s *testStore) addProduct(t *testing.T, name string, categoryID int, added domain.Date) domain.Product {
	t.Helper()
	created, err := s.products.Add(context.Background(), domain.Product{
		Name:       name,
		Amount:     10,
		DateAdded:  added,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return *created
}

func propertyParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	return parameters
}
