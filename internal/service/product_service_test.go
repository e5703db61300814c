package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalog-manager/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fixedClock(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}

// Scenario: a new product gets an id and today's date
func TestAddProduct_StampsToday(t *testing.T) {
	now := time.Date(2024, time.May, 17, 23, 59, 0, 0, time.UTC)
	repo := newMockProductRepository()
	svc := NewProductService(repo, zap.NewNop(), fixedClock(now))

	created, err := svc.AddProduct(context.Background(), domain.Product{
		Name:       "Yellow bricks",
		Amount:     1750,
		CategoryID: 1,
	})

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "2024-05-17", created.DateAdded.String())
	assert.Equal(t, created.DateAdded, repo.products[created.ID].DateAdded)
}

// Feature: catalog-manager, Property: Creation overwrites the caller's date
func TestProperty_AddProductOverwritesDate(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("dateAdded always equals the service's today", prop.ForAll(
		func(callerDays, todayDays int) bool {
			epoch := time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)
			today := epoch.AddDate(0, 0, todayDays)
			repo := newMockProductRepository()
			svc := NewProductService(repo, zap.NewNop(), fixedClock(today))

			created, err := svc.AddProduct(context.Background(), domain.Product{
				Name:      "p",
				DateAdded: domain.DateOf(epoch.AddDate(0, 0, callerDays)),
			})
			if err != nil {
				return false
			}
			return created.DateAdded == domain.DateOf(today) && repo.products[created.ID].DateAdded == domain.DateOf(today)
		},
		gen.IntRange(-5000, 5000),
		gen.IntRange(0, 10000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Feature: catalog-manager, Property: Filter dispatch picks the storage path
func TestProperty_FilterDispatch(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("nil category uses the date path, a category uses the combined path", prop.ForAll(
		func(categoryID int, withCategory bool) bool {
			repo := newMockProductRepository()
			svc := NewProductService(repo, zap.NewNop())

			filter := domain.Filter{
				DateBegin: domain.NewDate(2018, time.January, 1),
				DateEnd:   domain.NewDate(2019, time.January, 1),
			}
			want := "FindViewsByDateInterval"
			if withCategory {
				filter.CategoryID = &categoryID
				want = "FindViewsByDateIntervalAndCategory"
			}

			if _, err := svc.ListProductViewsByFilter(context.Background(), filter); err != nil {
				return false
			}
			return len(repo.calls) == 1 && repo.lastCall() == want
		},
		gen.IntRange(1, 1000),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Scenario: filter by category 1 within 2018-01-01..2019-01-01 is inclusive
func TestListProductViewsByFilter_InclusiveInterval(t *testing.T) {
	repo := newMockProductRepository(
		domain.Product{ID: 1, Name: "first day", DateAdded: domain.NewDate(2018, time.January, 1), CategoryID: 1},
		domain.Product{ID: 2, Name: "last day", DateAdded: domain.NewDate(2019, time.January, 1), CategoryID: 1},
		domain.Product{ID: 3, Name: "too late", DateAdded: domain.NewDate(2019, time.January, 2), CategoryID: 1},
		domain.Product{ID: 4, Name: "other", DateAdded: domain.NewDate(2018, time.June, 1), CategoryID: 2},
	)
	svc := NewProductService(repo, zap.NewNop())
	categoryID := 1

	views, err := svc.ListProductViewsByFilter(context.Background(), domain.Filter{
		CategoryID: &categoryID,
		DateBegin:  domain.NewDate(2018, time.January, 1),
		DateEnd:    domain.NewDate(2019, time.January, 1),
	})

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, 1, views[0].ID)
	assert.Equal(t, 2, views[1].ID)
}

func TestListProductViewsByFilter_OpenBounds(t *testing.T) {
	repo := newMockProductRepository(
		domain.Product{ID: 1, DateAdded: domain.NewDate(1975, time.March, 3), CategoryID: 1},
		domain.Product{ID: 2, DateAdded: domain.NewDate(2999, time.March, 3), CategoryID: 1},
	)
	svc := NewProductService(repo, zap.NewNop())

	views, err := svc.ListProductViewsByFilter(context.Background(), domain.Filter{})

	require.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, "FindViewsByDateInterval", repo.lastCall())
}

func TestGetProductByID(t *testing.T) {
	repo := newMockProductRepository(domain.Product{ID: 3, Name: "Hammer"})
	svc := NewProductService(repo, zap.NewNop())

	product, err := svc.GetProductByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Hammer", product.Name)

	_, err = svc.GetProductByID(context.Background(), 4)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "Failed to get product from DB", domain.MessageOf(err))
}

func TestProductErrorsPropagate(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewProductService(repo, zap.NewNop())
	ctx := context.Background()

	err := svc.UpdateProduct(ctx, domain.Product{ID: 8})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "Failed to update product in DB", domain.MessageOf(err))

	err = svc.DeleteProduct(ctx, 8)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	repo.err = domain.StoreFailure("Failed to get products from DB", errors.New("disk full"))
	_, err = svc.ListProductViews(ctx)
	assert.True(t, errors.Is(err, domain.ErrStore))
	_, err = svc.ListAllProducts(ctx)
	assert.True(t, errors.Is(err, domain.ErrStore))
	_, err = svc.ListProductViewsByCategory(ctx, 1)
	assert.True(t, errors.Is(err, domain.ErrStore))
}
