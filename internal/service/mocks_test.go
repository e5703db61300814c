package service

import (
	"context"
	"sort"

	"catalog-manager/internal/domain"
)

// Mock repositories for testing
type mockCategoryRepository struct {
	categories map[int]domain.Category
	products   map[int]int // category id -> product count
	nextID     int
	err        error
	calls      []string
}

func newMockCategoryRepository(categories ...domain.Category) *mockCategoryRepository {
	m := &mockCategoryRepository{
		categories: make(map[int]domain.Category),
		products:   make(map[int]int),
		nextID:     1,
	}
	for _, c := range categories {
		m.categories[c.ID] = c
		if c.ID >= m.nextID {
			m.nextID = c.ID + 1
		}
	}
	return m
}

func (m *mockCategoryRepository) record(call string) error {
	m.calls = append(m.calls, call)
	return m.err
}

func (m *mockCategoryRepository) sorted(keep func(domain.Category) bool) []domain.Category {
	out := []domain.Category{}
	for _, c := range m.categories {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *mockCategoryRepository) view(c domain.Category) domain.CategoryWithCount {
	count := m.products[c.ID]
	for _, child := range m.categories {
		if child.ParentID != nil && *child.ParentID == c.ID {
			count += m.products[child.ID]
		}
	}
	return domain.CategoryWithCount{ID: c.ID, Name: c.Name, ParentID: c.ParentID, ProductCount: count}
}

func (m *mockCategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	if err := m.record("FindAll"); err != nil {
		return nil, err
	}
	return m.sorted(func(domain.Category) bool { return true }), nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id int) (*domain.Category, error) {
	if err := m.record("FindByID"); err != nil {
		return nil, err
	}
	c, ok := m.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *mockCategoryRepository) FindAllSubCategories(ctx context.Context) ([]domain.Category, error) {
	if err := m.record("FindAllSubCategories"); err != nil {
		return nil, err
	}
	return m.sorted(func(c domain.Category) bool { return !c.IsRoot() }), nil
}

func (m *mockCategoryRepository) FindAllViews(ctx context.Context) ([]domain.CategoryWithCount, error) {
	if err := m.record("FindAllViews"); err != nil {
		return nil, err
	}
	views := []domain.CategoryWithCount{}
	for _, c := range m.sorted(func(domain.Category) bool { return true }) {
		views = append(views, m.view(c))
	}
	return views, nil
}

func (m *mockCategoryRepository) FindViewByID(ctx context.Context, id int) (*domain.CategoryWithCount, error) {
	if err := m.record("FindViewByID"); err != nil {
		return nil, err
	}
	c, ok := m.categories[id]
	if !ok {
		return nil, nil
	}
	v := m.view(c)
	return &v, nil
}

func (m *mockCategoryRepository) FindSubCategoryViewsByParentID(ctx context.Context, id int) ([]domain.CategoryWithCount, error) {
	if err := m.record("FindSubCategoryViewsByParentID"); err != nil {
		return nil, err
	}
	views := []domain.CategoryWithCount{}
	for _, c := range m.sorted(func(c domain.Category) bool { return c.ParentID != nil && *c.ParentID == id }) {
		views = append(views, m.view(c))
	}
	return views, nil
}

func (m *mockCategoryRepository) HasSubCategories(ctx context.Context, id int) (bool, error) {
	if err := m.record("HasSubCategories"); err != nil {
		return false, err
	}
	for _, c := range m.categories {
		if c.ParentID != nil && *c.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCategoryRepository) Add(ctx context.Context, category domain.Category) (*domain.Category, error) {
	if err := m.record("Add"); err != nil {
		return nil, err
	}
	for _, c := range m.categories {
		if c.Name == category.Name {
			return nil, domain.IntegrityViolation("Failed to add category to DB", nil)
		}
	}
	category.ID = m.nextID
	m.nextID++
	m.categories[category.ID] = category
	return &category, nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category domain.Category) error {
	if err := m.record("Update"); err != nil {
		return err
	}
	if _, ok := m.categories[category.ID]; !ok {
		return domain.NotFound("Failed to update category in DB")
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id int) error {
	if err := m.record("Delete"); err != nil {
		return err
	}
	if _, ok := m.categories[id]; !ok {
		return domain.NotFound("Failed to delete category")
	}
	if m.products[id] > 0 {
		return domain.IntegrityViolation("There are some products in category", nil)
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepository) FindAllPossibleParents(ctx context.Context) ([]domain.Category, error) {
	if err := m.record("FindAllPossibleParents"); err != nil {
		return nil, err
	}
	return m.sorted(func(c domain.Category) bool { return c.IsRoot() }), nil
}

func (m *mockCategoryRepository) FindAllPossibleParentsForID(ctx context.Context, id int) ([]domain.Category, error) {
	if err := m.record("FindAllPossibleParentsForID"); err != nil {
		return nil, err
	}
	return m.sorted(func(c domain.Category) bool { return c.IsRoot() && c.ID != id }), nil
}

type mockProductRepository struct {
	products map[int]domain.Product
	nextID   int
	err      error
	calls    []string
}

func newMockProductRepository(products ...domain.Product) *mockProductRepository {
	m := &mockProductRepository{products: make(map[int]domain.Product), nextID: 1}
	for _, p := range products {
		m.products[p.ID] = p
		if p.ID >= m.nextID {
			m.nextID = p.ID + 1
		}
	}
	return m
}

func (m *mockProductRepository) record(call string) error {
	m.calls = append(m.calls, call)
	return m.err
}

func (m *mockProductRepository) lastCall() string {
	if len(m.calls) == 0 {
		return ""
	}
	return m.calls[len(m.calls)-1]
}

func (m *mockProductRepository) views() []domain.ProductView {
	views := []domain.ProductView{}
	for _, p := range m.products {
		views = append(views, domain.ProductView{
			ID: p.ID, Name: p.Name, Amount: p.Amount, DateAdded: p.DateAdded, CategoryID: p.CategoryID,
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views
}

func (m *mockProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	if err := m.record("FindAll"); err != nil {
		return nil, err
	}
	products := []domain.Product{}
	for _, v := range m.views() {
		products = append(products, m.products[v.ID])
	}
	return products, nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	if err := m.record("FindByID"); err != nil {
		return nil, err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *mockProductRepository) FindAllViews(ctx context.Context) ([]domain.ProductView, error) {
	if err := m.record("FindAllViews"); err != nil {
		return nil, err
	}
	return m.views(), nil
}

func (m *mockProductRepository) FindViewsByCategoryID(ctx context.Context, categoryID int) ([]domain.ProductView, error) {
	if err := m.record("FindViewsByCategoryID"); err != nil {
		return nil, err
	}
	out := []domain.ProductView{}
	for _, v := range m.views() {
		if v.CategoryID == categoryID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockProductRepository) FindViewsByDateInterval(ctx context.Context, begin, end domain.Date) ([]domain.ProductView, error) {
	if err := m.record("FindViewsByDateInterval"); err != nil {
		return nil, err
	}
	out := []domain.ProductView{}
	for _, v := range m.views() {
		if !v.DateAdded.Before(begin) && !v.DateAdded.After(end) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockProductRepository) FindViewsByDateIntervalAndCategory(ctx context.Context, begin, end domain.Date, categoryID int) ([]domain.ProductView, error) {
	if err := m.record("FindViewsByDateIntervalAndCategory"); err != nil {
		return nil, err
	}
	out := []domain.ProductView{}
	for _, v := range m.views() {
		if v.CategoryID == categoryID && !v.DateAdded.Before(begin) && !v.DateAdded.After(end) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockProductRepository) Add(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if err := m.record("Add"); err != nil {
		return nil, err
	}
	product.ID = m.nextID
	m.nextID++
	m.products[product.ID] = product
	return &product, nil
}

func (m *mockProductRepository) Update(ctx context.Context, product domain.Product) error {
	if err := m.record("Update"); err != nil {
		return err
	}
	if _, ok := m.products[product.ID]; !ok {
		return domain.NotFound("Failed to update product in DB")
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id int) error {
	if err := m.record("Delete"); err != nil {
		return err
	}
	if _, ok := m.products[id]; !ok {
		return domain.NotFound("Failed to delete product in DB")
	}
	delete(m.products, id)
	return nil
}
