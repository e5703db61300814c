package domain

// Category represents a node in the category tree. ParentID is nil for root categories.
type Category struct {
	ID       int    `json:"categoryId" db:"category_id"`
	Name     string `json:"categoryName" db:"category_name"`
	ParentID *int   `json:"parentId,omitempty" db:"parent_id"`
}

// IsRoot reports whether the category has no parent
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// CategoryWithCount is a read projection of a category annotated with the number of
// products attached to it or to its direct subcategories.
type CategoryWithCount struct {
	ID           int    `json:"categoryId" db:"category_id"`
	Name         string `json:"categoryName" db:"category_name"`
	ParentID     *int   `json:"parentId,omitempty" db:"parent_id"`
	ProductCount int    `json:"productCount" db:"product_count"`
}

// ParentRef returns a pointer suitable for Category.ParentID, treating
// non-positive ids as "no parent".
func ParentRef(id int) *int {
	if id <= 0 {
		return nil
	}
	return &id
}
