package domain

// Product represents an inventoried item in the catalog
type Product struct {
	ID         int    `json:"productId" db:"prod_id"`
	Name       string `json:"productName" db:"prod_name"`
	Amount     int    `json:"productAmount" db:"prod_amount"`
	DateAdded  Date   `json:"dateAdded" db:"date_added"`
	CategoryID int    `json:"categoryId" db:"category_id"`
}

// ProductView is a read projection of a product with the names of its
// category chain denormalized for listings.
type ProductView struct {
	ID              int    `json:"productId" db:"prod_id"`
	Name            string `json:"productName" db:"prod_name"`
	Amount          int    `json:"productAmount" db:"prod_amount"`
	DateAdded       Date   `json:"dateAdded" db:"date_added"`
	CategoryID      int    `json:"categoryId" db:"category_id"`
	CategoryName    string `json:"categoryName" db:"category_name"`
	SubCategoryName string `json:"subCategoryName" db:"subcategory_name"`
}
