package web

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"catalog-manager/internal/domain"

	"github.com/go-playground/validator/v10"
)

var formValidator *validator.Validate

func init() {
	formValidator = validator.New(validator.WithRequiredStructEnabled())
	formValidator.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := field.Tag.Get("form"); name != "" {
			return name
		}
		return field.Name
	})
}

// formMessages holds the text shown next to a field, keyed by field.tag
var formMessages = map[string]string{
	"categoryName.required":  "Category name must not be empty",
	"categoryName.max":       "Category name must be at most 255 characters",
	"parentId.gte":           "Choose a parent category",
	"productName.required":   "Product name must not be empty",
	"productName.max":        "Product name must be at most 255 characters",
	"productAmount.required": "Product amount must be set",
	"productAmount.gte":      "Product amount must not be negative",
	"categoryId.gt":          "Choose a category",
}

// validateForm runs the validator and returns the messages per field
func validateForm(form any) map[string]string {
	errs := map[string]string{}

	var validationErrors validator.ValidationErrors
	if err := formValidator.Struct(form); errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			if _, seen := errs[e.Field()]; seen {
				continue
			}
			message, ok := formMessages[e.Field()+"."+e.Tag()]
			if !ok {
				message = "Invalid value"
			}
			errs[e.Field()] = message
		}
	}
	return errs
}

// parseID reads an optional numeric form value; blank means zero
func parseID(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

type categoryForm struct {
	ID       int
	Name     string `form:"categoryName" validate:"required,max=255"`
	ParentID int    `form:"parentId" validate:"gte=0"`
}

func parseCategoryForm(r *http.Request) (categoryForm, map[string]string) {
	form := categoryForm{Name: strings.TrimSpace(r.PostFormValue("categoryName"))}

	parentID, parseErr := parseID(r.PostFormValue("parentId"))
	form.ParentID = parentID

	errs := validateForm(form)
	if parseErr != nil {
		errs["parentId"] = formMessages["parentId.gte"]
	}
	return form, errs
}

func categoryFormOf(c domain.Category) categoryForm {
	form := categoryForm{ID: c.ID, Name: c.Name}
	if c.ParentID != nil {
		form.ParentID = *c.ParentID
	}
	return form
}

func (f categoryForm) toCategory() domain.Category {
	return domain.Category{ID: f.ID, Name: f.Name, ParentID: domain.ParentRef(f.ParentID)}
}

type productForm struct {
	ID         int
	Name       string      `form:"productName" validate:"required,max=255"`
	Amount     *int        `form:"productAmount" validate:"required,gte=0"`
	AmountRaw  string      `validate:"-"`
	CategoryID int         `form:"categoryId" validate:"gt=0"`
	DateAdded  domain.Date `validate:"-"`
}

func parseProductForm(r *http.Request) (productForm, map[string]string) {
	form := productForm{
		Name:      strings.TrimSpace(r.PostFormValue("productName")),
		AmountRaw: strings.TrimSpace(r.PostFormValue("productAmount")),
	}

	amountErr := false
	if form.AmountRaw != "" {
		amount, err := strconv.Atoi(form.AmountRaw)
		if err != nil {
			amountErr = true
		} else {
			form.Amount = &amount
		}
	}

	categoryID, categoryErr := parseID(r.PostFormValue("categoryId"))
	form.CategoryID = categoryID

	dateErr := false
	if raw := strings.TrimSpace(r.PostFormValue("dateAdded")); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			dateErr = true
		}
		form.DateAdded = d
	}

	errs := validateForm(form)
	if amountErr {
		errs["productAmount"] = "Product amount must be a whole number"
	}
	if categoryErr != nil {
		errs["categoryId"] = formMessages["categoryId.gt"]
	}
	if dateErr {
		errs["dateAdded"] = "Date must be formatted as YYYY-MM-DD"
	}
	return form, errs
}

func productFormOf(p domain.Product) productForm {
	amount := p.Amount
	return productForm{
		ID:         p.ID,
		Name:       p.Name,
		Amount:     &amount,
		AmountRaw:  strconv.Itoa(p.Amount),
		CategoryID: p.CategoryID,
		DateAdded:  p.DateAdded,
	}
}

func (f productForm) toProduct() domain.Product {
	p := domain.Product{ID: f.ID, Name: f.Name, CategoryID: f.CategoryID, DateAdded: f.DateAdded}
	if f.Amount != nil {
		p.Amount = *f.Amount
	}
	return p
}

// parseFilterForm reads dateBegin, dateEnd and categoryId from the query
// string or a posted form. Unset dates default to the current month.
func parseFilterForm(r *http.Request, today domain.Date) (domain.Filter, map[string]string) {
	var filter domain.Filter
	errs := map[string]string{}

	for _, field := range []struct {
		name string
		dest *domain.Date
	}{
		{"dateBegin", &filter.DateBegin},
		{"dateEnd", &filter.DateEnd},
	} {
		raw := strings.TrimSpace(r.FormValue(field.name))
		if raw == "" {
			continue
		}
		d, err := domain.ParseDate(raw)
		if err != nil {
			errs[field.name] = "Date must be formatted as YYYY-MM-DD"
			continue
		}
		*field.dest = d
	}

	id, err := parseID(r.FormValue("categoryId"))
	if err != nil || id < 0 {
		errs["categoryId"] = formMessages["categoryId.gt"]
	} else if id > 0 {
		filter.CategoryID = &id
	}

	filter = filter.CurrentMonth(today)
	if len(errs) == 0 && !filter.HasValidInterval() {
		errs["dateBegin"] = "Begin date must not be after end date"
	}
	return filter, errs
}
