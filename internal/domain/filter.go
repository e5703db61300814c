package domain

import "time"

var (
	// EarliestDate and LatestDate bound an open filter interval
	EarliestDate = NewDate(1970, time.January, 1)
	LatestDate   = NewDate(3000, time.January, 1)
)

// Filter narrows a product listing by category and date-added interval.
// Zero dates are unset; a nil CategoryID matches every category.
type Filter struct {
	CategoryID *int `json:"categoryId,omitempty"`
	DateBegin  Date `json:"dateBegin"`
	DateEnd    Date `json:"dateEnd"`
}

// WithDefaults returns a copy of f with unset dates replaced by begin and end
func (f Filter) WithDefaults(begin, end Date) Filter {
	if f.DateBegin.IsZero() {
		f.DateBegin = begin
	}
	if f.DateEnd.IsZero() {
		f.DateEnd = end
	}
	return f
}

// Bounded fills unset dates with the open interval bounds
func (f Filter) Bounded() Filter {
	return f.WithDefaults(EarliestDate, LatestDate)
}

// CurrentMonth fills unset dates with the first day of today's month and today
func (f Filter) CurrentMonth(today Date) Filter {
	return f.WithDefaults(today.FirstOfMonth(), today)
}

// HasValidInterval reports whether the interval is not inverted. Unset bounds are valid.
func (f Filter) HasValidInterval() bool {
	if f.DateBegin.IsZero() || f.DateEnd.IsZero() {
		return true
	}
	return !f.DateBegin.After(f.DateEnd)
}
