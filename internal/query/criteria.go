// Package query derives display lists from the record collection.
package query

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spice-tracker/internal/model"
)

// TypeFilter selects records by type. TypeAll matches every record.
type TypeFilter string

// Type filter values.
const (
	TypeAll     TypeFilter = "All"
	TypeExpense TypeFilter = TypeFilter(model.TypeExpense)
	TypeIncome  TypeFilter = TypeFilter(model.TypeIncome)
)

// CategoryAll matches every category.
const CategoryAll = "All"

// SortOrder names the ordering applied to a result.
type SortOrder string

// Sort orders. DateDesc is the default.
const (
	DateDesc  SortOrder = "DateDesc"
	DateAsc   SortOrder = "DateAsc"
	PriceDesc SortOrder = "PriceDesc"
	PriceAsc  SortOrder = "PriceAsc"
)

// SortOrders lists every sort order in cycling order.
var SortOrders = []SortOrder{DateDesc, DateAsc, PriceDesc, PriceAsc}

// Criteria is the set of active filter, sort and search parameters.
// The zero value selects everything, newest first.
type Criteria struct {
	Type      TypeFilter
	Category  string
	Sort      SortOrder
	StartDate model.Date
	EndDate   model.Date
	Search    string
}

func (c Criteria) typeFilter() TypeFilter {
	if c.Type == "" {
		return TypeAll
	}
	return c.Type
}

func (c Criteria) sortOrder() SortOrder {
	if c.Sort == "" {
		return DateDesc
	}
	return c.Sort
}

func (c Criteria) allCategories() bool {
	return c.Category == "" || c.Category == CategoryAll
}

// ParseType maps user input to a type filter. Accepts "all", "all types",
// "expense" and "income" in any case.
func ParseType(s string) (TypeFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "all types":
		return TypeAll, nil
	case "expense":
		return TypeExpense, nil
	case "income":
		return TypeIncome, nil
	}
	return "", fmt.Errorf("unknown type %q: expected all, expense or income", s)
}

// ParseSort maps user input to a sort order. Accepts the canonical names
// ("DateDesc") and dashed forms ("date-desc") in any case.
func ParseSort(s string) (SortOrder, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
	if normalized == "" {
		return DateDesc, nil
	}
	for _, o := range SortOrders {
		if strings.ToLower(string(o)) == normalized {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown sort %q: expected date-desc, date-asc, price-desc or price-asc", s)
}

// Next returns the order after o in SortOrders, wrapping around.
func (o SortOrder) Next() SortOrder {
	if o == "" {
		o = DateDesc
	}
	for i, s := range SortOrders {
		if s == o {
			return SortOrders[(i+1)%len(SortOrders)]
		}
	}
	return DateDesc
}

// Label is a human readable description of the order.
func (o SortOrder) Label() string {
	switch o {
	case DateAsc:
		return "Date (Oldest First)"
	case PriceDesc:
		return "Price (High to Low)"
	case PriceAsc:
		return "Price (Low to High)"
	default:
		return "Date (Newest First)"
	}
}
