package query

import (
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/spice-tracker/internal/model"
)

// Apply filters by type and category, sorts, applies the date range and
// finally the description search. The input slice is never modified.
func Apply(records []model.Record, c Criteria) []model.Record {
	result := filterTypeAndCategory(records, c)
	sortRecords(result, c.sortOrder())
	result = filterDateRange(result, c.StartDate, c.EndDate)
	return filterSearch(result, c.Search)
}

func filterTypeAndCategory(records []model.Record, c Criteria) []model.Record {
	typ := c.typeFilter()
	result := make([]model.Record, 0, len(records))
	for _, r := range records {
		if typ != TypeAll && TypeFilter(r.Type) != typ {
			continue
		}
		if !c.allCategories() && r.Category != c.Category {
			continue
		}
		result = append(result, r)
	}
	return result
}

// sortRecords orders in place. Ties fall back to id ascending, and records
// with malformed dates go last under either date order.
func sortRecords(records []model.Record, order SortOrder) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		var cmp int
		switch order {
		case DateAsc:
			cmp = compareDates(a.Date, b.Date, false)
		case PriceDesc:
			cmp = compareAmounts(b.Amount, a.Amount)
		case PriceAsc:
			cmp = compareAmounts(a.Amount, b.Amount)
		default:
			cmp = compareDates(a.Date, b.Date, true)
		}
		if cmp != 0 {
			return cmp < 0
		}
		return a.ID < b.ID
	})
}

func compareDates(a, b model.Date, desc bool) int {
	at, aok := a.Time()
	bt, bok := b.Time()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}
	cmp := at.Compare(bt)
	if desc {
		return -cmp
	}
	return cmp
}

func compareAmounts(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func filterDateRange(records []model.Record, start, end model.Date) []model.Record {
	if start.IsZero() && end.IsZero() {
		return records
	}

	var from, to time.Time
	if !start.IsZero() {
		t, ok := start.Time()
		if !ok {
			return []model.Record{}
		}
		from = t
	}
	if !end.IsZero() {
		t, ok := end.Time()
		if !ok {
			return []model.Record{}
		}
		to = t
	}

	result := make([]model.Record, 0, len(records))
	for _, r := range records {
		day, ok := r.Date.Time()
		if !ok {
			continue
		}
		if !start.IsZero() && day.Before(from) {
			continue
		}
		// Both sides are midnight of their day, so this keeps records
		// dated on the end day itself.
		if !end.IsZero() && day.After(to) {
			continue
		}
		result = append(result, r)
	}
	return result
}

func filterSearch(records []model.Record, search string) []model.Record {
	if strings.TrimSpace(search) == "" {
		return records
	}
	needle := strings.ToLower(search)
	result := make([]model.Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Desc), needle) {
			result = append(result, r)
		}
	}
	return result
}
