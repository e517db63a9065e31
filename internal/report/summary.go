// Package report computes totals and category breakdowns over records.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/spice-tracker/internal/model"
)

// DisplayPlaces is the number of decimal places totals are rounded to.
const DisplayPlaces = 2

// Summary holds the totals of a set of records. Expense is a magnitude.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// CategoryAmount is the total of one category.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// Summarize totals income and expense. Sums are accumulated exactly and
// rounded only once at the end; Balance is derived from the rounded totals
// so that Balance == Income - Expense always holds.
func Summarize(records []model.Record) Summary {
	income := decimal.Zero
	expense := decimal.Zero

	for _, r := range records {
		signed := decimal.NewFromFloat(r.SignedAmount())
		switch signed.Sign() {
		case 1:
			income = income.Add(signed)
		case -1:
			expense = expense.Add(signed)
		}
	}

	income = income.Round(DisplayPlaces)
	expense = expense.Abs().Round(DisplayPlaces)

	return Summary{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}

// GroupByCategory sums the amount of each category among records of the
// given type. Categories without records are absent from the result.
func GroupByCategory(records []model.Record, t model.TransactionType) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, r := range records {
		if r.Type != t {
			continue
		}
		totals[r.Category] = totals[r.Category].Add(decimal.NewFromFloat(r.Amount))
	}
	for name, total := range totals {
		totals[name] = total.Round(DisplayPlaces)
	}
	return totals
}

// SortedCategories orders a category mapping by amount, largest first,
// with ties broken by name.
func SortedCategories(totals map[string]decimal.Decimal) []CategoryAmount {
	out := make([]CategoryAmount, 0, len(totals))
	for name, amount := range totals {
		out = append(out, CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}
