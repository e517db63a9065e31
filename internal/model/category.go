package model

import "strings"

// TransactionType indicates whether a record is money going out or coming in.
type TransactionType string

const (
	// TypeExpense represents money spent.
	TypeExpense TransactionType = "Expense"
	// TypeIncome represents money received.
	TypeIncome TransactionType = "Income"
)

var (
	expenseCategories = []string{
		"House",
		"Transportation",
		"Shopping",
		"Food",
		"Bills",
		"Healthcare",
		"Travel",
		"Entertainment",
		"Other Expense",
	}

	incomeCategories = []string{
		"Salary",
		"Investment",
		"Freelance",
		"Rent",
		"Other Income",
	}
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeExpense || t == TypeIncome
}

// ParseTransactionType resolves user input such as "expense" or "INCOME".
func ParseTransactionType(s string) (TransactionType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense":
		return TypeExpense, true
	case "income":
		return TypeIncome, true
	}
	return "", false
}

// Categories returns the category set for the given type, in display order.
func Categories(t TransactionType) []string {
	switch t {
	case TypeExpense:
		return append([]string(nil), expenseCategories...)
	case TypeIncome:
		return append([]string(nil), incomeCategories...)
	}
	return nil
}

// AllCategories returns expense categories followed by income categories.
func AllCategories() []string {
	all := make([]string, 0, len(expenseCategories)+len(incomeCategories))
	all = append(all, expenseCategories...)
	return append(all, incomeCategories...)
}

// DefaultCategory is the category a record falls back to when its type changes.
func DefaultCategory(t TransactionType) string {
	switch t {
	case TypeExpense:
		return expenseCategories[0]
	case TypeIncome:
		return incomeCategories[0]
	}
	return ""
}

// IsValidCategory reports whether category belongs to the set fixed by t.
func IsValidCategory(t TransactionType, category string) bool {
	for _, c := range Categories(t) {
		if c == category {
			return true
		}
	}
	return false
}

// LookupCategory matches user input against the category names of t
// without regard to case and returns the canonical spelling.
func LookupCategory(t TransactionType, input string) (string, bool) {
	input = strings.TrimSpace(input)
	for _, c := range Categories(t) {
		if strings.EqualFold(c, input) {
			return c, true
		}
	}
	return "", false
}

// TypeOfCategory returns the type whose set contains category.
func TypeOfCategory(category string) (TransactionType, bool) {
	if IsValidCategory(TypeExpense, category) {
		return TypeExpense, true
	}
	if IsValidCategory(TypeIncome, category) {
		return TypeIncome, true
	}
	return "", false
}
