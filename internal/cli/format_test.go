package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/spice-tracker/internal/model"
	"github.com/Veraticus/spice-tracker/internal/report"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "0", expected: "0.00"},
		{input: "5.5", expected: "5.50"},
		{input: "999.999", expected: "1,000.00"},
		{input: "1234.56", expected: "1,234.56"},
		{input: "1234567.891", expected: "1,234,567.89"},
		{input: "-42", expected: "-42.00"},
		{input: "-123456.7", expected: "-123,456.70"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMoney(decimal.RequireFromString(tt.input)))
		})
	}
}

func TestFormatSignedAmount(t *testing.T) {
	expense := model.Record{Type: model.TypeExpense, Amount: 12.5}
	income := model.Record{Type: model.TypeIncome, Amount: 1500}

	assert.Contains(t, FormatSignedAmount(expense), "-12.50")
	assert.Contains(t, FormatSignedAmount(income), "+1,500.00")
}

func TestWriteRecords(t *testing.T) {
	records := []model.Record{
		{ID: 2, Type: model.TypeIncome, Category: "Salary", Desc: "Pay", Date: "2024-03-01", Amount: 2000},
		{ID: 1, Type: model.TypeExpense, Category: "Food", Desc: "Groceries", Date: "2024-03-02", Amount: 54.3},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.NotContains(t, lines[0], "─")
	for _, h := range []string{"ID", "DATE", "TYPE", "CATEGORY", "DESCRIPTION", "AMOUNT"} {
		assert.Contains(t, lines[0], h)
	}
	assert.Contains(t, lines[1], "Pay")
	assert.Contains(t, lines[1], "+2,000.00")
	assert.Contains(t, lines[2], "Groceries")
	assert.Contains(t, lines[2], "-54.30")
}

func TestWriteRecords_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, nil))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(report.Summary{
		Income:  decimal.RequireFromString("100"),
		Expense: decimal.RequireFromString("150.25"),
		Balance: decimal.RequireFromString("-50.25"),
	})

	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "100.00")
	assert.Contains(t, out, "150.25")
	assert.Contains(t, out, "-50.25")
}

func TestRenderCategoryBars(t *testing.T) {
	amounts := []report.CategoryAmount{
		{Name: "Food", Amount: decimal.RequireFromString("300")},
		{Name: "Bills", Amount: decimal.RequireFromString("100")},
		{Name: "Travel", Amount: decimal.RequireFromString("0.01")},
	}

	out := RenderCategoryBars(amounts, 10)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, 10, strings.Count(lines[0], "█"))
	assert.Equal(t, 3, strings.Count(lines[1], "█"))
	assert.Equal(t, 1, strings.Count(lines[2], "█"), "tiny amounts still get a cell")

	assert.Contains(t, lines[0], "300.00")
	assert.Contains(t, lines[0], "75.0%")
	assert.Contains(t, lines[1], "25.0%")
}

func TestRenderCategoryBars_Empty(t *testing.T) {
	assert.Contains(t, RenderCategoryBars(nil, 10), "No records")
}
