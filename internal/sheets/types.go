package sheets

import (
	"context"
	"time"

	"github.com/Veraticus/spice-tracker/internal/model"
	"github.com/Veraticus/spice-tracker/internal/report"
)

// ReportWriter writes a report somewhere outside the tracker.
type ReportWriter interface {
	Write(ctx context.Context, r Report) error
}

// Report is a query result together with its totals.
type Report struct {
	Generated time.Time
	Filter    string
	Records   []model.Record
	Expenses  []report.CategoryAmount
	Income    []report.CategoryAmount
	Summary   report.Summary
}

// NewReport totals records, which are kept in the order given.
func NewReport(records []model.Record, filter string, generated time.Time) Report {
	return Report{
		Generated: generated,
		Filter:    filter,
		Records:   records,
		Summary:   report.Summarize(records),
		Expenses:  report.SortedCategories(report.GroupByCategory(records, model.TypeExpense)),
		Income:    report.SortedCategories(report.GroupByCategory(records, model.TypeIncome)),
	}
}
