package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/spice-tracker/internal/model"
	"github.com/Veraticus/spice-tracker/internal/report"
)

// DefaultBarWidth is the width of the longest category bar.
const DefaultBarWidth = 30

// FormatMoney renders d with two decimals and thousands separators.
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(report.DisplayPlaces)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return sign + b.String() + "." + frac
}

// FormatSignedAmount renders a record's amount with the sign of its type.
func FormatSignedAmount(r model.Record) string {
	d := decimal.NewFromFloat(r.Amount)
	if r.Type == model.TypeExpense {
		return ExpenseStyle.Render("-" + FormatMoney(d))
	}
	return IncomeStyle.Render("+" + FormatMoney(d))
}

// WriteRecords prints records as an aligned table, in the order given.
func WriteRecords(w io.Writer, records []model.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := []string{"ID", "DATE", "TYPE", "CATEGORY", "DESCRIPTION", "AMOUNT"}
	for i, h := range header {
		header[i] = BoldStyle.Render(h)
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return err
	}

	for _, r := range records {
		_, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.Date,
			r.Type,
			r.Category,
			r.Desc,
			FormatSignedAmount(r))
		if err != nil {
			return err
		}
	}

	return tw.Flush()
}

// RenderSummary renders the totals box.
func RenderSummary(s report.Summary) string {
	balanceStyle := IncomeStyle
	if s.Balance.IsNegative() {
		balanceStyle = ExpenseStyle
	}

	content := strings.Join([]string{
		fmt.Sprintf("Income:   %s", IncomeStyle.Render(FormatMoney(s.Income))),
		fmt.Sprintf("Expense:  %s", ExpenseStyle.Render(FormatMoney(s.Expense))),
		fmt.Sprintf("Balance:  %s", balanceStyle.Render(FormatMoney(s.Balance))),
	}, "\n")

	return RenderBox(ChartIcon+" Summary", content)
}

// RenderCategoryBars draws one bar per category, scaled so the largest
// amount fills width cells.
func RenderCategoryBars(amounts []report.CategoryAmount, width int) string {
	if len(amounts) == 0 {
		return SubtleStyle.Render("No records")
	}
	if width <= 0 {
		width = DefaultBarWidth
	}

	total := decimal.Zero
	largest := decimal.Zero
	nameWidth := 0
	for _, ca := range amounts {
		total = total.Add(ca.Amount)
		if ca.Amount.GreaterThan(largest) {
			largest = ca.Amount
		}
		nameWidth = max(nameWidth, len(ca.Name))
	}

	var b strings.Builder
	for _, ca := range amounts {
		cells := 0
		if largest.IsPositive() {
			cells = int(ca.Amount.Mul(decimal.NewFromInt(int64(width))).Div(largest).Round(0).IntPart())
		}
		if cells == 0 && ca.Amount.IsPositive() {
			cells = 1
		}

		share := decimal.Zero
		if total.IsPositive() {
			share = ca.Amount.Mul(decimal.NewFromInt(100)).Div(total)
		}

		fmt.Fprintf(&b, "%-*s  %s%s  %s (%s%%)\n",
			nameWidth, ca.Name,
			BarStyle.Render(strings.Repeat("█", cells)),
			strings.Repeat(" ", width-cells),
			FormatMoney(ca.Amount),
			share.StringFixed(1))
	}

	return strings.TrimSuffix(b.String(), "\n")
}
