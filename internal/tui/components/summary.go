package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spice-tracker/internal/cli"
	"github.com/Veraticus/spice-tracker/internal/report"
	"github.com/Veraticus/spice-tracker/internal/tui/themes"
)

// SummaryModel renders the totals of the records on screen.
type SummaryModel struct {
	theme   themes.Theme
	summary report.Summary
	count   int
}

// NewSummary creates an empty summary footer.
func NewSummary(theme themes.Theme) SummaryModel {
	return SummaryModel{theme: theme}
}

// SetTheme restyles the footer.
func (m *SummaryModel) SetTheme(theme themes.Theme) {
	m.theme = theme
}

// SetSummary updates the totals shown.
func (m *SummaryModel) SetSummary(s report.Summary, count int) {
	m.summary = s
	m.count = count
}

// Summary returns the totals shown.
func (m SummaryModel) Summary() report.Summary {
	return m.summary
}

// View renders the footer on one line.
func (m SummaryModel) View() string {
	balance := m.theme.Income
	if m.summary.Balance.IsNegative() {
		balance = m.theme.Expense
	}

	parts := []string{
		fmt.Sprintf("%d records", m.count),
		"Income " + m.theme.Income.Render(cli.FormatMoney(m.summary.Income)),
		"Expense " + m.theme.Expense.Render(cli.FormatMoney(m.summary.Expense)),
		"Balance " + balance.Render(cli.FormatMoney(m.summary.Balance)),
	}

	return m.theme.RoundedBox.Render(strings.Join(parts, "  │  "))
}
