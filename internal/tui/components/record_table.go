// Package components holds the building blocks of the record browser.
package components

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/spice-tracker/internal/cli"
	"github.com/Veraticus/spice-tracker/internal/model"
	"github.com/Veraticus/spice-tracker/internal/tui/themes"
)

// Fixed column widths; Description takes what is left.
const (
	idWidth       = 14
	dateWidth     = 10
	typeWidth     = 7
	categoryWidth = 17
	amountWidth   = 13
	minDescWidth  = 12
)

// RecordTableModel shows a list of records, one per row.
type RecordTableModel struct {
	theme   themes.Theme
	records []model.Record
	table   table.Model
	width   int
	height  int
}

// NewRecordTable creates an empty, focused record table.
func NewRecordTable(theme themes.Theme) RecordTableModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
	)

	m := RecordTableModel{
		table:  t,
		width:  80,
		height: 10,
	}
	m.SetTheme(theme)
	m.updateColumns()

	return m
}

// SetTheme restyles the table.
func (m *RecordTableModel) SetTheme(theme themes.Theme) {
	m.theme = theme

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.Selected
	s.Cell = s.Cell.Foreground(theme.Foreground)
	m.table.SetStyles(s)
}

// SetRecords replaces the rows. The cursor stays in range.
func (m *RecordTableModel) SetRecords(records []model.Record) {
	m.records = records

	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, buildRow(r))
	}
	m.table.SetRows(rows)

	switch {
	case len(records) == 0:
		m.table.SetCursor(0)
	case m.table.Cursor() >= len(records):
		m.table.SetCursor(len(records) - 1)
	case m.table.Cursor() < 0:
		m.table.SetCursor(0)
	}
}

// Resize fits the table into width by height cells.
func (m *RecordTableModel) Resize(width, height int) {
	m.width = width
	m.height = max(height, 3)
	m.table.SetHeight(m.height)
	m.table.SetWidth(width)
	m.updateColumns()
}

// Selected returns the record under the cursor.
func (m RecordTableModel) Selected() (model.Record, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.records) {
		return model.Record{}, false
	}
	return m.records[i], true
}

// Cursor returns the row index under the cursor.
func (m RecordTableModel) Cursor() int {
	return m.table.Cursor()
}

// Len returns the number of rows.
func (m RecordTableModel) Len() int {
	return len(m.records)
}

// Update forwards navigation to the table. Enter asks for the selected
// record's details.
func (m RecordTableModel) Update(msg tea.Msg) (RecordTableModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEnter {
		r, found := m.Selected()
		if !found {
			return m, nil
		}
		return m, func() tea.Msg { return RecordDetailsRequestMsg{Record: r} }
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table.
func (m RecordTableModel) View() string {
	if len(m.records) == 0 {
		return lipgloss.NewStyle().
			Foreground(m.theme.Muted).
			Render("No records match the current filters")
	}
	return m.table.View()
}

func (m *RecordTableModel) updateColumns() {
	// Each column carries one cell of padding on both sides.
	fixed := idWidth + dateWidth + typeWidth + categoryWidth + amountWidth + 6*2
	desc := max(m.width-fixed, minDescWidth)

	m.table.SetColumns([]table.Column{
		{Title: "ID", Width: idWidth},
		{Title: "Date", Width: dateWidth},
		{Title: "Type", Width: typeWidth},
		{Title: "Category", Width: categoryWidth},
		{Title: "Description", Width: desc},
		{Title: "Amount", Width: amountWidth},
	})
}

func buildRow(r model.Record) table.Row {
	return table.Row{
		strconv.FormatInt(r.ID, 10),
		r.Date.String(),
		string(r.Type),
		themes.GetCategoryIcon(r.Category) + " " + r.Category,
		r.Desc,
		FormatAmount(r),
	}
}

// FormatAmount renders the record's amount signed by its type.
func FormatAmount(r model.Record) string {
	money := cli.FormatMoney(decimal.NewFromFloat(r.Amount))
	if r.Type == model.TypeExpense {
		return "-" + money
	}
	return "+" + money
}
