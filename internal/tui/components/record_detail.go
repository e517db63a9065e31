package components

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/spice-tracker/internal/model"
	"github.com/Veraticus/spice-tracker/internal/tui/themes"
)

// RecordDetailModel shows every field of one record.
type RecordDetailModel struct {
	theme  themes.Theme
	record model.Record
}

// NewRecordDetail creates a detail view for r.
func NewRecordDetail(r model.Record, theme themes.Theme) RecordDetailModel {
	return RecordDetailModel{record: r, theme: theme}
}

// Record returns the record shown.
func (m RecordDetailModel) Record() model.Record {
	return m.record
}

// Update returns to the list on esc, enter or q.
func (m RecordDetailModel) Update(msg tea.Msg) (RecordDetailModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "enter", "q":
			return m, func() tea.Msg { return BackToListMsg{} }
		}
	}
	return m, nil
}

// View renders the record in a box.
func (m RecordDetailModel) View() string {
	r := m.record

	amount := m.theme.Income
	if r.Type == model.TypeExpense {
		amount = m.theme.Expense
	}

	desc := r.Desc
	if desc == "" {
		desc = lipgloss.NewStyle().Foreground(m.theme.Muted).Render("(none)")
	}

	label := m.theme.Bold.Width(13).Render
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render(fmt.Sprintf("Record %d", r.ID)),
		"",
		label("Date")+r.Date.String(),
		label("Type")+string(r.Type),
		label("Category")+themes.GetCategoryIcon(r.Category)+" "+r.Category,
		label("Description")+desc,
		label("Amount")+amount.Render(FormatAmount(r)),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("[Esc] Back"),
	)

	return m.theme.RoundedBox.Render(content)
}
