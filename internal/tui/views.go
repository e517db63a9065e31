package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/spice-tracker/internal/cli"
	"github.com/Veraticus/spice-tracker/internal/query"
	"github.com/Veraticus/spice-tracker/internal/tui/components"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == StateDetail {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.renderHeader(),
			m.detail.View(),
		)
	}

	sections := []string{m.renderHeader()}
	if m.state == StateSearch || m.criteria.Search != "" {
		sections = append(sections, m.search.View())
	}
	sections = append(sections, m.table.View(), m.summary.View())
	if line := m.renderStatus(); line != "" {
		sections = append(sections, line)
	}
	if m.config.ShowHelp {
		sections = append(sections, m.help.View(m.keymap))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title and the active criteria.
func (m Model) renderHeader() string {
	title := m.theme.Title.Render(cli.SpiceIcon + " Spice Tracker")

	parts := []string{
		"Type: " + typeLabel(m.criteria.Type),
		"Category: " + categoryLabel(m.criteria.Category),
		"Sort: " + m.criteria.Sort.Label(),
	}
	if m.criteria.StartDate != "" || m.criteria.EndDate != "" {
		parts = append(parts, fmt.Sprintf("Dates: %s to %s",
			orDash(m.criteria.StartDate.String()), orDash(m.criteria.EndDate.String())))
	}
	if m.criteria.Search != "" {
		parts = append(parts, fmt.Sprintf("Search: %q", m.criteria.Search))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.theme.Subtitle.Render(strings.Join(parts, "  │  ")),
	)
}

// renderStatus renders the delete confirmation or the latest status message.
func (m Model) renderStatus() string {
	if m.state == StateConfirmDelete {
		r := m.pendingDelete
		return m.theme.StatusWarning.Render(fmt.Sprintf(
			"Delete record %d (%s %s on %s)? [y/N]",
			r.ID, r.Category, components.FormatAmount(r), r.Date))
	}

	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.theme.StatusError.Render(cli.ErrorIcon + " " + m.status)
	}
	return m.theme.StatusSuccess.Render(cli.SuccessIcon + " " + m.status)
}

func typeLabel(t query.TypeFilter) string {
	if t == "" {
		return string(query.TypeAll)
	}
	return string(t)
}

func categoryLabel(c string) string {
	if c == "" {
		return query.CategoryAll
	}
	return c
}

func orDash(s string) string {
	if s == "" {
		return "any"
	}
	return s
}
