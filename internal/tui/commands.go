package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/spice-tracker/internal/ledger"
)

const (
	commandTimeout = 10 * time.Second
	statusDuration = 3 * time.Second
)

// deleteRecord removes a record from the store.
func (m Model) deleteRecord(id int64) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		return recordDeletedMsg{id: id, err: store.Delete(ctx, id)}
	}
}

// saveTheme stores the theme preference.
func (m Model) saveTheme(name string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		return themeSavedMsg{theme: name, err: store.SetTheme(ctx, ledger.Theme(name))}
	}
}

// clearStatusAfter expires the status message numbered seq.
func clearStatusAfter(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
