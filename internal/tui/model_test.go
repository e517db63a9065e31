package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/spice-tracker/internal/common"
	"github.com/Veraticus/spice-tracker/internal/ledger"
	"github.com/Veraticus/spice-tracker/internal/model"
	"github.com/Veraticus/spice-tracker/internal/query"
	"github.com/Veraticus/spice-tracker/internal/storage"
	"github.com/Veraticus/spice-tracker/internal/testutil"
	"github.com/Veraticus/spice-tracker/internal/testutil/records"
	"github.com/Veraticus/spice-tracker/internal/tui/components"
	"github.com/Veraticus/spice-tracker/internal/tui/themes"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) (Model, *ledger.Ledger, *storage.MemoryStorage) {
	t.Helper()

	store := storage.NewMemoryStorage()
	testutil.SeedRecords(t, store, records.NewBuilder().WithFixture(records.FixtureMarch).Build())

	l, err := ledger.Open(context.Background(), store,
		ledger.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)

	m, err := New(WithStore(l), WithSize(120, 30))
	require.NoError(t, err)
	return m, l, store
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func ids(recs []model.Record) []int64 {
	out := make([]int64, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestModel_InitialView(t *testing.T) {
	m, _, _ := newTestModel(t)

	assert.Equal(t, []int64{2, 4, 3, 1}, ids(m.Records()))
	assert.True(t, m.Summary().Income.Equal(decimal.RequireFromString("1300")))
	assert.True(t, m.Summary().Expense.Equal(decimal.RequireFromString("245.5")))
	assert.True(t, m.Summary().Balance.Equal(decimal.RequireFromString("1054.5")))

	view := m.View()
	assert.Contains(t, view, "Spice Tracker")
	assert.Contains(t, view, "Type: All")
	assert.Contains(t, view, "Date (Newest First)")
	assert.Contains(t, view, "Groceries")
	assert.Contains(t, view, "1,054.50")
}

func TestModel_CycleType(t *testing.T) {
	tests := []struct {
		name     string
		presses  int
		expected query.TypeFilter
		ids      []int64
	}{
		{name: "expense", presses: 1, expected: query.TypeExpense, ids: []int64{2, 3}},
		{name: "income", presses: 2, expected: query.TypeIncome, ids: []int64{4, 1}},
		{name: "back to all", presses: 3, expected: query.TypeAll, ids: []int64{2, 4, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := newTestModel(t)
			for i := 0; i < tt.presses; i++ {
				m = press(m, "t")
			}

			assert.Equal(t, tt.expected, m.Criteria().Type)
			assert.Equal(t, tt.ids, ids(m.Records()))
		})
	}
}

func TestModel_SummaryFollowsDisplayList(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(m, "t")

	assert.True(t, m.Summary().Income.IsZero())
	assert.True(t, m.Summary().Expense.Equal(decimal.RequireFromString("245.5")))
	assert.True(t, m.Summary().Balance.Equal(decimal.RequireFromString("-245.5")))
}

func TestModel_CycleCategory(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(m, "t", "c")
	assert.Equal(t, "House", m.Criteria().Category)
	assert.Empty(t, m.Records())
	assert.Contains(t, m.View(), "No records match")

	m = press(m, "c", "c", "c")
	assert.Equal(t, "Food", m.Criteria().Category)
	assert.Equal(t, []int64{2}, ids(m.Records()))

	// Changing type resets the category.
	m = press(m, "t")
	assert.Empty(t, m.Criteria().Category)
	assert.Equal(t, []int64{4, 1}, ids(m.Records()))
}

func TestModel_CycleSort(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(m, "s")
	assert.Equal(t, query.DateAsc, m.Criteria().Sort)
	assert.Equal(t, []int64{1, 3, 4, 2}, ids(m.Records()))

	m = press(m, "s")
	assert.Equal(t, query.PriceDesc, m.Criteria().Sort)
	assert.Equal(t, []int64{1, 4, 2, 3}, ids(m.Records()))

	m = press(m, "s")
	assert.Equal(t, []int64{3, 2, 4, 1}, ids(m.Records()))
	assert.Contains(t, m.View(), "Price (Low to High)")
}

func TestModel_CycleSortAfterReset(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(m, "s", "s", "r")
	assert.Equal(t, query.Criteria{}, m.Criteria())
	assert.Equal(t, []int64{2, 4, 3, 1}, ids(m.Records()))

	m = press(m, "s")
	assert.Equal(t, query.DateAsc, m.Criteria().Sort)
	assert.Equal(t, []int64{1, 3, 4, 2}, ids(m.Records()))
}

func TestModel_LiveSearch(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(m, "/")
	assert.Equal(t, StateSearch, m.State())

	// Keys that are bindings elsewhere are plain text while searching.
	m = press(m, "g", "r", "o")
	assert.Equal(t, "gro", m.Criteria().Search)
	assert.Equal(t, []int64{2}, ids(m.Records()))

	m = press(m, "backspace", "backspace", "backspace", "p", "a")
	assert.Equal(t, []int64{3, 1}, ids(m.Records()))

	m = press(m, "y", "enter")
	assert.Equal(t, StateBrowse, m.State())
	assert.Equal(t, "pay", m.Criteria().Search)
	assert.Equal(t, []int64{1}, ids(m.Records()))
	assert.Contains(t, m.View(), `Search: "pay"`)

	m = press(m, "esc")
	assert.Empty(t, m.Criteria().Search)
	assert.Len(t, m.Records(), 4)
}

func TestModel_SearchEscClears(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(m, "/", "b", "u", "s", "esc")
	assert.Equal(t, StateBrowse, m.State())
	assert.Empty(t, m.Criteria().Search)
	assert.Len(t, m.Records(), 4)
}

func TestModel_Reset(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(m, "t", "s", "r")
	assert.Equal(t, query.Criteria{}, m.Criteria())
	assert.Len(t, m.Records(), 4)
}

func TestModel_DeleteConfirmed(t *testing.T) {
	m, l, _ := newTestModel(t)

	m = press(m, "x")
	assert.Equal(t, StateConfirmDelete, m.State())
	assert.Contains(t, m.View(), "Delete record 2")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, StateBrowse, m.State())

	msg := cmd()
	deleted, ok := msg.(recordDeletedMsg)
	require.True(t, ok)
	require.NoError(t, deleted.err)

	next, _ = m.Update(msg)
	m = next.(Model)

	assert.Equal(t, []int64{4, 3, 1}, ids(m.Records()))
	_, err := l.Get(2)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Contains(t, m.View(), "Deleted record 2")
}

func TestModel_DeleteOnSQLite(t *testing.T) {
	l := testutil.SetupTestLedger(t,
		records.NewBuilder().WithFixture(records.FixtureMarch).Build(),
		ledger.WithClock(func() time.Time { return testNow }))

	m, err := New(WithStore(l), WithSize(120, 30))
	require.NoError(t, err)

	m = press(m, "down", "x")
	assert.Contains(t, m.View(), "Delete record 4")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	m = next.(Model)
	require.NotNil(t, cmd)

	next, _ = m.Update(cmd())
	m = next.(Model)

	assert.Equal(t, []int64{2, 3, 1}, ids(m.Records()))
	assert.Equal(t, "754.50", m.Summary().Balance.StringFixed(2))
}

func TestModel_DeleteCanceled(t *testing.T) {
	m, l, _ := newTestModel(t)

	m = press(m, "down", "x", "n")
	assert.Equal(t, StateBrowse, m.State())
	assert.Len(t, m.Records(), 4)
	assert.Len(t, l.Records(), 4)
	assert.Contains(t, m.View(), "Delete canceled")
}

func TestModel_DeleteFails(t *testing.T) {
	m, l, store := newTestModel(t)
	store.FailSaves(errors.New("disk full"))

	next, cmd := press(m, "x").Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	m = next.(Model)
	require.NotNil(t, cmd)

	next, _ = m.Update(cmd())
	m = next.(Model)

	assert.Len(t, m.Records(), 4)
	assert.Len(t, l.Records(), 4)
	assert.Contains(t, m.View(), "Failed to delete record 2")
}

func TestModel_StatusExpires(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(m, "x", "n")
	require.Contains(t, m.View(), "Delete canceled")

	// An older tick does not clear a newer message.
	next, _ := m.Update(clearStatusMsg{seq: m.statusSeq - 1})
	m = next.(Model)
	assert.Contains(t, m.View(), "Delete canceled")

	next, _ = m.Update(clearStatusMsg{seq: m.statusSeq})
	m = next.(Model)
	assert.NotContains(t, m.View(), "Delete canceled")
}

func TestModel_ToggleTheme(t *testing.T) {
	m, l, _ := newTestModel(t)
	assert.Equal(t, "light", m.Theme().Name)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("T")})
	m = next.(Model)
	assert.Equal(t, "dark", m.Theme().Name)
	require.NotNil(t, cmd)

	msg := cmd()
	next, _ = m.Update(msg)
	m = next.(Model)
	assert.Contains(t, m.View(), "Theme set to dark")

	stored, err := l.Theme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ledger.ThemeDark, stored)
}

func TestModel_Details(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.NotNil(t, cmd)

	next, _ = m.Update(cmd())
	m = next.(Model)
	assert.Equal(t, StateDetail, m.State())
	assert.Contains(t, m.View(), "Record 2")

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.IsType(t, components.BackToListMsg{}, cmd())

	next, _ = m.Update(cmd())
	m = next.(Model)
	assert.Equal(t, StateBrowse, m.State())
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		t.Run(k.String(), func(t *testing.T) {
			m, _, _ := newTestModel(t)
			next, cmd := m.Update(k)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
			assert.Empty(t, next.View())
		})
	}
}

func TestModel_WindowResize(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 15})
	m = next.(Model)
	assert.Equal(t, 60, m.width)
	assert.Equal(t, 15, m.height)
	assert.NotEmpty(t, m.View())
}

func TestWithOptions(t *testing.T) {
	l, err := ledger.Open(context.Background(), storage.NewMemoryStorage())
	require.NoError(t, err)

	criteria := query.Criteria{Type: query.TypeIncome, Search: "pay"}
	m, err := New(WithStore(l), WithTheme(themes.Dark), WithCriteria(criteria), WithHelp(false))
	require.NoError(t, err)

	assert.Equal(t, "dark", m.Theme().Name)
	assert.Equal(t, criteria, m.Criteria())
	assert.Equal(t, "pay", m.search.Value())
	assert.NotContains(t, m.View(), "cycle sort")
}

func TestNextCategory(t *testing.T) {
	tests := []struct {
		name     string
		t        query.TypeFilter
		current  string
		expected string
	}{
		{name: "all starts at first expense", t: query.TypeAll, current: "", expected: "House"},
		{name: "income starts at salary", t: query.TypeIncome, current: "All", expected: "Salary"},
		{name: "advances", t: query.TypeIncome, current: "Salary", expected: "Investment"},
		{name: "wraps to all", t: query.TypeIncome, current: "Other Income", expected: query.CategoryAll},
		{name: "unknown goes to all", t: query.TypeExpense, current: "Salary", expected: query.CategoryAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, nextCategory(tt.t, tt.current))
		})
	}
}
