// Package tui implements the interactive record browser.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/spice-tracker/internal/common"
	"github.com/Veraticus/spice-tracker/internal/model"
	"github.com/Veraticus/spice-tracker/internal/query"
	"github.com/Veraticus/spice-tracker/internal/report"
	"github.com/Veraticus/spice-tracker/internal/tui/components"
	"github.com/Veraticus/spice-tracker/internal/tui/themes"
)

// State represents the current state of the TUI.
type State int

// Browser states.
const (
	StateBrowse State = iota
	StateSearch
	StateConfirmDelete
	StateDetail
)

// Model holds the main TUI state.
type Model struct {
	store         Store
	theme         themes.Theme
	keymap        KeyMap
	help          help.Model
	search        textinput.Model
	table         components.RecordTableModel
	detail        components.RecordDetailModel
	summary       components.SummaryModel
	criteria      query.Criteria
	records       []model.Record
	pendingDelete model.Record
	config        Config
	status        string
	statusErr     bool
	statusSeq     int
	width         int
	height        int
	state         State
	quitting      bool
}

// New creates a browser over the store. The store is queried immediately,
// so the first frame already shows records.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Store == nil {
		return Model{}, fmt.Errorf("%w: browser needs a record store", common.ErrInvalidConfig)
	}

	m := newModel(cfg)
	m.refresh()
	return m, nil
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search descriptions..."
	search.CharLimit = 50
	search.SetValue(cfg.Criteria.Search)

	m := Model{
		store:    cfg.Store,
		config:   cfg,
		theme:    cfg.Theme,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		search:   search,
		table:    components.NewRecordTable(cfg.Theme),
		summary:  components.NewSummary(cfg.Theme),
		criteria: cfg.Criteria,
		width:    cfg.Width,
		height:   cfg.Height,
		state:    StateBrowse,
	}
	m.handleResize()

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case recordDeletedMsg:
		if msg.err != nil {
			return m, m.setStatus(fmt.Sprintf("Failed to delete record %d: %v", msg.id, msg.err), true)
		}
		m.refresh()
		return m, m.setStatus(fmt.Sprintf("Deleted record %d", msg.id), false)

	case themeSavedMsg:
		if msg.err != nil {
			return m, m.setStatus(fmt.Sprintf("Failed to save theme: %v", msg.err), true)
		}
		return m, m.setStatus(fmt.Sprintf("Theme set to %s", msg.theme), false)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case components.RecordDetailsRequestMsg:
		m.detail = components.NewRecordDetail(msg.Record, m.theme)
		m.state = StateDetail
		return m, nil

	case components.BackToListMsg:
		m.state = StateBrowse
		return m, nil
	}

	return m, nil
}

// Criteria returns the criteria currently applied.
func (m Model) Criteria() query.Criteria {
	return m.criteria
}

// Records returns the records currently displayed.
func (m Model) Records() []model.Record {
	return m.records
}

// Summary returns the totals of the displayed records.
func (m Model) Summary() report.Summary {
	return m.summary.Summary()
}

// State returns the current state.
func (m Model) State() State {
	return m.state
}

// Theme returns the active theme.
func (m Model) Theme() themes.Theme {
	return m.theme
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StateSearch:
		return m.handleSearchKey(msg)
	case StateConfirmDelete:
		return m.handleConfirmKey(msg)
	case StateDetail:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.handleResize()
		return m, nil

	case key.Matches(msg, m.keymap.Search):
		m.state = StateSearch
		m.handleResize()
		return m, m.search.Focus()

	case key.Matches(msg, m.keymap.ClearSearch):
		if m.criteria.Search != "" {
			m.setSearch("")
		}
		return m, nil

	case key.Matches(msg, m.keymap.CycleType):
		m.criteria.Type = nextType(m.criteria.Type)
		m.criteria.Category = ""
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.CycleCategory):
		m.criteria.Category = nextCategory(m.criteria.Type, m.criteria.Category)
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.CycleSort):
		m.criteria.Sort = m.criteria.Sort.Next()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.criteria = query.Criteria{}
		m.search.SetValue("")
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.Delete):
		r, ok := m.table.Selected()
		if !ok {
			return m, nil
		}
		m.pendingDelete = r
		m.state = StateConfirmDelete
		return m, nil

	case key.Matches(msg, m.keymap.ToggleTheme):
		name := "dark"
		if m.theme.Name == "dark" {
			name = "light"
		}
		m.applyTheme(themes.GetTheme(name))
		return m, m.saveTheme(name)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.search.Blur()
		m.state = StateBrowse
		m.handleResize()
		return m, nil
	case tea.KeyEsc:
		m.search.Blur()
		m.state = StateBrowse
		m.setSearch("")
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.criteria.Search {
		m.criteria.Search = m.search.Value()
		m.refresh()
	}
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.state = StateBrowse
	if key.Matches(msg, m.keymap.Accept) {
		return m, m.deleteRecord(m.pendingDelete.ID)
	}
	return m, m.setStatus("Delete canceled", false)
}

// refresh re-runs the query and recomputes the totals of its result.
func (m *Model) refresh() {
	m.records = m.store.Query(m.criteria)
	m.table.SetRecords(m.records)
	m.summary.SetSummary(report.Summarize(m.records), len(m.records))
}

func (m *Model) setSearch(s string) {
	m.search.SetValue(s)
	m.criteria.Search = s
	m.refresh()
	m.handleResize()
}

func (m *Model) applyTheme(theme themes.Theme) {
	m.theme = theme
	m.table.SetTheme(theme)
	m.summary.SetTheme(theme)
}

func (m *Model) setStatus(status string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = status
	m.statusErr = isErr
	return clearStatusAfter(m.statusSeq, statusDuration)
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	m.help.Width = m.width

	// Title, criteria, summary box and status line.
	reserved := 7
	if m.config.ShowHelp {
		reserved++
		if m.help.ShowAll {
			reserved += 6
		}
	}
	if m.state == StateSearch || m.criteria.Search != "" {
		reserved++
	}

	m.table.Resize(m.width, m.height-reserved)
}

func nextType(t query.TypeFilter) query.TypeFilter {
	switch t {
	case query.TypeExpense:
		return query.TypeIncome
	case query.TypeIncome:
		return query.TypeAll
	default:
		return query.TypeExpense
	}
}

// nextCategory cycles through All and the categories the type allows.
func nextCategory(t query.TypeFilter, current string) string {
	var options []string
	switch t {
	case query.TypeExpense, query.TypeIncome:
		options = model.Categories(model.TransactionType(t))
	default:
		options = model.AllCategories()
	}

	if current == "" || current == query.CategoryAll {
		return options[0]
	}
	for i, c := range options {
		if c == current && i+1 < len(options) {
			return options[i+1]
		}
	}
	return query.CategoryAll
}
