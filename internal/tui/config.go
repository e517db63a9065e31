package tui

import (
	"context"

	"github.com/Veraticus/spice-tracker/internal/ledger"
	"github.com/Veraticus/spice-tracker/internal/model"
	"github.com/Veraticus/spice-tracker/internal/query"
	"github.com/Veraticus/spice-tracker/internal/tui/themes"
)

// Store is what the browser needs from the ledger.
type Store interface {
	Query(c query.Criteria) []model.Record
	Delete(ctx context.Context, id int64) error
	SetTheme(ctx context.Context, t ledger.Theme) error
}

// Config holds TUI configuration.
type Config struct {
	Theme    themes.Theme
	Store    Store
	Criteria query.Criteria
	Width    int
	Height   int
	ShowHelp bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:    themes.Light,
		Width:    100,
		Height:   24,
		ShowHelp: true,
	}
}

// WithStore sets the record source.
func WithStore(store Store) Option {
	return func(c *Config) {
		c.Store = store
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithCriteria sets the criteria the browser starts with.
func WithCriteria(criteria query.Criteria) Option {
	return func(c *Config) {
		c.Criteria = criteria
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithHelp toggles the short help line.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
