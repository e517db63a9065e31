package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/spice-tracker/internal/common"
	"github.com/Veraticus/spice-tracker/internal/service"
	"github.com/Veraticus/spice-tracker/internal/storage"
)

// Theme is the stored display preference.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ErrInvalidTheme is returned for anything other than "dark" or "light".
var ErrInvalidTheme = errors.New("theme must be dark or light")

// ParseTheme accepts "dark" or "light" in any case.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
}

// Theme returns the stored preference, light when none has been saved.
func (l *Ledger) Theme(ctx context.Context) (Theme, error) {
	data, err := l.store.Load(ctx, service.ThemeKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return ThemeLight, nil
	}
	if err != nil {
		return "", common.NewPersistenceError("load", service.ThemeKey, err)
	}

	theme, err := ParseTheme(string(data))
	if err != nil {
		l.logger.Warn("Ignoring unknown stored theme", "value", string(data))
		return ThemeLight, nil
	}
	return theme, nil
}

// SetTheme saves the preference.
func (l *Ledger) SetTheme(ctx context.Context, theme Theme) error {
	if theme != ThemeDark && theme != ThemeLight {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}
	if err := l.store.Save(ctx, service.ThemeKey, []byte(theme)); err != nil {
		return common.NewPersistenceError("save", service.ThemeKey, err)
	}
	return nil
}
