// Package themes holds the color schemes of the record browser.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Header        lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Income        lipgloss.Style
	Expense       lipgloss.Style
	Name          string
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
}

type colors struct {
	primary    lipgloss.Color
	foreground lipgloss.Color
	subtle     lipgloss.Color
	muted      lipgloss.Color
	border     lipgloss.Color
	selectedFg lipgloss.Color
	info       lipgloss.Color
	success    lipgloss.Color
	warning    lipgloss.Color
	errorColor lipgloss.Color
	income     lipgloss.Color
	expense    lipgloss.Color
}

func build(name string, c colors) Theme {
	return Theme{
		Name:       name,
		Primary:    c.primary,
		Muted:      c.muted,
		Border:     c.border,
		Foreground: c.foreground,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(c.subtle),
		Normal: lipgloss.NewStyle().
			Foreground(c.foreground),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.foreground),
		Selected: lipgloss.NewStyle().
			Background(c.primary).
			Foreground(c.selectedFg).
			Bold(true),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.foreground).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(c.border),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.border).
			Padding(0, 1),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(c.success).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(c.warning).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(c.errorColor).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(c.info),

		Income:  lipgloss.NewStyle().Foreground(c.income),
		Expense: lipgloss.NewStyle().Foreground(c.expense),
	}
}

// Light suits light terminal backgrounds.
var Light = build("light", colors{
	primary:    lipgloss.Color("#D7263D"),
	foreground: lipgloss.Color("#1F1F1F"),
	subtle:     lipgloss.Color("#555555"),
	muted:      lipgloss.Color("#7A7A7A"),
	border:     lipgloss.Color("#BBBBBB"),
	selectedFg: lipgloss.Color("#FFFFFF"),
	info:       lipgloss.Color("#2E86AB"),
	success:    lipgloss.Color("#1B998B"),
	warning:    lipgloss.Color("#B8860B"),
	errorColor: lipgloss.Color("#D7263D"),
	income:     lipgloss.Color("#1B998B"),
	expense:    lipgloss.Color("#D7263D"),
})

// Dark suits dark terminal backgrounds.
var Dark = build("dark", colors{
	primary:    lipgloss.Color("#cba6f7"),
	foreground: lipgloss.Color("#cdd6f4"),
	subtle:     lipgloss.Color("#a6adc8"),
	muted:      lipgloss.Color("#6c7086"),
	border:     lipgloss.Color("#45475a"),
	selectedFg: lipgloss.Color("#1e1e2e"),
	info:       lipgloss.Color("#89dceb"),
	success:    lipgloss.Color("#a6e3a1"),
	warning:    lipgloss.Color("#f9e2af"),
	errorColor: lipgloss.Color("#f38ba8"),
	income:     lipgloss.Color("#a6e3a1"),
	expense:    lipgloss.Color("#f38ba8"),
})

// GetTheme returns a theme by name. Unknown names get Light.
func GetTheme(name string) Theme {
	switch name {
	case "dark":
		return Dark
	default:
		return Light
	}
}

// CategoryIcons maps categories to emoji icons.
var CategoryIcons = map[string]string{
	"House":          "🏠",
	"Transportation": "🚗",
	"Shopping":       "🛍️",
	"Food":           "🍕",
	"Bills":          "💡",
	"Healthcare":     "💊",
	"Travel":         "✈️",
	"Entertainment":  "🎬",
	"Other Expense":  "📦",
	"Salary":         "💼",
	"Investment":     "📈",
	"Freelance":      "💻",
	"Rent":           "🔑",
	"Other Income":   "💰",
}

// GetCategoryIcon returns an icon for a category.
func GetCategoryIcon(category string) string {
	if icon, ok := CategoryIcons[category]; ok {
		return icon
	}
	return "📦"
}
