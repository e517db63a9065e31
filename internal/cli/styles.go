// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is a set of colors for one display theme.
type Palette struct {
	Primary lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
	Subtle  lipgloss.Color
	Border  lipgloss.Color
	Income  lipgloss.Color
	Expense lipgloss.Color
}

var (
	// LightPalette suits light terminal backgrounds.
	LightPalette = Palette{
		Primary: lipgloss.Color("#D7263D"),
		Success: lipgloss.Color("#1B998B"),
		Warning: lipgloss.Color("#B8860B"),
		Error:   lipgloss.Color("#D7263D"),
		Info:    lipgloss.Color("#2E86AB"),
		Subtle:  lipgloss.Color("#7A7A7A"),
		Border:  lipgloss.Color("#BBBBBB"),
		Income:  lipgloss.Color("#1B998B"),
		Expense: lipgloss.Color("#D7263D"),
	}

	// DarkPalette suits dark terminal backgrounds.
	DarkPalette = Palette{
		Primary: lipgloss.Color("#FF6B6B"),
		Success: lipgloss.Color("#4ECDC4"),
		Warning: lipgloss.Color("#FFE66D"),
		Error:   lipgloss.Color("#FF6B6B"),
		Info:    lipgloss.Color("#95E1D3"),
		Subtle:  lipgloss.Color("#666666"),
		Border:  lipgloss.Color("#333333"),
		Income:  lipgloss.Color("#4ECDC4"),
		Expense: lipgloss.Color("#FF6B6B"),
	}
)

var (
	// TitleStyle is used for section titles.
	TitleStyle lipgloss.Style
	// SubtitleStyle is used for secondary headings.
	SubtitleStyle lipgloss.Style
	// SuccessStyle formats success messages.
	SuccessStyle lipgloss.Style
	// WarningStyle formats warning messages.
	WarningStyle lipgloss.Style
	// ErrorStyle formats error messages.
	ErrorStyle lipgloss.Style
	// InfoStyle formats informational messages.
	InfoStyle lipgloss.Style
	// SubtleStyle formats less prominent text.
	SubtleStyle lipgloss.Style
	// BoldStyle makes text bold.
	BoldStyle lipgloss.Style
	// BoxStyle is used for bordered content boxes.
	BoxStyle lipgloss.Style
	// PromptStyle is used for user prompts.
	PromptStyle lipgloss.Style
	// IncomeStyle colors income amounts.
	IncomeStyle lipgloss.Style
	// ExpenseStyle colors expense amounts.
	ExpenseStyle lipgloss.Style
	// BarStyle draws category bars.
	BarStyle lipgloss.Style

	current Palette
)

func init() {
	UsePalette(LightPalette)
}

// UsePalette rebuilds every style from p.
func UsePalette(p Palette) {
	current = p

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(p.Subtle).
		MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	InfoStyle = lipgloss.NewStyle().Foreground(p.Info)
	SubtleStyle = lipgloss.NewStyle().Foreground(p.Subtle)
	BoldStyle = lipgloss.NewStyle().Bold(true)

	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(1, 2)

	PromptStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	IncomeStyle = lipgloss.NewStyle().Foreground(p.Income)
	ExpenseStyle = lipgloss.NewStyle().Foreground(p.Expense)
	BarStyle = lipgloss.NewStyle().Foreground(p.Primary)
}

// CurrentPalette returns the palette the styles were last built from.
func CurrentPalette() Palette {
	return current
}

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	SpiceIcon   = "🌶️"
	ChartIcon   = "📊"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the spice icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(SpiceIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}
