package cli

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for terminal output.
type Theme struct {
	Primary lipgloss.Color // stage-complete accent
	Dim     lipgloss.Color // progress/help text
	Warn    lipgloss.Color // incomplete stages, decode warnings
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
	Warn:    lipgloss.Color("#f0883e"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Stage    lipgloss.Style
	Producer lipgloss.Style
	Dim      lipgloss.Style
	Warn     lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Stage:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Producer: lipgloss.NewStyle().Foreground(t.Primary),
		Dim:      lipgloss.NewStyle().Foreground(t.Dim),
		Warn:     lipgloss.NewStyle().Foreground(t.Warn),
	}
}
