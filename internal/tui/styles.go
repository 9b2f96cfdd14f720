package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent  = "#7D56F4"
	colorSuccess = "#04B575"
	colorDanger  = "#FF5F87"
	colorMuted   = "#626262"
)

// Styles contains all styles for the terminal timer.
type Styles struct {
	Title   lipgloss.Style
	Clock   lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
	Expired lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorAccent)),
		Clock: lipgloss.NewStyle().
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorAccent)),
		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSuccess)),
		Paused: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)),
		Expired: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorDanger)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)),
	}
}
