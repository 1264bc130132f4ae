package ui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#2563EB")
	dimColor    = lipgloss.Color("#6B7280")
	errColor    = lipgloss.Color("#DC2626")
	okColor     = lipgloss.Color("#16A34A")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	labelStyle = lipgloss.NewStyle().Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(dimColor)
	fieldErr   = lipgloss.NewStyle().Foreground(errColor)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimColor).
			Padding(1, 2)

	navBarStyle = lipgloss.NewStyle().
			Background(accentColor).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	navActiveStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1E40AF")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)
)
