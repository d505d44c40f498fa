package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	accentColor = lipgloss.Color("12")
	dimColor    = lipgloss.Color("240")
	errorColor  = lipgloss.Color("9")
	tagColor    = lipgloss.Color("11")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	meterStyle    = lipgloss.NewStyle().Foreground(dimColor)
	columnStyle   = lipgloss.NewStyle().Reverse(true)
	sortColStyle  = lipgloss.NewStyle().Reverse(true).Bold(true).Foreground(accentColor)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	taggedStyle   = lipgloss.NewStyle().Bold(true).Foreground(tagColor)
	pausedStyle   = lipgloss.NewStyle().Bold(true).Foreground(tagColor)
	footKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	footDescStyle = lipgloss.NewStyle().Foreground(dimColor)
	statusStyle   = lipgloss.NewStyle().Foreground(errorColor)
	menuStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(dimColor).Padding(0, 1)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
)

// DisableColors drops all styling, for dumb terminals and --no-color.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
