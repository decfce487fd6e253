package tui

import "github.com/charmbracelet/lipgloss"

var (
	redStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Lost, time running out
	greenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Won
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	matchedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true)

	boardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.ThickBorder())
)
