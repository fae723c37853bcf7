package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("39")
	accentColor  = lipgloss.Color("205")
	mutedColor   = lipgloss.Color("241")
	successColor = lipgloss.Color("76")
	warningColor = lipgloss.Color("214")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	statusStyle = lipgloss.NewStyle().Bold(true).Foreground(successColor)
	snoozeStyle = lipgloss.NewStyle().Bold(true).Foreground(warningColor)

	promptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warningColor).
			Padding(1, 2)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accentColor).
			Padding(1, 4).
			Align(lipgloss.Center)

	headingStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	countdownStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
)
