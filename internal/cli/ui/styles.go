package ui

import "github.com/charmbracelet/lipgloss"

// Styles defines all lipgloss styles used in the CLI
var Styles = struct {
	Bold      lipgloss.Style
	Assistant lipgloss.Style
	ErrorBox  lipgloss.Style
}{
	Bold: lipgloss.NewStyle().Bold(true),

	Assistant: lipgloss.NewStyle().
		Foreground(lipgloss.Color("86")),

	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("196")).
		Padding(0, 1).
		Width(60),
}
