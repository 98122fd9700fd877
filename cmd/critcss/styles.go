package main

import "github.com/charmbracelet/lipgloss"

// Terminal styles for stats output. Lipgloss automatically degrades
// colors based on terminal capabilities.
var (
	styleGreen  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	styleYellow = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
)

// renderStyle applies a lipgloss style to text when colors are enabled.
// When useColors is false, the text is returned unmodified.
func renderStyle(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}
