// Package style holds shared lipgloss styles for CLI output.
package style

import "github.com/charmbracelet/lipgloss"

var (
	Bold  = lipgloss.NewStyle().Bold(true)
	Dim   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	Error = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	// Header renders column and row labels in grid output.
	Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	// Number and Text distinguish value kinds in grid output.
	Number = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	Text   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

	WarningPrefix = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Render("!")
	ArrowPrefix   = Dim.Render("→")
)
