package editor

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#8a9199", Dark: "#565b66"}
	colorError   = lipgloss.AdaptiveColor{Light: "#e65050", Dark: "#f07178"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#a37acc", Dark: "#d2a6ff"}
)

// Styles for the sheet editor
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	LabelStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	CellStyle = lipgloss.NewStyle()

	SelectedStyle = lipgloss.NewStyle().
			Reverse(true).
			Bold(true)

	ErrorCellStyle = lipgloss.NewStyle().
			Foreground(colorError)

	FormulaBarStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(colorDim).
			Padding(0, 1)

	StatusErrorStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(colorError).
				Bold(true).
				Padding(0, 1)

	PromptStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Padding(0, 1)
)
