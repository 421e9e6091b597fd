package theme

import "github.com/charmbracelet/lipgloss"

// Light is the default pastel scheme
var Light = Theme{
	Name: "light",

	Background: lipgloss.Color("#FFFFFF"),
	Foreground: lipgloss.Color("#3B3B4F"),
	Subtle:     lipgloss.Color("#9A9AAE"),
	Highlight:  lipgloss.Color("#F3EEF6"),
	Border:     lipgloss.Color("#D9D3E0"),

	Primary:   lipgloss.Color("#D16D9E"),
	Secondary: lipgloss.Color("#8E7CC3"),
	Info:      lipgloss.Color("#5B8DB8"),

	Success: lipgloss.Color("#4FA36B"),
	Warning: lipgloss.Color("#C99A2E"),
	Error:   lipgloss.Color("#D9534F"),

	// Pastel swatches, also used as card backgrounds
	PriorityHigh:   lipgloss.Color("#FFB3BA"),
	PriorityMedium: lipgloss.Color("#FFFFBA"),
	PriorityLow:    lipgloss.Color("#BAFFC9"),

	StatusBrainstorm: lipgloss.Color("#C9C9FF"),
	StatusTodo:       lipgloss.Color("#BAE1FF"),
	StatusInProgress: lipgloss.Color("#FFDFBA"),
	StatusDone:       lipgloss.Color("#E0BBE4"),

	Accent:        lipgloss.Color("#FFD5E5"),
	TagBackground: lipgloss.Color("#F3EEF6"),
}
