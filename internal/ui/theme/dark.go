package theme

import "github.com/charmbracelet/lipgloss"

// Dark keeps the pastel hues but mutes them for dark terminals
var Dark = Theme{
	Name: "dark",

	Background: lipgloss.Color("#1F1D24"),
	Foreground: lipgloss.Color("#E6E1EA"),
	Subtle:     lipgloss.Color("#6E6878"),
	Highlight:  lipgloss.Color("#2C2933"),
	Border:     lipgloss.Color("#45404F"),

	Primary:   lipgloss.Color("#B88A9A"),
	Secondary: lipgloss.Color("#A88AAC"),
	Info:      lipgloss.Color("#8AA7B8"),

	Success: lipgloss.Color("#8AB893"),
	Warning: lipgloss.Color("#C4C48A"),
	Error:   lipgloss.Color("#C97B7F"),

	PriorityHigh:   lipgloss.Color("#B8868A"),
	PriorityMedium: lipgloss.Color("#C4C48A"),
	PriorityLow:    lipgloss.Color("#8AB893"),

	StatusBrainstorm: lipgloss.Color("#9A9AB8"),
	StatusTodo:       lipgloss.Color("#8AA7B8"),
	StatusInProgress: lipgloss.Color("#B8A58A"),
	StatusDone:       lipgloss.Color("#A88AAC"),

	Accent:        lipgloss.Color("#B88A9A"),
	TagBackground: lipgloss.Color("#2C2933"),
}
