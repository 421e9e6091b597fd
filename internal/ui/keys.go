package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the application. The root handles
// the screen and general keys; the rest are listed for the help overlay
// and handled by the views.
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Task Actions
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Toggle   key.Binding
	Priority key.Binding
	Move     key.Binding
	Archive  key.Binding
	Stage    key.Binding
	Reorder  key.Binding
	Drag     key.Binding

	// Filters
	Search         key.Binding
	PriorityFilter key.Binding
	TagFilter      key.Binding
	DueFilter      key.Binding
	Sort           key.Binding

	// Screens
	BoardView   key.Binding
	ListView    key.Binding
	ArchiveView key.Binding
	StatsView   key.Binding
	Projects    key.Binding

	// General
	Help       key.Binding
	ThemeCycle key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "column left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "column right"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),

		// Task Actions
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x", "tab"),
			key.WithHelp("x", "toggle done"),
		),
		Priority: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "priority"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move to project"),
		),
		Archive: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "archive"),
		),
		Stage: key.NewBinding(
			key.WithKeys("H", "L"),
			key.WithHelp("H/L", "previous/next stage"),
		),
		Reorder: key.NewBinding(
			key.WithKeys("K", "J"),
			key.WithHelp("K/J", "move up/down"),
		),
		Drag: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "drag"),
		),

		// Filters
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		PriorityFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "priority filter"),
		),
		TagFilter: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tag filter"),
		),
		DueFilter: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "due filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort (list)"),
		),

		// Screens
		BoardView: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "board"),
		),
		ListView: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "list"),
		),
		ArchiveView: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "archive"),
		),
		StatsView: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "stats"),
		),
		Projects: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "projects"),
		),

		// General
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom},
		{k.Add, k.Edit, k.Delete, k.Toggle, k.Priority, k.Move},
		{k.Archive, k.Stage, k.Reorder, k.Drag},
		{k.Search, k.PriorityFilter, k.TagFilter, k.DueFilter, k.Sort},
		{k.BoardView, k.ListView, k.ArchiveView, k.StatsView, k.Projects},
		{k.Help, k.ThemeCycle, k.Quit},
	}
}
