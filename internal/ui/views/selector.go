package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dori/bloc/internal/ui/theme"
)

type choice struct {
	id     string
	label  string
	color  string
	marked bool
}

// selector is the popup list used to pick a project or a tag
type selector struct {
	title  string
	items  []choice
	cursor int
}

func newSelector(title string, items []choice) selector {
	return selector{title: title, items: items}
}

func (s *selector) move(delta int) {
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor > len(s.items)-1 {
		s.cursor = max(len(s.items)-1, 0)
	}
}

func (s selector) current() (choice, bool) {
	if s.cursor < 0 || s.cursor >= len(s.items) {
		return choice{}, false
	}
	return s.items[s.cursor], true
}

func (s selector) View() string {
	t := theme.Current.Theme

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(s.title))

	for i, c := range s.items {
		style := lipgloss.NewStyle()
		if i == s.cursor {
			style = style.Background(t.Highlight).Foreground(t.Foreground)
		}
		mark := " "
		if c.marked {
			mark = "✓"
		}
		dot := " "
		if c.color != "" {
			dot = lipgloss.NewStyle().Foreground(lipgloss.Color(c.color)).Render("●")
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s %s %s", mark, dot, c.label)))
	}
	if len(s.items) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Subtle).Italic(true).Render("(nothing to pick)"))
	}

	lines = append(lines, lipgloss.NewStyle().Foreground(t.Subtle).Render("j/k: navigate • enter: select • esc: cancel"))

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
