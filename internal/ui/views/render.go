package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dori/bloc/internal/model"
	"github.com/dori/bloc/internal/state"
	"github.com/dori/bloc/internal/ui/theme"
)

// priorityGlyph renders the colored marker shown before a title
func priorityGlyph(p model.Priority) string {
	t := theme.Current.Theme
	style := lipgloss.NewStyle().Foreground(t.PriorityColor(p))
	switch p {
	case model.PriorityHigh:
		return style.Render("▲")
	case model.PriorityLow:
		return style.Render("▽")
	default:
		return style.Render("●")
	}
}

// statusGlyph is the list-view checkbox for a stage
func statusGlyph(s model.Status) string {
	t := theme.Current.Theme
	style := lipgloss.NewStyle().Foreground(t.StatusColor(s))
	switch s {
	case model.StatusBrainstorm:
		return style.Render("[~]")
	case model.StatusInProgress:
		return style.Render("[>]")
	case model.StatusDone:
		return style.Render("[x]")
	default:
		return style.Render("[ ]")
	}
}

func renderTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	style := theme.Current.Styles.Tag
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = style.Render("#" + tag)
	}
	return strings.Join(parts, "")
}

// formatDue renders a due date relative to now
func formatDue(due, now time.Time) string {
	switch days := model.DaysUntil(due, now); {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "1 day ago"
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	case days < 7:
		return due.Format("Mon")
	}
	if due.Year() == now.Year() {
		return due.Format("Jan 2")
	}
	return model.FormatDate(due)
}

func renderDue(task model.Task, now time.Time) string {
	if task.DueDate == nil {
		return ""
	}
	t := theme.Current.Theme
	style := lipgloss.NewStyle().Foreground(t.Subtle)
	if task.IsOverdue(now) {
		style = lipgloss.NewStyle().Foreground(t.Error).Bold(true)
	} else if task.IsDueToday(now) && !task.IsDone() {
		style = lipgloss.NewStyle().Foreground(t.Warning)
	}
	return style.Render(formatDue(*task.DueDate, now))
}

// projectBadge returns "[Name] " for tasks outside the Inbox. Tasks whose
// project is gone get nothing.
func projectBadge(st *state.State, task model.Task) (string, int) {
	if task.ProjectID == model.InboxID {
		return "", 0
	}
	p, ok := st.Project(task.ProjectID)
	if !ok {
		return "", 0
	}
	style := lipgloss.NewStyle().Foreground(theme.Current.Theme.Secondary)
	if p.Color != "" {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color))
	}
	label := "[" + p.Name + "] "
	return style.Render(label), lipgloss.Width(label)
}

// truncate shortens s to at most width cells
func truncate(s string, width int) string {
	if width <= 3 {
		width = 3
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+3 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

// wrapText wraps text at word boundaries to fit within maxWidth
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	currentLine := words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) <= maxWidth {
			currentLine += " " + word
		} else {
			result.WriteString(currentLine)
			result.WriteString("\n")
			currentLine = word
		}
	}
	result.WriteString(currentLine)

	return result.String()
}

// filterSummary describes the active search and filters, or "".
func filterSummary(st *state.State) string {
	var parts []string
	if q := st.SearchQuery(); q != "" {
		parts = append(parts, "Search: "+q)
	}
	f := st.Filters()
	if f.Priority != nil {
		parts = append(parts, "Priority: "+string(*f.Priority))
	}
	if len(f.Tags) > 0 {
		parts = append(parts, "Tags: "+strings.Join(f.Tags, ", "))
	}
	if f.DateRange != nil {
		parts = append(parts, fmt.Sprintf("Due: %s - %s",
			f.DateRange.Start.Format("Jan 2"), f.DateRange.End.Format("Jan 2")))
	}
	return strings.Join(parts, " | ")
}
