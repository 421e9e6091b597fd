package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/bloc/internal/model"
	"github.com/dori/bloc/internal/query"
	"github.com/dori/bloc/internal/state"
	"github.com/dori/bloc/internal/ui/theme"
)

// ArchiveView lists archived tasks for restoring or deleting
type ArchiveView struct {
	st     *state.State
	now    func() time.Time
	width  int
	height int

	cursor    int
	searching bool
	filter    string
	textInput textinput.Model

	confirmDeleteID string
}

// NewArchiveView creates a new archive view
func NewArchiveView(st *state.State, now func() time.Time) ArchiveView {
	if now == nil {
		now = time.Now
	}
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Search archive..."

	return ArchiveView{st: st, now: now, textInput: ti}
}

// Init initializes the archive view
func (v ArchiveView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v ArchiveView) SetSize(width, height int) ArchiveView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode returns whether the view is in input mode
func (v ArchiveView) IsInputMode() bool {
	return v.searching || v.confirmDeleteID != ""
}

// tasks returns archived tasks, most recently touched first. The archive
// is not scoped to the active project.
func (v ArchiveView) tasks() []model.Task {
	return query.SortByUpdated(query.BySearch(v.st.ArchivedTasks(), v.filter))
}

func (v ArchiveView) currentTask() *model.Task {
	tasks := v.tasks()
	if v.cursor < 0 || v.cursor >= len(tasks) {
		return nil
	}
	task := tasks[v.cursor]
	return &task
}

func (v *ArchiveView) clampCursor() {
	if n := len(v.tasks()); v.cursor >= n {
		v.cursor = max(n-1, 0)
	}
}

// Update handles messages
func (v ArchiveView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if v.searching {
			var cmd tea.Cmd
			v.textInput, cmd = v.textInput.Update(msg)
			return v, cmd
		}
		return v, nil
	}

	if v.confirmDeleteID != "" {
		switch key.String() {
		case "y", "Y":
			v.st.DeleteTask(v.confirmDeleteID)
			v.confirmDeleteID = ""
			v.clampCursor()
			return v, statusf("Task permanently deleted")
		case "n", "N", "esc":
			v.confirmDeleteID = ""
		}
		return v, nil
	}

	if v.searching {
		switch key.String() {
		case "enter", "esc":
			v.searching = false
			v.textInput.Blur()
			return v, nil
		}
		var cmd tea.Cmd
		v.textInput, cmd = v.textInput.Update(msg)
		v.filter = strings.TrimSpace(v.textInput.Value())
		v.cursor = 0
		return v, cmd
	}

	switch key.String() {
	case "j", "down":
		if v.cursor < len(v.tasks())-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "g":
		v.cursor = 0
	case "G":
		v.cursor = max(len(v.tasks())-1, 0)
	case "/":
		v.searching = true
		v.textInput.SetValue(v.filter)
		v.textInput.Focus()
		v.textInput.CursorEnd()
	case "u":
		if task := v.currentTask(); task != nil {
			v.st.UnarchiveTask(task.ID)
			v.clampCursor()
			return v, statusf("Restored %q", task.Title)
		}
	case "d":
		if task := v.currentTask(); task != nil {
			v.confirmDeleteID = task.ID
		}
	case "esc", "b":
		if v.filter != "" {
			v.filter = ""
			v.textInput.SetValue("")
			return v, nil
		}
		v.st.SetNav(model.NavBoard)
	}
	return v, nil
}

// View renders the archive
func (v ArchiveView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	styles := theme.Current.Styles
	now := v.now()
	tasks := v.tasks()

	var lines []string
	lines = append(lines, styles.Title.Render(fmt.Sprintf("Archive (%d)", len(v.st.ArchivedTasks()))))

	if len(tasks) == 0 {
		msg := "No archived tasks."
		if v.filter != "" {
			msg = fmt.Sprintf("No archived tasks match %q.", v.filter)
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Subtle).Italic(true).Render(msg))
	}

	visible := max(v.height-6, 1)
	start := 0
	if v.cursor >= visible {
		start = v.cursor - visible + 1
	}
	end := min(start+visible, len(tasks))

	for i := start; i < end; i++ {
		task := tasks[i]
		project, _ := projectBadge(v.st, task)
		archived := styles.Label.Render("archived " + model.FormatRelative(task.UpdatedAt, now))

		row := fmt.Sprintf(" %s %s %s%s  %s",
			statusGlyph(task.Status),
			priorityGlyph(task.Priority),
			project,
			truncate(task.Title, max(v.width-40, 10)),
			archived)
		if tags := renderTags(task.Tags); tags != "" {
			row += " " + tags
		}
		if i == v.cursor {
			row = styles.TaskSelected.Render(row)
		}
		lines = append(lines, row)
	}

	var footer string
	switch {
	case v.confirmDeleteID != "":
		title := ""
		if task, ok := v.st.Task(v.confirmDeleteID); ok {
			title = task.Title
		}
		footer = lipgloss.NewStyle().Foreground(t.Error).Bold(true).
			Render(fmt.Sprintf("Permanently delete '%s'? (y/n)", title))
	case v.searching:
		footer = styles.InputFocused.Width(max(v.width-4, 10)).Render("Search: " + v.textInput.View())
	default:
		footer = styles.HelpDesc.Render("j/k: nav • u: restore • d: delete • /: search • esc: back to board")
		if v.filter != "" {
			footer = lipgloss.NewStyle().Foreground(t.Info).Render("[Search: "+v.filter+"] ") + footer
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(lines, "\n"), "", footer)
}
