package views

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/bloc/internal/model"
	"github.com/dori/bloc/internal/quickadd"
	"github.com/dori/bloc/internal/state"
	"github.com/dori/bloc/internal/ui/theme"
)

// browserMode represents the current input mode
type browserMode int

const (
	modeNormal browserMode = iota
	modeAdd
	modeSearch
	modeForm
	modeConfirmDelete
	modeSelect
)

type selectPurpose int

const (
	selectMoveProject selectPurpose = iota
	selectTagFilter
)

// browser holds what the board and the list have in common: the modal
// inputs and the keys that act on the task under the cursor.
type browser struct {
	st     *state.State
	now    func() time.Time
	width  int
	height int

	mode      browserMode
	textInput textinput.Model
	form      TaskForm
	picker    selector
	purpose   selectPurpose

	// task being edited, deleted or moved
	targetID string
}

func newBrowser(st *state.State, now func() time.Time) browser {
	if now == nil {
		now = time.Now
	}
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256

	return browser{st: st, now: now, textInput: ti}
}

// IsInputMode reports whether keys are going to an input or popup
func (b browser) IsInputMode() bool {
	return b.mode != modeNormal
}

// handleModal routes a key to the open input. Only call it when the mode
// is not modeNormal.
func (b *browser) handleModal(msg tea.KeyMsg, addStatus model.Status) tea.Cmd {
	switch b.mode {
	case modeAdd:
		return b.handleAddMode(msg, addStatus)
	case modeSearch:
		return b.handleSearchMode(msg)
	case modeForm:
		return b.handleFormMode(msg)
	case modeConfirmDelete:
		return b.handleConfirmDeleteMode(msg)
	case modeSelect:
		return b.handleSelectMode(msg)
	}
	return nil
}

// handleTaskKey handles the keys shared by every task view. current is the
// task under the cursor, if any. It reports whether the key was used.
func (b *browser) handleTaskKey(msg tea.KeyMsg, current *model.Task) (tea.Cmd, bool) {
	switch msg.String() {
	// Add task
	case "a":
		b.mode = modeAdd
		b.textInput.SetValue("")
		b.textInput.Placeholder = "New task... @tag !high due:tomorrow"
		b.textInput.Focus()
		return nil, true

	// Search
	case "/":
		b.mode = modeSearch
		b.textInput.SetValue(b.st.SearchQuery())
		b.textInput.Placeholder = "Search..."
		b.textInput.Focus()
		b.textInput.CursorEnd()
		return nil, true

	// Priority filter
	case "f":
		f := b.st.Filters()
		f.Priority = nextPriorityFilter(f.Priority)
		b.st.SetFilters(f)
		if f.Priority == nil {
			return statusf("Priority filter off"), true
		}
		return statusf("Showing %s", strings.ToLower(f.Priority.Label())), true

	// Due date filter
	case "D":
		f := b.st.Filters()
		f.DateRange = nextDateFilter(f.DateRange, b.now())
		b.st.SetFilters(f)
		if f.DateRange == nil {
			return statusf("Due date filter off"), true
		}
		return statusf("Due %s to %s", model.FormatDate(f.DateRange.Start), model.FormatDate(f.DateRange.End)), true

	// Tag filter
	case "t":
		active := b.st.Filters().Tags
		var items []choice
		for _, tag := range b.st.AllTags() {
			items = append(items, choice{id: tag, label: tag, marked: slices.Contains(active, tag)})
		}
		b.picker = newSelector("Filter by tag:", items)
		b.purpose = selectTagFilter
		b.mode = modeSelect
		return nil, true

	// Clear filters
	case "esc":
		if b.st.SearchQuery() != "" || !b.st.Filters().IsEmpty() {
			b.st.SetSearchQuery("")
			b.st.ClearFilters()
			return statusf("Filters cleared"), true
		}
		return nil, true
	}

	if current == nil {
		return nil, false
	}

	switch msg.String() {
	// Edit task
	case "enter", "e":
		b.form = NewTaskForm(*current, b.width)
		b.targetID = current.ID
		b.mode = modeForm
		return nil, true

	// Delete task
	case "d":
		b.targetID = current.ID
		b.mode = modeConfirmDelete
		return nil, true

	// Toggle done
	case "x", "tab":
		next := model.StatusDone
		if current.IsDone() {
			next = model.StatusTodo
		}
		b.st.UpdateTask(current.ID, model.StatusUpdate(next))
		return nil, true

	// Cycle priority
	case "p":
		next := nextPriority(current.Priority, false)
		b.st.UpdateTask(current.ID, model.TaskUpdate{Priority: &next})
		return nil, true

	// Archive
	case "A":
		b.st.ArchiveTask(current.ID)
		return statusf("Archived %q", current.Title), true

	// Move to project
	case "m":
		var items []choice
		for _, p := range b.st.ActiveProjects() {
			items = append(items, choice{id: p.ID, label: p.Name, color: p.Color, marked: p.ID == current.ProjectID})
		}
		b.picker = newSelector("Move to project:", items)
		b.purpose = selectMoveProject
		b.targetID = current.ID
		b.mode = modeSelect
		return nil, true
	}

	return nil, false
}

// handleAddMode creates a task from the quick-add line. New tasks land in
// the active project, or the Inbox when all projects are shown.
func (b *browser) handleAddMode(msg tea.KeyMsg, status model.Status) tea.Cmd {
	switch msg.String() {
	case "enter":
		res := quickadd.Parse(b.textInput.Value(), b.now())
		if errs := model.ValidateTaskInput(res.Title, "", res.Tags); len(errs) > 0 {
			return errorCmd(errs)
		}
		b.mode = modeNormal
		b.textInput.Blur()

		projectID := b.st.ActiveProjectID()
		if projectID == "" {
			projectID = model.InboxID
		}
		task := b.st.CreateTask(res.Input(projectID))
		if status != "" && status != task.Status {
			b.st.UpdateTask(task.ID, model.StatusUpdate(status))
		}
		return statusf("Created %q", task.Title)
	case "esc":
		b.mode = modeNormal
		b.textInput.Blur()
		return nil
	}

	var cmd tea.Cmd
	b.textInput, cmd = b.textInput.Update(msg)
	return cmd
}

// handleSearchMode narrows the views as the query is typed
func (b *browser) handleSearchMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc":
		b.mode = modeNormal
		b.textInput.Blur()
		return nil
	}

	var cmd tea.Cmd
	b.textInput, cmd = b.textInput.Update(msg)
	b.st.SetSearchQuery(strings.TrimSpace(b.textInput.Value()))
	return cmd
}

func (b *browser) handleFormMode(msg tea.KeyMsg) tea.Cmd {
	form, action, cmd := b.form.Update(msg)
	b.form = form

	switch action {
	case formCancel:
		b.mode = modeNormal
		b.targetID = ""
	case formSubmit:
		u, errs := b.form.Result(b.now())
		if len(errs) > 0 {
			return nil
		}
		b.st.UpdateTask(b.targetID, u)
		b.mode = modeNormal
		b.targetID = ""
		return statusf("Saved")
	}
	return cmd
}

// handleConfirmDeleteMode handles keys in delete confirmation mode
func (b *browser) handleConfirmDeleteMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		b.mode = modeNormal
		b.st.DeleteTask(b.targetID)
		b.targetID = ""
		return statusf("Task deleted")
	case "n", "N", "esc":
		b.mode = modeNormal
		b.targetID = ""
	}
	return nil
}

func (b *browser) handleSelectMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "j", "down":
		b.picker.move(1)
	case "k", "up":
		b.picker.move(-1)
	case "esc":
		b.mode = modeNormal
		b.targetID = ""
	case "enter":
		b.mode = modeNormal
		c, ok := b.picker.current()
		if !ok {
			return nil
		}
		switch b.purpose {
		case selectMoveProject:
			id := c.id
			b.st.UpdateTask(b.targetID, model.TaskUpdate{ProjectID: &id})
			b.targetID = ""
			return statusf("Moved to %s", c.label)
		case selectTagFilter:
			f := b.st.Filters()
			if slices.Contains(f.Tags, c.id) {
				f.Tags = model.RemoveTag(f.Tags, c.id)
			} else {
				f.Tags = append(f.Tags, c.id)
			}
			b.st.SetFilters(f)
		}
	}
	return nil
}

// modalView renders the open input, or "" in normal mode
func (b browser) modalView(deleteTitle string) string {
	t := theme.Current.Theme
	inputStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Width(max(b.width-4, 10))

	switch b.mode {
	case modeAdd:
		return inputStyle.Render("Add task: " + b.textInput.View())
	case modeSearch:
		return inputStyle.Render("Search: " + b.textInput.View())
	case modeForm:
		return b.form.View()
	case modeSelect:
		return b.picker.View()
	case modeConfirmDelete:
		return lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true).
			Render(fmt.Sprintf("Delete '%s'? This cannot be undone. (y/n)", deleteTitle))
	}
	return ""
}

// taskTitle looks up the title of id for prompts
func (b browser) taskTitle(id string) string {
	if task, ok := b.st.Task(id); ok {
		return task.Title
	}
	return ""
}

// nextPriorityFilter cycles off, high, medium, low
func nextPriorityFilter(p *model.Priority) *model.Priority {
	all := model.Priorities()
	if p == nil {
		next := all[0]
		return &next
	}
	for i, q := range all {
		if q == *p && i+1 < len(all) {
			next := all[i+1]
			return &next
		}
	}
	return nil
}

// nextDateFilter cycles off, due today, due this week
func nextDateFilter(r *model.DateRange, now time.Time) *model.DateRange {
	today := model.DateRange{Start: model.StartOfDay(now), End: model.EndOfDay(now)}
	weekStart := model.StartOfDay(now).AddDate(0, 0, -int(now.Weekday()))
	week := model.DateRange{Start: weekStart, End: model.EndOfDay(weekStart.AddDate(0, 0, 6))}

	switch {
	case r == nil:
		return &today
	case r.Start.Equal(today.Start) && r.End.Equal(today.End):
		return &week
	default:
		return nil
	}
}
