package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/bloc/internal/board"
	"github.com/dori/bloc/internal/model"
	"github.com/dori/bloc/internal/query"
	"github.com/dori/bloc/internal/state"
	"github.com/dori/bloc/internal/ui/theme"
)

// ListView shows the visible tasks as one sortable list
type ListView struct {
	browser

	cursor       int
	scrollOffset int
	sortKey      query.SortKey
	textWrap     bool
}

// NewListView creates a new list view
func NewListView(st *state.State, now func() time.Time, sortKey query.SortKey) ListView {
	if sortKey == "" {
		sortKey = query.SortManual
	}
	return ListView{
		browser: newBrowser(st, now),
		sortKey: sortKey,
	}
}

// Init initializes the list view
func (v ListView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v ListView) SetSize(width, height int) ListView {
	v.width = width
	v.height = height
	if v.mode == modeForm {
		v.form = v.form.SetWidth(width)
	}
	v.ensureCursorVisible()
	return v
}

// SortKey returns the ordering in use
func (v ListView) SortKey() query.SortKey {
	return v.sortKey
}

func (v ListView) tasks() []model.Task {
	return v.st.VisibleTasks(v.sortKey)
}

func (v ListView) currentTask() *model.Task {
	tasks := v.tasks()
	if v.cursor < 0 || v.cursor >= len(tasks) {
		return nil
	}
	task := tasks[v.cursor]
	return &task
}

// visibleTaskCount returns how many rows fit on screen
func (v ListView) visibleTaskCount() int {
	// heading line, blank line, footer
	h := v.height - 4
	if h < 1 {
		return 1
	}
	return h
}

func (v *ListView) ensureCursorVisible() {
	n := len(v.tasks())
	if v.cursor >= n {
		v.cursor = max(n-1, 0)
	}
	visible := v.visibleTaskCount()
	if v.cursor < v.scrollOffset {
		v.scrollOffset = v.cursor
	}
	if v.cursor >= v.scrollOffset+visible {
		v.scrollOffset = v.cursor - visible + 1
	}
}

// Update handles messages
func (v ListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.browser.IsInputMode() {
			cmd := v.handleModal(msg, "")
			v.ensureCursorVisible()
			return v, cmd
		}
		return v.handleNormalMode(msg)
	}

	if v.mode == modeAdd || v.mode == modeSearch {
		var cmd tea.Cmd
		v.textInput, cmd = v.textInput.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v ListView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if v.cursor < len(v.tasks())-1 {
			v.cursor++
			v.ensureCursorVisible()
		}
		return v, nil

	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
			v.ensureCursorVisible()
		}
		return v, nil

	case "g", "home":
		v.cursor = 0
		v.scrollOffset = 0
		return v, nil

	case "G", "end":
		v.cursor = max(len(v.tasks())-1, 0)
		v.ensureCursorVisible()
		return v, nil

	case "pgdown", "ctrl+d":
		v.cursor = min(v.cursor+v.visibleTaskCount(), max(len(v.tasks())-1, 0))
		v.ensureCursorVisible()
		return v, nil

	case "pgup", "ctrl+u":
		v.cursor = max(v.cursor-v.visibleTaskCount(), 0)
		v.ensureCursorVisible()
		return v, nil

	// Sort order
	case "s":
		id := v.currentID()
		v.sortKey = v.sortKey.Next()
		v.follow(id)
		return v, statusf("Sort: %s", v.sortKey.Label())

	case "w":
		v.textWrap = !v.textWrap
		return v, nil

	// Workflow stage
	case "H", "L":
		task := v.currentTask()
		if task == nil {
			return v, nil
		}
		dir := 1
		if msg.String() == "H" {
			dir = -1
		}
		if board.MoveToStatus(v.st, task.ID, dir) {
			v.follow(task.ID)
			moved, _ := v.st.Task(task.ID)
			return v, statusf("Moved to %s", moved.Status.Label())
		}
		return v, nil

	// Manual order, only meaningful when the list shows it
	case "J", "K":
		task := v.currentTask()
		if task == nil {
			return v, nil
		}
		if v.sortKey != query.SortManual {
			return v, statusf("Switch to manual sort (s) to reorder")
		}
		delta := 1
		if msg.String() == "K" {
			delta = -1
		}
		column := query.ByStatus(v.tasks(), task.Status)
		if board.Nudge(v.st, task.ID, delta, column) {
			v.follow(task.ID)
		}
		return v, nil
	}

	cmd, _ := v.handleTaskKey(msg, v.currentTask())
	v.ensureCursorVisible()
	return v, cmd
}

func (v ListView) currentID() string {
	if task := v.currentTask(); task != nil {
		return task.ID
	}
	return ""
}

// follow keeps the cursor on id after the order changed
func (v *ListView) follow(id string) {
	for i, task := range v.tasks() {
		if task.ID == id {
			v.cursor = i
			break
		}
	}
	v.ensureCursorVisible()
}

// View renders the list
func (v ListView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	styles := theme.Current.Styles
	now := v.now()
	tasks := v.tasks()

	heading := styles.Label.Render(fmt.Sprintf("%d tasks • sorted by %s", len(tasks), strings.ToLower(v.sortKey.Label())))
	if summary := filterSummary(v.st); summary != "" {
		heading += "  " + lipgloss.NewStyle().Foreground(t.Info).Render("["+summary+"]")
	}

	var lines []string
	lines = append(lines, heading, "")

	if len(tasks) == 0 {
		empty := "No tasks yet. Press a to add one."
		if filterSummary(v.st) != "" {
			empty = "Nothing matches. Press esc to clear filters."
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Subtle).Italic(true).Render(empty))
	}

	end := min(v.scrollOffset+v.visibleTaskCount(), len(tasks))
	for i := v.scrollOffset; i < end; i++ {
		lines = append(lines, v.renderTask(tasks[i], i == v.cursor, now))
	}

	footer := v.modalView(v.taskTitle(v.targetID))
	if footer == "" {
		footer = styles.HelpDesc.Render("j/k: nav • s: sort • H/L: stage • J/K: reorder • a: add • enter: edit • x: done • A: archive • f/t/D: filter • /: search")
	}

	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(lines, "\n"), footer)
}

// renderTask draws one row: checkbox, priority, title, then project, tags
// and due date
func (v ListView) renderTask(task model.Task, isCursor bool, now time.Time) string {
	styles := theme.Current.Styles

	titleStyle := styles.TaskNormal
	if task.IsDone() {
		titleStyle = styles.TaskDone
	} else if task.IsOverdue(now) {
		titleStyle = styles.TaskOverdue
	}

	project, _ := projectBadge(v.st, task)

	var metadata []string
	if project != "" {
		metadata = append(metadata, strings.TrimSpace(project))
	}
	if tags := renderTags(task.Tags); tags != "" {
		metadata = append(metadata, tags)
	}
	if due := renderDue(task, now); due != "" {
		metadata = append(metadata, due)
	}
	metadataStr := strings.Join(metadata, " ")

	prefix := fmt.Sprintf(" %s %s ", statusGlyph(task.Status), priorityGlyph(task.Priority))
	prefixWidth := lipgloss.Width(prefix)

	title := task.Title
	var line string
	if v.textWrap {
		metadataWidth := 0
		if metadataStr != "" {
			metadataWidth = lipgloss.Width(metadataStr) + 1
		}
		availableWidth := max(v.width-prefixWidth-metadataWidth, 20)

		titleLines := strings.Split(wrapText(title, availableWidth), "\n")
		line = prefix + titleStyle.Render(titleLines[0])
		if metadataStr != "" {
			line += " " + metadataStr
		}
		continuationIndent := strings.Repeat(" ", prefixWidth)
		for _, tl := range titleLines[1:] {
			line += "\n" + continuationIndent + titleStyle.Render(tl)
		}
	} else {
		metadataWidth := lipgloss.Width(metadataStr)
		title = truncate(title, max(v.width-prefixWidth-metadataWidth-4, 10))
		line = prefix + titleStyle.Render(title)
		if metadataStr != "" {
			line += " " + metadataStr
		}
	}

	if isCursor {
		rows := strings.Split(line, "\n")
		for i, l := range rows {
			rows[i] = styles.TaskSelected.Render(l)
		}
		line = strings.Join(rows, "\n")
	}
	return line
}
