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

// KanbanView represents the kanban board view
type KanbanView struct {
	browser

	// Navigation state
	currentColumn int
	cursorRow     int

	// Per-column scroll offset
	columnScroll []int

	// Keyboard drag; nil when nothing is picked up
	drag *board.Drag
}

// NewKanbanView creates a new kanban view
func NewKanbanView(st *state.State, now func() time.Time) KanbanView {
	return KanbanView{
		browser:       newBrowser(st, now),
		currentColumn: model.StatusInitial.Index(),
		columnScroll:  make([]int, len(model.Statuses())),
	}
}

// Init initializes the kanban view
func (v KanbanView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v KanbanView) SetSize(width, height int) KanbanView {
	v.width = width
	v.height = height
	if v.mode == modeForm {
		v.form = v.form.SetWidth(width)
	}
	return v
}

// IsInputMode returns whether the view is in input mode
func (v KanbanView) IsInputMode() bool {
	return v.browser.IsInputMode() || v.drag != nil
}

// columns is the board as currently shown
func (v KanbanView) columns() []board.Column {
	return board.Columns(v.st.VisibleTasks(query.SortManual))
}

func (v KanbanView) currentStatus() model.Status {
	return model.Statuses()[v.currentColumn]
}

// currentTask returns the task under the cursor
func (v KanbanView) currentTask() *model.Task {
	col := v.columns()[v.currentColumn].Tasks
	if v.cursorRow < 0 || v.cursorRow >= len(col) {
		return nil
	}
	task := col[v.cursorRow]
	return &task
}

// Update handles messages
func (v KanbanView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.browser.IsInputMode() {
			cmd := v.handleModal(msg, v.currentStatus())
			v.clampCursor()
			return v, cmd
		}
		if v.drag != nil {
			return v.handleDragMode(msg)
		}
		return v.handleNormalMode(msg)
	}

	// Keep the cursor blinking in inputs
	if v.mode == modeAdd || v.mode == modeSearch {
		var cmd tea.Cmd
		v.textInput, cmd = v.textInput.Update(msg)
		return v, cmd
	}

	return v, nil
}

// handleNormalMode handles keys in normal mode
func (v KanbanView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	// Column navigation
	case "h", "left":
		if v.currentColumn > 0 {
			v.currentColumn--
			v.clampCursor()
		}
		return v, nil

	case "l", "right":
		if v.currentColumn < len(v.columnScroll)-1 {
			v.currentColumn++
			v.clampCursor()
		}
		return v, nil

	// Row navigation
	case "j", "down":
		col := v.columns()[v.currentColumn].Tasks
		if v.cursorRow < len(col)-1 {
			v.cursorRow++
			v.ensureCursorVisible()
		}
		return v, nil

	case "k", "up":
		if v.cursorRow > 0 {
			v.cursorRow--
			v.ensureCursorVisible()
		}
		return v, nil

	case "g":
		v.cursorRow = 0
		v.columnScroll[v.currentColumn] = 0
		return v, nil

	case "G":
		col := v.columns()[v.currentColumn].Tasks
		if len(col) > 0 {
			v.cursorRow = len(col) - 1
			v.ensureCursorVisible()
		}
		return v, nil

	// Move task between columns
	case "H":
		return v.moveTask(-1)
	case "L":
		return v.moveTask(1)

	// Move task within its column
	case "K":
		return v.nudgeTask(-1)
	case "J":
		return v.nudgeTask(1)

	// Pick up the task for a drag
	case " ":
		if task := v.currentTask(); task != nil {
			v.drag = board.NewDrag(v.st)
			v.drag.Start(task.ID)
			return v, statusf("Dragging %q: h/l column, j/k target, space drop, esc cancel", task.Title)
		}
		return v, nil
	}

	cmd, _ := v.handleTaskKey(msg, v.currentTask())
	v.clampCursor()
	return v, cmd
}

// handleDragMode moves the picked up task with the keyboard. Crossing a
// column behaves like hovering over it; space drops onto the task under
// the cursor.
func (v KanbanView) handleDragMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	activeID, _ := v.drag.Active()

	switch msg.String() {
	case "h", "left", "l", "right":
		dir := 1
		if s := msg.String(); s == "h" || s == "left" {
			dir = -1
		}
		next := v.currentColumn + dir
		if next < 0 || next >= len(v.columnScroll) {
			return v, nil
		}
		v.drag.Over(board.ColumnTarget(model.Statuses()[next]))
		v.currentColumn = next
		v.followTask(activeID)
		return v, nil

	case "j", "down":
		col := v.columns()[v.currentColumn].Tasks
		if v.cursorRow < len(col)-1 {
			v.cursorRow++
			v.ensureCursorVisible()
		}
		return v, nil

	case "k", "up":
		if v.cursorRow > 0 {
			v.cursorRow--
			v.ensureCursorVisible()
		}
		return v, nil

	case " ", "enter":
		target := board.NoTarget
		if task := v.currentTask(); task != nil {
			target = board.TaskTarget(task.ID)
		}
		v.drag.End(target)
		v.drag = nil
		v.followTask(activeID)
		return v, nil

	case "esc":
		v.drag.Cancel()
		v.drag = nil
		v.followTask(activeID)
		return v, nil
	}

	return v, nil
}

// moveTask moves the current task to an adjacent column
func (v KanbanView) moveTask(dir int) (tea.Model, tea.Cmd) {
	task := v.currentTask()
	if task == nil {
		return v, nil
	}
	if board.MoveToStatus(v.st, task.ID, dir) {
		v.currentColumn += dir
		v.followTask(task.ID)
	}
	return v, nil
}

// nudgeTask swaps the current task with its neighbour in the column
func (v KanbanView) nudgeTask(delta int) (tea.Model, tea.Cmd) {
	task := v.currentTask()
	if task == nil {
		return v, nil
	}
	col := v.columns()[v.currentColumn].Tasks
	if board.Nudge(v.st, task.ID, delta, col) {
		v.followTask(task.ID)
	}
	return v, nil
}

// followTask puts the cursor on id, switching column if needed
func (v *KanbanView) followTask(id string) {
	for c, col := range v.columns() {
		for r, task := range col.Tasks {
			if task.ID == id {
				v.currentColumn = c
				v.cursorRow = r
				v.ensureCursorVisible()
				return
			}
		}
	}
	v.clampCursor()
}

// clampCursor ensures cursor is valid for current column
func (v *KanbanView) clampCursor() {
	col := v.columns()[v.currentColumn].Tasks
	if v.cursorRow >= len(col) {
		if len(col) > 0 {
			v.cursorRow = len(col) - 1
		} else {
			v.cursorRow = 0
		}
	}
	v.ensureCursorVisible()
}

// ensureCursorVisible adjusts scroll to keep cursor in view
func (v *KanbanView) ensureCursorVisible() {
	visibleItems := v.visibleItemCount()
	col := v.currentColumn

	// Scroll down if cursor is below visible area
	if v.cursorRow >= v.columnScroll[col]+visibleItems {
		v.columnScroll[col] = v.cursorRow - visibleItems + 1
	}

	// Scroll up if cursor is above visible area
	if v.cursorRow < v.columnScroll[col] {
		v.columnScroll[col] = v.cursorRow
	}
}

// visibleItemCount returns how many cards fit in the column height
func (v *KanbanView) visibleItemCount() int {
	// header row, two border lines, two scroll indicators, footer
	availableHeight := v.height - 7
	if availableHeight < 1 {
		return 1
	}
	return availableHeight
}

// View renders the kanban board
func (v KanbanView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	now := v.now()
	columns := v.columns()
	statuses := model.Statuses()

	// Responsive layout: show 2 columns when narrow, 4 when wide
	numVisibleCols := len(statuses)
	if v.width < 120 {
		numVisibleCols = 2
	}
	startCol := 0
	if numVisibleCols == 2 && v.currentColumn >= 2 {
		startCol = 2
	}
	endCol := min(startCol+numVisibleCols, len(statuses))

	colWidth := (v.width - 4) / numVisibleCols
	if colWidth < 25 {
		colWidth = 25
	}

	headerStyle := func(s model.Status, active bool) lipgloss.Style {
		st := lipgloss.NewStyle().
			Bold(true).
			Foreground(t.StatusColor(s)).
			Width(colWidth).
			Align(lipgloss.Center)
		if active {
			st = st.Background(t.Highlight)
		}
		return st
	}

	columnStyle := lipgloss.NewStyle().
		Width(colWidth).
		Height(v.height - 3).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)

	// Per-column totals before search and filters
	totals := make(map[model.Status]int)
	projectID := v.st.ActiveProjectID()
	for _, task := range v.st.ActiveTasks() {
		if projectID == "" || task.ProjectID == projectID {
			totals[task.Status]++
		}
	}
	filtered := filterSummary(v.st) != ""

	var headers []string
	for i := startCol; i < endCol; i++ {
		col := columns[i]
		header := fmt.Sprintf("%s (%d)", col.Status.Label(), len(col.Tasks))
		if filtered && len(col.Tasks) != totals[col.Status] {
			header = fmt.Sprintf("%s (%d/%d)", col.Status.Label(), len(col.Tasks), totals[col.Status])
		}
		headers = append(headers, headerStyle(col.Status, i == v.currentColumn).Render(header))
	}
	headerRow := lipgloss.JoinHorizontal(lipgloss.Top, headers...)

	dragID := ""
	if v.drag != nil {
		dragID, _ = v.drag.Active()
	}

	visibleItems := v.visibleItemCount()
	var cols []string
	for i := startCol; i < endCol; i++ {
		tasks := columns[i].Tasks
		isActiveCol := i == v.currentColumn
		scrollOffset := v.columnScroll[i]

		startIdx := min(scrollOffset, len(tasks))
		endIdx := min(scrollOffset+visibleItems, len(tasks))

		var items []string

		if scrollOffset > 0 {
			items = append(items, lipgloss.NewStyle().
				Foreground(t.Subtle).
				Width(colWidth-4).
				Align(lipgloss.Center).
				Render(fmt.Sprintf("↑ %d more", scrollOffset)))
		}

		for j := startIdx; j < endIdx; j++ {
			task := tasks[j]
			isSelected := isActiveCol && j == v.cursorRow
			items = append(items, v.renderCard(task, colWidth, isSelected, task.ID == dragID, now))
		}

		if endIdx < len(tasks) {
			items = append(items, lipgloss.NewStyle().
				Foreground(t.Subtle).
				Width(colWidth-4).
				Align(lipgloss.Center).
				Render(fmt.Sprintf("↓ %d more", len(tasks)-endIdx)))
		}

		content := strings.Join(items, "\n")
		if len(tasks) == 0 {
			content = lipgloss.NewStyle().
				Foreground(t.Subtle).
				Italic(true).
				Render("(empty)")
		}

		cs := columnStyle
		if isActiveCol {
			cs = cs.BorderForeground(t.StatusColor(columns[i].Status))
		}
		cols = append(cols, cs.Render(content))
	}
	columnsRow := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	footer := v.modalView(v.taskTitle(v.targetID))
	if footer == "" {
		footer = v.renderHints(numVisibleCols, startCol)
	}

	return lipgloss.JoinVertical(lipgloss.Left, headerRow, columnsRow, footer)
}

// renderCard draws one task: priority, project, title, then tags and due
// date on a second line when present
func (v KanbanView) renderCard(task model.Task, colWidth int, selected, dragged bool, now time.Time) string {
	t := theme.Current.Theme

	cardStyle := lipgloss.NewStyle().
		Width(colWidth-4).
		Padding(0, 1).
		Foreground(t.Foreground)
	if selected {
		cardStyle = cardStyle.Background(t.Highlight)
	}
	if dragged {
		focused := theme.Current.Styles.TaskFocused
		cardStyle = cardStyle.Foreground(focused.GetForeground()).Bold(focused.GetBold())
	}

	project, projectLen := projectBadge(v.st, task)

	marker := priorityGlyph(task.Priority)
	if dragged {
		marker = "≡"
	}

	title := truncate(task.Title, max(colWidth-8-projectLen, 10))
	if task.IsDone() {
		title = lipgloss.NewStyle().Strikethrough(true).Render(title)
	}
	lines := []string{fmt.Sprintf("%s %s%s", marker, project, title)}

	var meta []string
	if due := renderDue(task, now); due != "" {
		meta = append(meta, due)
	}
	if tags := renderTags(task.Tags); tags != "" {
		meta = append(meta, tags)
	}
	if len(meta) > 0 {
		lines = append(lines, "  "+truncate(strings.Join(meta, " "), colWidth-6))
	}

	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (v KanbanView) renderHints(numVisibleCols, startCol int) string {
	t := theme.Current.Theme

	if v.drag != nil {
		return lipgloss.NewStyle().Foreground(t.Primary).Render(
			"dragging • h/l: column • j/k: target • space: drop • esc: cancel")
	}

	var colIndicator string
	if numVisibleCols == 2 {
		colIndicator = fmt.Sprintf("[%d-%d/%d] ", startCol+1, startCol+2, len(model.Statuses()))
	}

	hints := "h/l: column • j/k: nav • H/L: move • J/K: reorder • space: drag • a: add • enter: edit • x: done • d: del • /: search"
	if summary := filterSummary(v.st); summary != "" {
		return lipgloss.NewStyle().Foreground(t.Info).Render("["+summary+"] ") +
			lipgloss.NewStyle().Foreground(t.Subtle).Render("esc: clear")
	}
	if colIndicator != "" {
		hints = lipgloss.NewStyle().Foreground(t.Info).Render(colIndicator) +
			lipgloss.NewStyle().Foreground(t.Subtle).Render(hints)
		return hints
	}
	return lipgloss.NewStyle().Foreground(t.Subtle).Render(hints)
}
