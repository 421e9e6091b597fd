package board

import (
	"github.com/dori/bloc/internal/model"
	"github.com/dori/bloc/internal/query"
)

type targetKind int

const (
	targetNone targetKind = iota
	targetColumn
	targetTask
)

// Target is whatever the pointer is over: a column, a task or nothing.
type Target struct {
	kind   targetKind
	status model.Status
	taskID string
}

// NoTarget is empty space.
var NoTarget = Target{}

// ColumnTarget is the drop region of the column for s.
func ColumnTarget(s model.Status) Target {
	return Target{kind: targetColumn, status: s}
}

// TaskTarget is the card of task id.
func TaskTarget(id string) Target {
	return Target{kind: targetTask, taskID: id}
}

// IsNone reports whether t points at nothing.
func (t Target) IsNone() bool {
	return t.kind == targetNone
}

// Column returns the column status, if t is a column.
func (t Target) Column() (model.Status, bool) {
	return t.status, t.kind == targetColumn
}

// Task returns the task id, if t is a task card.
func (t Target) Task() (string, bool) {
	return t.taskID, t.kind == targetTask
}

// Drag tracks one gesture at a time. The zero value is not usable; call NewDrag.
type Drag struct {
	m      Mover
	active string
}

// NewDrag returns an idle drag bound to m.
func NewDrag(m Mover) *Drag {
	return &Drag{m: m}
}

// Start begins dragging taskID, replacing any gesture in progress.
func (d *Drag) Start(taskID string) {
	d.active = taskID
}

// Active returns the dragged task id.
func (d *Drag) Active() (string, bool) {
	return d.active, d.active != ""
}

// Cancel abandons the gesture without writing anything.
func (d *Drag) Cancel() {
	d.active = ""
}

// Over handles the pointer entering target. Entering a column of another
// status moves the task there at once. It reports whether a write happened.
func (d *Drag) Over(target Target) bool {
	if d.active == "" {
		return false
	}
	status, ok := target.Column()
	if !ok {
		return false
	}

	task, ok := d.find(d.active)
	if !ok || task.Status == status {
		return false
	}

	d.m.UpdateTask(task.ID, model.StatusUpdate(status))
	return true
}

// End drops the task on target and clears the gesture. Dropping on another
// task of the same status reorders the whole collection, taken in manual
// order so the move matches the columns as displayed; anything else is a
// no-op. It reports whether a write happened.
func (d *Drag) End(target Target) bool {
	activeID := d.active
	d.active = ""

	overID, ok := target.Task()
	if activeID == "" || !ok || overID == activeID {
		return false
	}

	tasks := query.SortByOrder(d.m.Tasks())
	from := indexOf(tasks, activeID)
	to := indexOf(tasks, overID)
	if from < 0 || to < 0 || tasks[from].Status != tasks[to].Status {
		return false
	}

	d.m.ReorderTasks(Move(tasks, from, to))
	return true
}

func (d *Drag) find(id string) (model.Task, bool) {
	tasks := d.m.Tasks()
	if i := indexOf(tasks, id); i >= 0 {
		return tasks[i], true
	}
	return model.Task{}, false
}
