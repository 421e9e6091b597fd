package board

import (
	"github.com/dori/bloc/internal/model"
	"github.com/dori/bloc/internal/query"
)

// MoveToStatus shifts a task dir columns left (negative) or right
// (positive). Moving past either end is a no-op. It reports whether the
// task moved.
func MoveToStatus(m Mover, taskID string, dir int) bool {
	tasks := m.Tasks()
	i := indexOf(tasks, taskID)
	if i < 0 || dir == 0 {
		return false
	}

	statuses := model.Statuses()
	next := tasks[i].Status.Index() + dir
	if next < 0 || next >= len(statuses) {
		return false
	}

	d := NewDrag(m)
	d.Start(taskID)
	moved := d.Over(ColumnTarget(statuses[next]))
	d.End(NoTarget)
	return moved
}

// Nudge moves a task up (negative delta) or down within its displayed
// column by dropping it on the neighbour delta places away. visible is
// the column as shown.
func Nudge(m Mover, taskID string, delta int, visible []model.Task) bool {
	i := indexOf(visible, taskID)
	j := i + delta
	if i < 0 || delta == 0 || j < 0 || j >= len(visible) {
		return false
	}

	d := NewDrag(m)
	d.Start(taskID)
	return d.End(TaskTarget(visible[j].ID))
}

// SendToBack moves a task behind every other task in manual order, which
// puts it at the bottom of its column. It reports whether anything moved.
func SendToBack(m Mover, taskID string) bool {
	tasks := query.SortByOrder(m.Tasks())
	i := indexOf(tasks, taskID)
	if i < 0 || i == len(tasks)-1 {
		return false
	}
	m.ReorderTasks(Move(tasks, i, len(tasks)-1))
	return true
}
