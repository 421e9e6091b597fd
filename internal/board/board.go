// Package board turns drag gestures and their keyboard equivalents into
// task mutations. A drag over a column changes the task's status; a drop on
// a task of the same status moves it to that task's position.
package board

import (
	"slices"

	"github.com/dori/bloc/internal/model"
	"github.com/dori/bloc/internal/query"
)

// Mover is the part of the state container the board writes to.
type Mover interface {
	Tasks() []model.Task
	UpdateTask(id string, u model.TaskUpdate)
	ReorderTasks(ordered []model.Task)
}

// Move returns a copy of s with the element at from moved to index to.
// Everything else keeps its relative order. Out of range indices return
// an unchanged copy.
func Move[T any](s []T, from, to int) []T {
	out := slices.Clone(s)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	v := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, v)
}

// Column is one workflow stage and its tasks in manual order.
type Column struct {
	Status model.Status
	Tasks  []model.Task
}

// Columns groups tasks by status in workflow order. Empty stages still
// get a column.
func Columns(tasks []model.Task) []Column {
	cols := make([]Column, 0, len(model.Statuses()))
	for _, s := range model.Statuses() {
		cols = append(cols, Column{
			Status: s,
			Tasks:  query.SortByOrder(query.ByStatus(tasks, s)),
		})
	}
	return cols
}

func indexOf(tasks []model.Task, id string) int {
	return slices.IndexFunc(tasks, func(t model.Task) bool { return t.ID == id })
}
