package board

import (
	"fmt"
	"testing"
	"time"

	"github.com/dori/bloc/internal/model"
	"github.com/dori/bloc/internal/state"
	"github.com/dori/bloc/internal/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"forward", 0, 2, []string{"b", "c", "a", "d"}},
		{"backward", 3, 1, []string{"a", "d", "b", "c"}},
		{"same", 1, 1, []string{"a", "b", "c", "d"}},
		{"out of range", 0, 9, []string{"a", "b", "c", "d"}},
		{"negative", -1, 0, []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []string{"a", "b", "c", "d"}
			got := Move(in, tt.from, tt.to)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"a", "b", "c", "d"}, in)
		})
	}
}

type harness struct {
	mem   *storage.Memory
	state *state.State
}

func newHarness(t *testing.T, statuses ...model.Status) *harness {
	t.Helper()
	mem := storage.NewMemory()
	n := 0
	s := state.New(storage.NewStore(mem, zerolog.Nop()),
		state.WithClock(func() time.Time { return time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC) }),
		state.WithIDGenerator(func() string { n++; return fmt.Sprintf("t%d", n) }),
	)
	s.Init()

	for i, st := range statuses {
		task := s.CreateTask(model.CreateTaskInput{Title: fmt.Sprintf("task %d", i+1), ProjectID: model.InboxID})
		if st != task.Status {
			s.UpdateTask(task.ID, model.StatusUpdate(st))
		}
	}
	return &harness{mem: mem, state: s}
}

func (h *harness) ids() []string {
	var out []string
	for _, t := range h.state.Tasks() {
		out = append(out, t.ID)
	}
	return out
}

func (h *harness) status(t *testing.T, id string) model.Status {
	t.Helper()
	task, ok := h.state.Task(id)
	require.True(t, ok)
	return task.Status
}

func TestDragOverColumnChangesStatus(t *testing.T) {
	h := newHarness(t, model.StatusTodo, model.StatusTodo)
	d := NewDrag(h.state)

	d.Start("t1")
	assert.True(t, d.Over(ColumnTarget(model.StatusInProgress)))
	assert.Equal(t, model.StatusInProgress, h.status(t, "t1"))

	// the drag is still live; the drop on nothing writes nothing more
	before := h.mem.Writes()
	assert.False(t, d.End(NoTarget))
	assert.Equal(t, before, h.mem.Writes())
	assert.Equal(t, model.StatusInProgress, h.status(t, "t1"))

	_, active := d.Active()
	assert.False(t, active)
}

func TestDragOverSameColumnIsSuppressed(t *testing.T) {
	h := newHarness(t, model.StatusTodo)
	d := NewDrag(h.state)
	before := h.mem.Writes()

	d.Start("t1")
	assert.False(t, d.Over(ColumnTarget(model.StatusTodo)))
	assert.False(t, d.Over(ColumnTarget(model.StatusTodo)))
	assert.False(t, d.Over(TaskTarget("t1")))
	assert.False(t, d.Over(NoTarget))

	assert.Equal(t, before, h.mem.Writes())
}

func TestDragOutAndBackWritesTwice(t *testing.T) {
	h := newHarness(t, model.StatusTodo)
	d := NewDrag(h.state)
	before := h.mem.Writes()

	d.Start("t1")
	d.Over(ColumnTarget(model.StatusDone))
	d.Over(ColumnTarget(model.StatusDone))
	d.Over(ColumnTarget(model.StatusTodo))
	d.End(NoTarget)

	assert.Equal(t, before+2, h.mem.Writes())
	task, _ := h.state.Task("t1")
	assert.Equal(t, model.StatusTodo, task.Status)
	assert.Nil(t, task.CompletedAt)
}

func TestDropOnSameStatusTaskReorders(t *testing.T) {
	h := newHarness(t, model.StatusTodo, model.StatusDone, model.StatusTodo, model.StatusTodo)
	d := NewDrag(h.state)

	d.Start("t4")
	require.True(t, d.End(TaskTarget("t1")))

	assert.Equal(t, []string{"t4", "t1", "t2", "t3"}, h.ids())
	for i, task := range h.state.Tasks() {
		assert.Equal(t, i, task.Order)
	}

	todo := Columns(h.state.Tasks())[model.StatusTodo.Index()]
	assert.Equal(t, model.StatusTodo, todo.Status)
	assert.Equal(t, "t4", todo.Tasks[0].ID)
}

func TestDropNoops(t *testing.T) {
	tests := []struct {
		name   string
		target Target
	}{
		{"nothing", NoTarget},
		{"itself", TaskTarget("t1")},
		{"other status", TaskTarget("t2")},
		{"column", ColumnTarget(model.StatusTodo)},
		{"missing task", TaskTarget("ghost")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, model.StatusTodo, model.StatusDone, model.StatusTodo)
			d := NewDrag(h.state)
			before := h.mem.Writes()

			d.Start("t1")
			assert.False(t, d.End(tt.target))

			assert.Equal(t, before, h.mem.Writes())
			assert.Equal(t, []string{"t1", "t2", "t3"}, h.ids())
			_, active := d.Active()
			assert.False(t, active)
		})
	}
}

func TestIdleDragDoesNothing(t *testing.T) {
	h := newHarness(t, model.StatusTodo, model.StatusTodo)
	d := NewDrag(h.state)
	before := h.mem.Writes()

	assert.False(t, d.Over(ColumnTarget(model.StatusDone)))
	assert.False(t, d.End(TaskTarget("t2")))

	d.Start("t1")
	d.Cancel()
	assert.False(t, d.End(TaskTarget("t2")))

	assert.Equal(t, before, h.mem.Writes())
}

func TestMoveToStatus(t *testing.T) {
	h := newHarness(t, model.StatusBrainstorm, model.StatusDone)

	assert.True(t, MoveToStatus(h.state, "t1", 1))
	assert.Equal(t, model.StatusTodo, h.status(t, "t1"))

	assert.False(t, MoveToStatus(h.state, "t2", 1))
	assert.Equal(t, model.StatusDone, h.status(t, "t2"))

	assert.True(t, MoveToStatus(h.state, "t2", -1))
	assert.Equal(t, model.StatusInProgress, h.status(t, "t2"))

	assert.False(t, MoveToStatus(h.state, "ghost", 1))
	assert.False(t, MoveToStatus(h.state, "t1", 0))
}

func TestNudge(t *testing.T) {
	h := newHarness(t, model.StatusTodo, model.StatusDone, model.StatusTodo, model.StatusTodo)
	column := func() []model.Task {
		return Columns(h.state.Tasks())[model.StatusTodo.Index()].Tasks
	}
	colIDs := func() []string {
		var out []string
		for _, t := range column() {
			out = append(out, t.ID)
		}
		return out
	}
	require.Equal(t, []string{"t1", "t3", "t4"}, colIDs())

	assert.True(t, Nudge(h.state, "t1", 1, column()))
	assert.Equal(t, []string{"t3", "t1", "t4"}, colIDs())

	assert.True(t, Nudge(h.state, "t4", -1, column()))
	assert.Equal(t, []string{"t3", "t4", "t1"}, colIDs())

	assert.False(t, Nudge(h.state, "t3", -1, column()))
	assert.False(t, Nudge(h.state, "t1", 1, column()))
	assert.Equal(t, []string{"t3", "t4", "t1"}, colIDs())
}

func TestNudgeAfterDeleteFollowsDisplayedOrder(t *testing.T) {
	h := newHarness(t, model.StatusTodo, model.StatusTodo, model.StatusTodo)
	h.state.DeleteTask("t1")
	h.state.DeleteTask("t2")
	// created with Order 1 while t3 still carries Order 2
	h.state.CreateTask(model.CreateTaskInput{Title: "task 4", ProjectID: model.InboxID})

	column := func() []string {
		var out []string
		for _, t := range Columns(h.state.Tasks())[model.StatusTodo.Index()].Tasks {
			out = append(out, t.ID)
		}
		return out
	}
	require.Equal(t, []string{"t4", "t3"}, column())

	todo := Columns(h.state.Tasks())[model.StatusTodo.Index()].Tasks
	require.True(t, Nudge(h.state, "t3", -1, todo))
	assert.Equal(t, []string{"t3", "t4"}, column())

	todo = Columns(h.state.Tasks())[model.StatusTodo.Index()].Tasks
	require.True(t, Nudge(h.state, "t3", 1, todo))
	assert.Equal(t, []string{"t4", "t3"}, column())
}

func TestSendToBack(t *testing.T) {
	h := newHarness(t, model.StatusTodo, model.StatusTodo, model.StatusDone, model.StatusTodo)

	assert.True(t, SendToBack(h.state, "t1"))
	assert.Equal(t, []string{"t2", "t3", "t4", "t1"}, h.ids())
	for i, task := range h.state.Tasks() {
		assert.Equal(t, i, task.Order)
	}

	before := h.mem.Writes()
	assert.False(t, SendToBack(h.state, "t1"))
	assert.False(t, SendToBack(h.state, "ghost"))
	assert.Equal(t, before, h.mem.Writes())
}

func TestColumns(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", Status: model.StatusDone, Order: 2},
		{ID: "b", Status: model.StatusTodo, Order: 5},
		{ID: "c", Status: model.StatusTodo, Order: 1},
	}

	cols := Columns(tasks)
	require.Len(t, cols, len(model.Statuses()))
	for i, s := range model.Statuses() {
		assert.Equal(t, s, cols[i].Status)
	}
	assert.Empty(t, cols[model.StatusBrainstorm.Index()].Tasks)
	assert.Equal(t, "c", cols[model.StatusTodo.Index()].Tasks[0].ID)
	assert.Equal(t, "b", cols[model.StatusTodo.Index()].Tasks[1].ID)
	assert.Equal(t, "a", cols[model.StatusDone.Index()].Tasks[0].ID)
}
