package state

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/dori/bloc/internal/model"
	"github.com/dori/bloc/internal/query"
	"github.com/dori/bloc/internal/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	t time.Time
}

func (c *clock) Now() time.Time { return c.t }

func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type fixture struct {
	mem   *storage.Memory
	store *storage.Store
	clock *clock
	state *State
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := storage.NewMemory()
	store := storage.NewStore(mem, zerolog.Nop())
	c := &clock{t: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}

	s := New(store,
		WithClock(c.Now),
		WithIDGenerator(sequentialIDs()),
		WithRand(rand.New(rand.NewSource(7))),
	)
	s.Init()

	return &fixture{mem: mem, store: store, clock: c, state: s}
}

func strPtr(s string) *string { return &s }

func TestInitCreatesInbox(t *testing.T) {
	f := newFixture(t)

	projects := f.state.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, model.InboxID, projects[0].ID)
	assert.Equal(t, "Inbox", projects[0].Name)
	assert.Equal(t, model.Accent, projects[0].Color)
	assert.Equal(t, model.InboxID, f.state.ActiveProjectID())
	assert.Empty(t, f.state.Tasks())

	stored := f.store.LoadProjects()
	require.Len(t, stored, 1)
	assert.Equal(t, model.InboxID, stored[0].ID)
	assert.Equal(t, model.ViewKanban, f.state.ViewMode())
	assert.Equal(t, model.ThemeLight, f.state.Theme())
}

func TestInitKeepsStoredSettings(t *testing.T) {
	mem := storage.NewMemory()
	store := storage.NewStore(mem, zerolog.Nop())
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	store.SaveProjects([]model.Project{model.NewInbox(now), {ID: "p1", Name: "Work", CreatedAt: now, UpdatedAt: now}})
	store.SaveSettings(model.Settings{ActiveProjectID: strPtr("p1"), ViewMode: model.ViewList, Theme: model.ThemeDark})

	s := New(store)
	s.Init()

	assert.Equal(t, "p1", s.ActiveProjectID())
	assert.Equal(t, model.ViewList, s.ViewMode())
	assert.Equal(t, model.ThemeDark, s.Theme())
	assert.Len(t, s.Projects(), 2)
}

func TestInitFallsBackToFirstProject(t *testing.T) {
	store := storage.NewStore(storage.NewMemory(), zerolog.Nop())
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	store.SaveProjects([]model.Project{{ID: "p9", Name: "First", CreatedAt: now, UpdatedAt: now}})

	s := New(store)
	s.Init()

	assert.Equal(t, "p9", s.ActiveProjectID())
}

func TestCreateAndReorderScenario(t *testing.T) {
	f := newFixture(t)

	a := f.state.CreateTask(model.CreateTaskInput{Title: "Write draft", ProjectID: model.InboxID, Priority: model.PriorityHigh})
	assert.Equal(t, model.StatusInitial, a.Status)
	assert.Equal(t, 0, a.Order)

	b := f.state.CreateTask(model.CreateTaskInput{Title: "Review draft", ProjectID: model.InboxID, Priority: model.PriorityHigh})
	assert.Equal(t, 1, b.Order)

	f.state.ReorderTasks([]model.Task{b, a})

	gotA, ok := f.state.Task(a.ID)
	require.True(t, ok)
	gotB, ok := f.state.Task(b.ID)
	require.True(t, ok)
	assert.Equal(t, 1, gotA.Order)
	assert.Equal(t, 0, gotB.Order)
}

func TestCreateTaskDefaults(t *testing.T) {
	f := newFixture(t)

	task := f.state.CreateTask(model.CreateTaskInput{Title: "Plain", ProjectID: model.InboxID})

	assert.Equal(t, "id-1", task.ID)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.NotNil(t, task.Tags)
	assert.Empty(t, task.Tags)
	assert.False(t, task.IsArchived)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, f.clock.Now(), task.CreatedAt)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
}

func TestCompletedAt(t *testing.T) {
	f := newFixture(t)
	task := f.state.CreateTask(model.CreateTaskInput{Title: "Finish", ProjectID: model.InboxID})

	f.clock.Advance(time.Hour)
	doneAt := f.clock.Now()
	f.state.UpdateTask(task.ID, model.StatusUpdate(model.StatusDone))

	got, _ := f.state.Task(task.ID)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, doneAt, *got.CompletedAt)
	assert.Equal(t, doneAt, got.UpdatedAt)

	// done -> done keeps the original completion time
	f.clock.Advance(time.Hour)
	f.state.UpdateTask(task.ID, model.StatusUpdate(model.StatusDone))
	got, _ = f.state.Task(task.ID)
	assert.Equal(t, doneAt, *got.CompletedAt)

	// an update without a status leaves it alone
	f.state.UpdateTask(task.ID, model.TaskUpdate{Title: strPtr("Finished")})
	got, _ = f.state.Task(task.ID)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, "Finished", got.Title)

	f.state.UpdateTask(task.ID, model.StatusUpdate(model.StatusInProgress))
	got, _ = f.state.Task(task.ID)
	assert.Nil(t, got.CompletedAt)
}

func TestReorderIdempotent(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 4; i++ {
		f.state.CreateTask(model.CreateTaskInput{Title: fmt.Sprintf("t%d", i), ProjectID: model.InboxID})
	}
	tasks := f.state.Tasks()
	reversed := []model.Task{tasks[3], tasks[1], tasks[2], tasks[0]}

	f.state.ReorderTasks(reversed)
	first := orders(f.state.Tasks())
	f.state.ReorderTasks(reversed)
	second := orders(f.state.Tasks())

	assert.Equal(t, first, second)
	assert.Equal(t, map[string]int{"id-4": 0, "id-2": 1, "id-3": 2, "id-1": 3}, first)
}

func orders(tasks []model.Task) map[string]int {
	out := make(map[string]int, len(tasks))
	for _, t := range tasks {
		out[t.ID] = t.Order
	}
	return out
}

func TestDeleteInboxIsNoop(t *testing.T) {
	f := newFixture(t)
	before := f.mem.Writes()

	f.state.DeleteProject(model.InboxID)

	_, ok := f.state.Project(model.InboxID)
	assert.True(t, ok)
	assert.Equal(t, before, f.mem.Writes())
}

func TestDeleteProjectReassignsTasks(t *testing.T) {
	f := newFixture(t)
	p := f.state.CreateProject(model.CreateProjectInput{Name: "Work"})
	f.state.SetActiveProject(&p.ID)
	task := f.state.CreateTask(model.CreateTaskInput{Title: "Report", ProjectID: p.ID})
	other := f.state.CreateTask(model.CreateTaskInput{Title: "Groceries", ProjectID: model.InboxID})

	f.clock.Advance(time.Minute)
	f.state.DeleteProject(p.ID)

	_, ok := f.state.Project(p.ID)
	assert.False(t, ok)

	got, _ := f.state.Task(task.ID)
	assert.Equal(t, model.InboxID, got.ProjectID)
	assert.Equal(t, f.clock.Now(), got.UpdatedAt)

	untouched, _ := f.state.Task(other.ID)
	assert.Equal(t, other.UpdatedAt, untouched.UpdatedAt)

	assert.Equal(t, model.InboxID, f.state.ActiveProjectID())
	stored := f.store.LoadSettings()
	require.NotNil(t, stored.ActiveProjectID)
	assert.Equal(t, model.InboxID, *stored.ActiveProjectID)

	assert.Len(t, f.store.LoadProjects(), 1)
	for _, st := range f.store.LoadTasks() {
		assert.Equal(t, model.InboxID, st.ProjectID)
	}
}

func TestDeleteProjectWritesBoardInOneBatch(t *testing.T) {
	f := newFixture(t)
	p := f.state.CreateProject(model.CreateProjectInput{Name: "Work"})
	f.state.CreateTask(model.CreateTaskInput{Title: "Report", ProjectID: p.ID})
	before := f.mem.Batches()

	f.state.DeleteProject(p.ID)

	assert.Equal(t, before+1, f.mem.Batches())
	assert.Len(t, f.store.LoadProjects(), 1)
	assert.Equal(t, model.InboxID, f.store.LoadTasks()[0].ProjectID)
}

func TestDeleteInactiveProjectKeepsSelection(t *testing.T) {
	f := newFixture(t)
	p := f.state.CreateProject(model.CreateProjectInput{Name: "Side"})

	f.state.DeleteProject(p.ID)

	assert.Equal(t, model.InboxID, f.state.ActiveProjectID())
}

func TestOneWritePerMutation(t *testing.T) {
	f := newFixture(t)
	before := f.mem.Writes()

	task := f.state.CreateTask(model.CreateTaskInput{Title: "a", ProjectID: model.InboxID})
	f.state.UpdateTask(task.ID, model.TaskUpdate{Title: strPtr("b")})
	f.state.ArchiveTask(task.ID)
	f.state.UnarchiveTask(task.ID)
	f.state.ReorderTasks(f.state.Tasks())
	f.state.CreateProject(model.CreateProjectInput{Name: "p"})
	f.state.SetViewMode(model.ViewList)
	f.state.SetTheme(model.ThemeDark)
	f.state.DeleteTask(task.ID)

	assert.Equal(t, before+9, f.mem.Writes())

	// UI-only state is not persisted
	f.state.SetSearchQuery("x")
	f.state.SetFilters(model.Filters{Tags: []string{"a"}})
	f.state.SetNav(model.NavArchive)
	f.state.ClearFilters()
	assert.Equal(t, before+9, f.mem.Writes())
}

func TestUnknownIDsAreIgnored(t *testing.T) {
	f := newFixture(t)
	before := f.mem.Writes()

	f.state.UpdateTask("nope", model.StatusUpdate(model.StatusDone))
	f.state.DeleteTask("nope")
	f.state.ArchiveTask("nope")
	f.state.UnarchiveTask("nope")
	f.state.UpdateProject("nope", model.ProjectUpdate{Name: strPtr("x")})
	f.state.DeleteProject("nope")

	assert.Equal(t, before, f.mem.Writes())
	_, ok := f.state.Task("nope")
	assert.False(t, ok)
}

func TestArchive(t *testing.T) {
	f := newFixture(t)
	task := f.state.CreateTask(model.CreateTaskInput{Title: "old", ProjectID: model.InboxID})

	f.state.ArchiveTask(task.ID)
	assert.Empty(t, f.state.ActiveTasks())
	assert.Len(t, f.state.ArchivedTasks(), 1)
	assert.Empty(t, f.state.ProjectTasks(model.InboxID))

	f.state.UnarchiveTask(task.ID)
	assert.Len(t, f.state.ActiveTasks(), 1)
	assert.Empty(t, f.state.ArchivedTasks())
}

func TestUpdateProject(t *testing.T) {
	f := newFixture(t)
	p := f.state.CreateProject(model.CreateProjectInput{Name: "Work", Color: "#123456"})
	assert.Equal(t, "#123456", p.Color)

	f.clock.Advance(time.Second)
	f.state.UpdateProject(p.ID, model.ProjectUpdate{Name: strPtr("Job")})

	got, ok := f.state.Project(p.ID)
	require.True(t, ok)
	assert.Equal(t, "Job", got.Name)
	assert.Equal(t, "#123456", got.Color)
	assert.Equal(t, f.clock.Now(), got.UpdatedAt)
}

func TestCreateProjectPicksPaletteColor(t *testing.T) {
	f := newFixture(t)
	p := f.state.CreateProject(model.CreateProjectInput{Name: "Colorful"})
	assert.Contains(t, model.Palette[:], p.Color)
}

func TestDanglingProjectTasksVanish(t *testing.T) {
	f := newFixture(t)
	f.state.CreateTask(model.CreateTaskInput{Title: "orphan", ProjectID: "gone"})

	assert.Empty(t, f.state.ProjectTasks(model.InboxID))
	assert.Len(t, f.state.ActiveTasks(), 1)
}

func TestVisibleTasks(t *testing.T) {
	f := newFixture(t)
	work := f.state.CreateProject(model.CreateProjectInput{Name: "Work"})

	f.state.CreateTask(model.CreateTaskInput{Title: "inbox low", ProjectID: model.InboxID, Priority: model.PriorityLow})
	f.state.CreateTask(model.CreateTaskInput{Title: "inbox high", ProjectID: model.InboxID, Priority: model.PriorityHigh, Tags: []string{"urgent"}})
	f.state.CreateTask(model.CreateTaskInput{Title: "work high", ProjectID: work.ID, Priority: model.PriorityHigh})

	titles := func(tasks []model.Task) []string {
		out := make([]string, len(tasks))
		for i, t := range tasks {
			out[i] = t.Title
		}
		return out
	}

	assert.Equal(t, []string{"inbox low", "inbox high"}, titles(f.state.VisibleTasks(query.SortManual)))
	assert.Equal(t, []string{"inbox high", "inbox low"}, titles(f.state.VisibleTasks(query.SortPriority)))

	f.state.SetSearchQuery("URGENT")
	assert.Equal(t, []string{"inbox high"}, titles(f.state.VisibleTasks(query.SortManual)))

	f.state.ClearFilters()
	low := model.PriorityLow
	f.state.SetFilters(model.Filters{Priority: &low})
	assert.Equal(t, []string{"inbox low"}, titles(f.state.VisibleTasks(query.SortManual)))

	f.state.ClearFilters()
	f.state.SetActiveProject(nil)
	assert.Len(t, f.state.VisibleTasks(query.SortManual), 3)
}

func TestOverdue(t *testing.T) {
	f := newFixture(t)
	now := f.clock.Now()
	yesterday := now.AddDate(0, 0, -1)
	earlierToday := now.Add(-time.Hour)

	assert.True(t, model.IsOverdue(yesterday, now))
	assert.False(t, model.IsOverdue(earlierToday, now))

	late := f.state.CreateTask(model.CreateTaskInput{Title: "late", ProjectID: model.InboxID, DueDate: &yesterday})
	finished := f.state.CreateTask(model.CreateTaskInput{Title: "finished", ProjectID: model.InboxID, DueDate: &yesterday})
	f.state.UpdateTask(finished.ID, model.StatusUpdate(model.StatusDone))
	f.state.CreateTask(model.CreateTaskInput{Title: "today", ProjectID: model.InboxID, DueDate: &earlierToday})

	got, _ := f.state.Task(late.ID)
	assert.True(t, got.IsOverdue(now))
	got, _ = f.state.Task(finished.ID)
	assert.False(t, got.IsOverdue(now))

	st := f.state.Stats()
	assert.Equal(t, 1, st.Overdue)
	assert.Equal(t, 1, st.DueToday)
	assert.Equal(t, 3, st.Active)
	assert.Equal(t, 2, st.ByStatus[model.StatusTodo])
	assert.Equal(t, 1, st.ByStatus[model.StatusDone])
	assert.Equal(t, 0, st.ByStatus[model.StatusBrainstorm])
}

func TestAllTags(t *testing.T) {
	f := newFixture(t)
	f.state.CreateTask(model.CreateTaskInput{Title: "a", ProjectID: model.InboxID, Tags: []string{"work", "home"}})
	hidden := f.state.CreateTask(model.CreateTaskInput{Title: "b", ProjectID: model.InboxID, Tags: []string{"secret"}})
	f.state.CreateTask(model.CreateTaskInput{Title: "c", ProjectID: model.InboxID, Tags: []string{"home"}})
	f.state.ArchiveTask(hidden.ID)

	assert.Equal(t, []string{"home", "work"}, f.state.AllTags())
}

func TestStatePersistsAcrossInstances(t *testing.T) {
	f := newFixture(t)
	due := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	task := f.state.CreateTask(model.CreateTaskInput{
		Title:     "Survive restart",
		ProjectID: model.InboxID,
		Tags:      []string{"2024"},
		DueDate:   &due,
	})
	f.state.UpdateTask(task.ID, model.StatusUpdate(model.StatusDone))
	f.state.SetViewMode(model.ViewList)

	reopened := New(f.store, WithClock(f.clock.Now))
	reopened.Init()

	got, ok := reopened.Task(task.ID)
	require.True(t, ok)
	want, _ := f.state.Task(task.ID)
	assert.Equal(t, want, got)
	assert.Equal(t, model.ViewList, reopened.ViewMode())
}

func TestStorageFailureKeepsMemoryState(t *testing.T) {
	f := newFixture(t)
	f.mem.SetErr = errors.New("disk full")

	task := f.state.CreateTask(model.CreateTaskInput{Title: "still here", ProjectID: model.InboxID})

	_, ok := f.state.Task(task.ID)
	assert.True(t, ok)

	f.mem.SetErr = nil
	assert.Empty(t, f.store.LoadTasks())
}

func TestReturnedTasksDoNotAlias(t *testing.T) {
	f := newFixture(t)
	task := f.state.CreateTask(model.CreateTaskInput{Title: "x", ProjectID: model.InboxID, Tags: []string{"a"}})

	task.Tags[0] = "mutated"
	tasks := f.state.Tasks()
	tasks[0].Tags[0] = "mutated"

	got, _ := f.state.Task(task.ID)
	assert.Equal(t, []string{"a"}, got.Tags)
}

func TestLoadSampleData(t *testing.T) {
	f := newFixture(t)
	f.state.CreateTask(model.CreateTaskInput{Title: "replaced", ProjectID: model.InboxID})
	gone := f.state.CreateProject(model.CreateProjectInput{Name: "replaced"})
	f.state.SetActiveProject(&gone.ID)

	f.state.LoadSampleData(f.clock.Now())

	projects := f.state.Projects()
	require.Len(t, projects, len(sampleProjects)+1)
	assert.Equal(t, model.InboxID, projects[0].ID)

	tasks := f.state.Tasks()
	require.NotEmpty(t, tasks)
	for i, task := range tasks {
		assert.Equal(t, i, task.Order)
		_, ok := f.state.Project(task.ProjectID)
		assert.True(t, ok, "task %s has no project", task.ID)
		if task.Status == model.StatusDone {
			assert.NotNil(t, task.CompletedAt)
		} else {
			assert.Nil(t, task.CompletedAt)
		}
	}

	assert.Equal(t, projects[1].ID, f.state.ActiveProjectID())
	assert.Len(t, f.store.LoadTasks(), len(tasks))
}
