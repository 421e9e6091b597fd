package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/dori/bloc/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrTime(t time.Time) *time.Time { return &t }

func fixtureTasks() []model.Task {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	due := time.Date(2024, 3, 8, 17, 0, 0, 0, time.UTC)
	done := time.Date(2024, 3, 2, 11, 15, 30, 500, time.UTC)

	return []model.Task{
		{
			ID:          "t1",
			Title:       "Call 555-1234 before 2024",
			Description: "ticket 2024-03-01 #42 and build 1.2.3",
			ProjectID:   model.InboxID,
			Status:      model.StatusTodo,
			Priority:    model.PriorityHigh,
			Tags:        []string{"phone", "2024"},
			DueDate:     ptrTime(due),
			CreatedAt:   created,
			UpdatedAt:   created,
			Order:       0,
		},
		{
			ID:          "t2",
			Title:       "Ship it",
			ProjectID:   "p1",
			Status:      model.StatusDone,
			Priority:    model.PriorityLow,
			Tags:        []string{},
			CreatedAt:   created,
			UpdatedAt:   done,
			CompletedAt: ptrTime(done),
			Order:       1,
			IsArchived:  true,
		},
	}
}

func TestRoundTripTasks(t *testing.T) {
	tasks := fixtureTasks()

	data, err := Encode(tasks)
	require.NoError(t, err)

	var got []model.Task
	require.NoError(t, Decode(data, &got))

	assert.Equal(t, tasks, got)
}

func TestRoundTripProjects(t *testing.T) {
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	projects := []model.Project{
		model.NewInbox(now),
		{ID: "p1", Name: "Release 2025-01-01T00:00", Color: "#BAE1FF", CreatedAt: now, UpdatedAt: now},
	}

	data, err := Encode(projects)
	require.NoError(t, err)

	var got []model.Project
	require.NoError(t, Decode(data, &got))
	assert.Equal(t, projects, got)
}

func TestEncodeWritesISOTimestamps(t *testing.T) {
	data, err := Encode(fixtureTasks()[:1])
	require.NoError(t, err)

	assert.Contains(t, string(data), `"createdAt":"2024-03-01T09:30:00Z"`)
	assert.Contains(t, string(data), `"dueDate":"2024-03-08T17:00:00Z"`)
	assert.NotContains(t, string(data), `completedAt`)
}

func TestReviveIgnoresKeyNames(t *testing.T) {
	tree := map[string]any{
		"whatever": "2024-05-06T07:08:09Z",
		"nested": []any{
			map[string]any{"x": "2024-05-06T07:08:09.123+02:00"},
			"not a date 2024-05-06",
		},
		"n":    float64(3),
		"bare": "2024-05-06T07:08:09",
	}

	out := Revive(tree).(map[string]any)

	require.IsType(t, Revived{}, out["whatever"])
	assert.True(t, out["whatever"].(Revived).Time.Equal(time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)))
	nested := out["nested"].([]any)
	assert.IsType(t, Revived{}, nested[0].(map[string]any)["x"])
	assert.Equal(t, "not a date 2024-05-06", nested[1])
	assert.Equal(t, float64(3), out["n"])
	require.IsType(t, Revived{}, out["bare"])
	assert.Equal(t, "2024-05-06T07:08:09", out["bare"].(Revived).Raw)
}

func TestReviveKeepsUnparseablePrefixMatches(t *testing.T) {
	s := "2024-05-06T07:08:09 standup notes"
	assert.Equal(t, s, Revive(s))
}

func TestDecodeRejectsUnknownStatus(t *testing.T) {
	var got []model.Task
	err := Decode([]byte(`[{"id":"x","status":"blocked","priority":"high"}]`), &got)
	assert.Error(t, err)
}

func TestDecodeTimestampIntoStringField(t *testing.T) {
	var got []model.Task
	err := Decode([]byte(`[{"id":"x","title":"2024-05-06T07:08:09Z","status":"todo","priority":"low"}]`), &got)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06T07:08:09Z", got[0].Title)
}

func TestTimestampLikeStringsSurviveRoundTrip(t *testing.T) {
	for _, s := range []string{
		"2024-01-15T10:00:00",
		"2024-01-15T10:00:00.000Z",
		"2024-01-15T10:00:00.500+02:00",
	} {
		t.Run(s, func(t *testing.T) {
			tasks := fixtureTasks()[:1]
			tasks[0].Title = s
			tasks[0].Description = s
			tasks[0].Tags = []string{s}

			data, err := Encode(tasks)
			require.NoError(t, err)

			var got []model.Task
			require.NoError(t, Decode(data, &got))
			assert.Equal(t, tasks, got)
		})
	}
}

func TestStoreLoadFallsBackToDefault(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *Memory)
	}{
		{"missing", func(m *Memory) {}},
		{"empty", func(m *Memory) { m.Set(KeyTasks, "") }},
		{"malformed", func(m *Memory) { m.Set(KeyTasks, "{not json") }},
		{"wrong shape", func(m *Memory) { m.Set(KeyTasks, `{"id":"x"}`) }},
		{"backend failure", func(m *Memory) { m.GetErr = errors.New("disk on fire") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := NewMemory()
			tt.setup(mem)
			store := NewStore(mem, zerolog.Nop())

			def := []model.Task{{ID: "default"}}
			got := Load(store, KeyTasks, def)
			assert.Equal(t, def, got)
		})
	}
}

func TestStoreSaveSwallowsWriteErrors(t *testing.T) {
	mem := NewMemory()
	mem.SetErr = errors.New("quota exceeded")
	store := NewStore(mem, zerolog.Nop())

	assert.NotPanics(t, func() { store.SaveTasks(fixtureTasks()) })
	assert.Empty(t, mem.Keys())
}

func TestStoreNamespacesRoundTrip(t *testing.T) {
	store := NewStore(NewMemory(), zerolog.Nop())

	store.SaveTasks(fixtureTasks())
	assert.Equal(t, fixtureTasks(), store.LoadTasks())

	active := "p1"
	store.SaveSettings(model.Settings{ActiveProjectID: &active, ViewMode: model.ViewList, Theme: model.ThemeDark})
	settings := store.LoadSettings()
	require.NotNil(t, settings.ActiveProjectID)
	assert.Equal(t, "p1", *settings.ActiveProjectID)
	assert.Equal(t, model.ViewList, settings.ViewMode)
	assert.Equal(t, model.ThemeDark, settings.Theme)
}

func TestStoreSettingsDefaults(t *testing.T) {
	mem := NewMemory()
	store := NewStore(mem, zerolog.Nop())

	assert.Equal(t, model.DefaultSettings(), store.LoadSettings())

	mem.Set(KeySettings, `{"activeProjectId":null}`)
	assert.Equal(t, model.DefaultSettings(), store.LoadSettings())
}

func TestStoreInitialize(t *testing.T) {
	mem := NewMemory()
	store := NewStore(mem, zerolog.Nop())

	store.Initialize()

	assert.Equal(t, []string{KeyProjects, KeySettings, KeyTasks}, mem.Keys())
	raw, err := mem.Get(KeyTasks)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestStoreRemoveAndClear(t *testing.T) {
	mem := NewMemory()
	store := NewStore(mem, zerolog.Nop())
	store.Initialize()

	store.Remove(KeyTasks)
	assert.NotContains(t, mem.Keys(), KeyTasks)

	store.Clear()
	assert.Empty(t, mem.Keys())
}
