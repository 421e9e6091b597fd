package model

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC) // a Wednesday

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
		assert.True(t, s.Valid())
	}

	_, err := ParseStatus("archived")
	assert.Error(t, err)
	assert.False(t, Status("Done").Valid())
	assert.Equal(t, -1, Status("x").Index())

	var s Status
	assert.Error(t, s.UnmarshalText([]byte("review")))
	require.NoError(t, s.UnmarshalText([]byte("inProgress")))
	assert.Equal(t, StatusInProgress, s)
}

func TestStatusesIsACopy(t *testing.T) {
	s := Statuses()
	s[0] = "mutated"
	assert.Equal(t, StatusBrainstorm, Statuses()[0])
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())

	_, err := ParsePriority("urgent")
	assert.Error(t, err)

	p, err := ParsePriority("low")
	require.NoError(t, err)
	assert.Equal(t, PriorityLow, p)
}

func TestTaskUpdateApply(t *testing.T) {
	due := now.AddDate(0, 0, 3)
	task := Task{ID: "t", Title: "old", Status: StatusTodo, Tags: []string{"a"}, DueDate: &due}

	title := "new"
	tags := []string{"b", "c"}
	TaskUpdate{Title: &title, Tags: &tags}.Apply(&task, now)

	assert.Equal(t, "new", task.Title)
	assert.Equal(t, []string{"b", "c"}, task.Tags)
	assert.Equal(t, &due, task.DueDate)
	assert.Equal(t, now, task.UpdatedAt)

	tags[0] = "mutated"
	assert.Equal(t, "b", task.Tags[0])

	TaskUpdate{ClearDueDate: true}.Apply(&task, now)
	assert.Nil(t, task.DueDate)
}

func TestTaskUpdateCompletedAt(t *testing.T) {
	task := Task{Status: StatusTodo}

	StatusUpdate(StatusDone).Apply(&task, now)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, now, *task.CompletedAt)

	later := now.Add(time.Hour)
	StatusUpdate(StatusDone).Apply(&task, later)
	assert.Equal(t, now, *task.CompletedAt)

	StatusUpdate(StatusBrainstorm).Apply(&task, later)
	assert.Nil(t, task.CompletedAt)
}

func TestTaskIsOverdue(t *testing.T) {
	yesterday := now.AddDate(0, 0, -1)
	task := Task{Status: StatusTodo, DueDate: &yesterday}
	assert.True(t, task.IsOverdue(now))

	task.Status = StatusDone
	assert.False(t, task.IsOverdue(now))

	task.Status = StatusTodo
	task.DueDate = nil
	assert.False(t, task.IsOverdue(now))
}

func TestTaskClone(t *testing.T) {
	due := now
	orig := Task{Tags: []string{"a"}, DueDate: &due}
	c := orig.Clone()

	c.Tags[0] = "b"
	*c.DueDate = now.AddDate(1, 0, 0)

	assert.Equal(t, "a", orig.Tags[0])
	assert.Equal(t, now, *orig.DueDate)
}

func TestProjectUpdate(t *testing.T) {
	p := NewInbox(now)
	assert.True(t, p.IsInbox())

	assert.True(t, ProjectUpdate{}.IsEmpty())

	color := "#000000"
	later := now.Add(time.Minute)
	ProjectUpdate{Color: &color}.Apply(&p, later)
	assert.Equal(t, "Inbox", p.Name)
	assert.Equal(t, color, p.Color)
	assert.Equal(t, later, p.UpdatedAt)
	assert.Equal(t, now, p.CreatedAt)
}

func TestRandomColor(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		assert.Contains(t, Palette[:], RandomColor(r))
	}
	assert.Equal(t, Accent, RandomColor(nil))
}

func TestTags(t *testing.T) {
	assert.Equal(t, "urgent", NormalizeTag("  #urgent "))
	assert.Equal(t, "home", NormalizeTag("@home"))

	tags := AddTag(nil, "#a")
	tags = AddTag(tags, "b")
	tags = AddTag(tags, "a")
	tags = AddTag(tags, "  ")
	assert.Equal(t, []string{"a", "b"}, tags)

	assert.Equal(t, []string{"b"}, RemoveTag(tags, "a"))
	assert.Equal(t, []string{"a", "b"}, tags)
}

func TestDates(t *testing.T) {
	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), StartOfDay(now))
	assert.Equal(t, time.Date(2024, 6, 12, 23, 59, 59, 999999999, time.UTC), EndOfDay(now))

	assert.True(t, IsToday(now.Add(-15*time.Hour), now))
	assert.True(t, IsTomorrow(now.AddDate(0, 0, 1), now))
	assert.False(t, IsTomorrow(now, now))

	assert.True(t, IsOverdue(now.AddDate(0, 0, -1), now))
	assert.False(t, IsOverdue(now.Add(-time.Hour), now), "earlier today is not overdue")
	assert.False(t, IsOverdue(now.AddDate(0, 0, 1), now))

	// the week of Wed 12 June starts on Sun 9 June
	assert.True(t, IsThisWeek(time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, IsThisWeek(time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC), now))
	assert.False(t, IsThisWeek(time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), now))

	assert.Equal(t, 0, DaysUntil(now.Add(5*time.Hour), now))
	assert.Equal(t, 3, DaysUntil(now.AddDate(0, 0, 3), now))
	assert.Equal(t, -2, DaysUntil(now.AddDate(0, 0, -2), now))
}

func TestFormatRelative(t *testing.T) {
	tests := []struct {
		offset time.Duration
		want   string
	}{
		{-10 * time.Second, "just now"},
		{-5 * time.Minute, "5 min ago"},
		{-1 * time.Hour, "1 hour ago"},
		{-3 * time.Hour, "3 hours ago"},
		{-2 * 24 * time.Hour, "2 days ago"},
		{-30 * 24 * time.Hour, "May 13, 2024"},
		{30 * time.Second, "in a moment"},
		{20 * time.Minute, "in 20 min"},
		{25 * time.Hour, "in 1 day"},
		{10 * 24 * time.Hour, "Jun 22, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRelative(now.Add(tt.offset), now))
		})
	}
}

func TestValidateTaskInput(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		tags        []string
		fields      []string
	}{
		{"valid", "Write draft", "short", []string{"docs"}, nil},
		{"empty title", "   ", "", nil, []string{"title"}},
		{"long title", strings.Repeat("x", MaxTaskTitle+1), "", nil, []string{"title"}},
		{"title at limit", strings.Repeat("x", MaxTaskTitle), "", nil, nil},
		{"long description", "t", strings.Repeat("word ", MaxTaskDescriptionWords+1), nil, []string{"description"}},
		{"description at limit", "t", strings.Repeat("word ", MaxTaskDescriptionWords), nil, nil},
		{"long tag", "t", "", []string{strings.Repeat("t", MaxTagName+1)}, []string{"tags"}},
		{"everything", "", strings.Repeat("w ", 201), []string{""}, []string{"description", "tags", "title"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateTaskInput(tt.title, tt.description, tt.tags)
			var fields []string
			for f := range errs {
				fields = append(fields, f)
			}
			assert.ElementsMatch(t, tt.fields, fields)
			if len(tt.fields) == 0 {
				assert.NoError(t, errs.Err())
			} else {
				assert.Error(t, errs.Err())
			}
		})
	}
}

func TestValidateProjectInput(t *testing.T) {
	assert.Empty(t, ValidateProjectInput("Work", ""))
	assert.Contains(t, ValidateProjectInput("", ""), "name")
	assert.Contains(t, ValidateProjectInput(strings.Repeat("n", MaxProjectName+1), ""), "name")
	assert.Contains(t, ValidateProjectInput("ok", strings.Repeat("d", MaxProjectDescription+1)), "description")

	errs := ValidateProjectInput("", strings.Repeat("d", MaxProjectDescription+1))
	assert.Equal(t, "description: Description must be less than 200 characters; name: Project name is required", errs.Error())
}

func TestWordHelpers(t *testing.T) {
	assert.Equal(t, 3, CountWords("  one\ttwo\nthree "))
	assert.Equal(t, 0, CountWords("   "))
	assert.Equal(t, 7, RemainingWords("one two three", 10))
	assert.Equal(t, 0, RemainingWords("one two three", 2))
	assert.True(t, ExceedsWordLimit("a b c", 2))
	assert.False(t, ExceedsWordLimit("a b", 2))

	assert.Equal(t, "3 / 200 words", WordCountMessage("a b c", 200))
	assert.Equal(t, "5 words remaining", WordCountMessage("a b c", 8))
	assert.Equal(t, "1 words over limit", WordCountMessage("a b c", 2))
}

func TestFilters(t *testing.T) {
	assert.True(t, Filters{}.IsEmpty())
	high := PriorityHigh
	f := Filters{Priority: &high, Tags: []string{"a", "b"}, DateRange: &DateRange{Start: now, End: now}}
	assert.False(t, f.IsEmpty())
	assert.Equal(t, 4, f.Count())

	r := DateRange{Start: StartOfDay(now), End: EndOfDay(now)}
	assert.True(t, r.Contains(r.Start))
	assert.True(t, r.Contains(r.End))
	assert.False(t, r.Contains(r.End.Add(time.Nanosecond)))
}

func TestSettingsEnums(t *testing.T) {
	_, err := ParseViewMode("grid")
	assert.Error(t, err)
	_, err = ParseTheme("solarized")
	assert.Error(t, err)

	d := DefaultSettings()
	assert.Nil(t, d.ActiveProjectID)
	assert.Equal(t, ViewKanban, d.ViewMode)
	assert.Equal(t, ThemeLight, d.Theme)
	assert.Equal(t, "Archive", NavArchive.String())
	assert.Equal(t, "Stats", NavStats.String())
}
