package model

import (
	"fmt"
	"time"
)

// Status is a workflow stage. The set is closed: use ParseStatus to turn
// untrusted strings into a Status.
type Status string

const (
	StatusBrainstorm Status = "brainstorm"
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inProgress"
	StatusDone       Status = "done"
)

// StatusInitial is the stage new tasks start in.
const StatusInitial = StatusTodo

var statuses = []Status{StatusBrainstorm, StatusTodo, StatusInProgress, StatusDone}

// Statuses returns every workflow stage in board order.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

// ParseStatus validates s against the known stages.
func ParseStatus(s string) (Status, error) {
	for _, st := range statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Valid reports whether s is a known stage.
func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Index returns the position of s in the workflow, or -1.
func (s Status) Index() int {
	for i, st := range statuses {
		if st == s {
			return i
		}
	}
	return -1
}

// Label returns the column heading for s
func (s Status) Label() string {
	switch s {
	case StatusBrainstorm:
		return "Brainstorm"
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and rejects unknown stages.
func (s *Status) UnmarshalText(b []byte) error {
	st, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Priority represents task priority level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PriorityDefault is used when a task is created without a priority.
const PriorityDefault = PriorityMedium

// Priorities returns every priority from most to least urgent.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// ParsePriority validates s against the known priorities.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s), nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Rank returns the sort weight of p; lower sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// Label returns the display name for p
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High Priority"
	case PriorityMedium:
		return "Medium Priority"
	case PriorityLow:
		return "Low Priority"
	default:
		return string(p)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(b []byte) error {
	v, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Task represents a todo item
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ProjectID   string     `json:"projectId"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	Tags        []string   `json:"tags"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	// Order is the manual position among tasks sharing the same status.
	Order      int  `json:"order"`
	IsArchived bool `json:"isArchived"`
}

// IsDone reports whether the task sits in the terminal stage.
func (t *Task) IsDone() bool {
	return t.Status == StatusDone
}

// IsOverdue returns true if the task is past its due date and not done
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.IsDone() {
		return false
	}
	return IsOverdue(*t.DueDate, now)
}

// IsDueToday returns true if the task is due today
func (t *Task) IsDueToday(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return IsToday(*t.DueDate, now)
}

// HasTag reports whether tag is attached to the task (exact match).
func (t *Task) HasTag(tag string) bool {
	for _, tt := range t.Tags {
		if tt == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot alias the container's slices.
func (t Task) Clone() Task {
	if t.Tags != nil {
		tags := make([]string, len(t.Tags))
		copy(tags, t.Tags)
		t.Tags = tags
	}
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	if t.CompletedAt != nil {
		c := *t.CompletedAt
		t.CompletedAt = &c
	}
	return t
}

// CreateTaskInput carries the caller-supplied fields of a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	ProjectID   string
	Priority    Priority
	Tags        []string
	DueDate     *time.Time
}

// TaskUpdate lists the fields to change on a task. Nil fields are left
// as they are; ClearDueDate removes the due date.
type TaskUpdate struct {
	Title        *string
	Description  *string
	ProjectID    *string
	Status       *Status
	Priority     *Priority
	Tags         *[]string
	DueDate      *time.Time
	ClearDueDate bool
}

// Apply merges u into t and stamps UpdatedAt. Entering StatusDone sets
// CompletedAt; leaving it clears CompletedAt.
func (u TaskUpdate) Apply(t *Task, now time.Time) {
	wasDone := t.IsDone()

	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.ProjectID != nil {
		t.ProjectID = *u.ProjectID
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Tags != nil {
		tags := make([]string, len(*u.Tags))
		copy(tags, *u.Tags)
		t.Tags = tags
	}
	if u.ClearDueDate {
		t.DueDate = nil
	} else if u.DueDate != nil {
		d := *u.DueDate
		t.DueDate = &d
	}
	if u.Status != nil {
		t.Status = *u.Status
		switch {
		case t.IsDone() && !wasDone:
			completed := now
			t.CompletedAt = &completed
		case !t.IsDone() && wasDone:
			t.CompletedAt = nil
		}
	}
	t.UpdatedAt = now
}

// StatusUpdate is shorthand for an update that only moves a task.
func StatusUpdate(s Status) TaskUpdate {
	return TaskUpdate{Status: &s}
}
