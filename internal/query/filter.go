// Package query derives displayed task lists from a snapshot of the task
// collection. Every function is pure: inputs are never modified and the
// relative order of kept tasks is preserved.
package query

import (
	"strings"
	"time"

	"github.com/dori/bloc/internal/model"
)

// Where returns the tasks for which keep returns true, in input order.
func Where(tasks []model.Task, keep func(*model.Task) bool) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for i := range tasks {
		if keep(&tasks[i]) {
			out = append(out, tasks[i])
		}
	}
	return out
}

// ByProject keeps tasks owned by projectID.
func ByProject(tasks []model.Task, projectID string) []model.Task {
	return Where(tasks, func(t *model.Task) bool { return t.ProjectID == projectID })
}

// ByStatus keeps tasks in status s.
func ByStatus(tasks []model.Task, s model.Status) []model.Task {
	return Where(tasks, func(t *model.Task) bool { return t.Status == s })
}

// ByPriority keeps tasks with exactly priority p.
func ByPriority(tasks []model.Task, p model.Priority) []model.Task {
	return Where(tasks, func(t *model.Task) bool { return t.Priority == p })
}

// ByTags keeps tasks carrying at least one of tags. No tags means no filter.
func ByTags(tasks []model.Task, tags []string) []model.Task {
	if len(tags) == 0 {
		return tasks
	}
	return Where(tasks, func(t *model.Task) bool {
		for _, tag := range tags {
			if t.HasTag(tag) {
				return true
			}
		}
		return false
	})
}

// ByAllTags keeps tasks carrying every one of tags.
func ByAllTags(tasks []model.Task, tags []string) []model.Task {
	if len(tags) == 0 {
		return tasks
	}
	return Where(tasks, func(t *model.Task) bool {
		for _, tag := range tags {
			if !t.HasTag(tag) {
				return false
			}
		}
		return true
	})
}

// BySearch keeps tasks whose title, description or any tag contains query,
// ignoring case. A blank query keeps everything.
func BySearch(tasks []model.Task, query string) []model.Task {
	if strings.TrimSpace(query) == "" {
		return tasks
	}
	q := strings.ToLower(query)
	return Where(tasks, func(t *model.Task) bool { return Matches(t, q) })
}

// Matches reports whether t matches an already lower-cased query.
func Matches(t *model.Task, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(t.Title), lowerQuery) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), lowerQuery) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), lowerQuery) {
			return true
		}
	}
	return false
}

// ByDateRange keeps tasks due within r, bounds included. Tasks without a
// due date never match.
func ByDateRange(tasks []model.Task, r model.DateRange) []model.Task {
	return Where(tasks, func(t *model.Task) bool {
		return t.DueDate != nil && r.Contains(*t.DueDate)
	})
}

// Overdue keeps unfinished tasks whose due date is before now.
func Overdue(tasks []model.Task, now time.Time) []model.Task {
	return Where(tasks, func(t *model.Task) bool {
		return t.DueDate != nil && !t.IsDone() && t.DueDate.Before(now)
	})
}

// DueToday keeps tasks due on now's calendar day.
func DueToday(tasks []model.Task, now time.Time) []model.Task {
	start := model.StartOfDay(now)
	end := start.AddDate(0, 0, 1)
	return Where(tasks, func(t *model.Task) bool {
		return t.DueDate != nil && !t.DueDate.Before(start) && t.DueDate.Before(end)
	})
}

// Archived keeps archived tasks.
func Archived(tasks []model.Task) []model.Task {
	return Where(tasks, func(t *model.Task) bool { return t.IsArchived })
}

// Active keeps tasks that are not archived.
func Active(tasks []model.Task) []model.Task {
	return Where(tasks, func(t *model.Task) bool { return !t.IsArchived })
}

// Apply narrows tasks by priority, then tags, then date range, then search.
// Unset criteria are skipped.
func Apply(tasks []model.Task, f model.Filters, search string) []model.Task {
	filtered := tasks

	if f.Priority != nil {
		filtered = ByPriority(filtered, *f.Priority)
	}
	if len(f.Tags) > 0 {
		filtered = ByTags(filtered, f.Tags)
	}
	if f.DateRange != nil {
		filtered = ByDateRange(filtered, *f.DateRange)
	}
	if search != "" {
		filtered = BySearch(filtered, search)
	}

	return filtered
}
