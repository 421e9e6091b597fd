// Package quickadd parses the one-line task syntax shared by the CLI and
// the terminal UI: "Review PR @work !high due:tomorrow".
package quickadd

import (
	"strings"
	"time"

	"github.com/dori/bloc/internal/model"
)

// Result is a parsed quick-add line
type Result struct {
	Title    string
	Tags     []string
	Priority model.Priority
	DueDate  *time.Time
}

// Input turns the result into the fields of a new task in projectID.
func (r Result) Input(projectID string) model.CreateTaskInput {
	return model.CreateTaskInput{
		Title:     r.Title,
		ProjectID: projectID,
		Priority:  r.Priority,
		Tags:      r.Tags,
		DueDate:   r.DueDate,
	}
}

// Parse splits text into title words and markers. Markers that do not
// parse stay in the title.
func Parse(text string, now time.Time) Result {
	res := Result{Priority: model.PriorityDefault}

	var titleParts []string
	for _, word := range strings.Fields(text) {
		switch {
		// Tags (@home, @work)
		case len(word) > 1 && strings.HasPrefix(word, "@"):
			res.Tags = model.AddTag(res.Tags, word)

		// Priority (!low, !high)
		case strings.HasPrefix(word, "!"):
			if p, ok := parsePriority(strings.TrimPrefix(word, "!")); ok {
				res.Priority = p
			} else {
				titleParts = append(titleParts, word)
			}

		// Due date (due:tomorrow, due:friday, due:2024-01-15)
		case strings.HasPrefix(strings.ToLower(word), "due:"):
			if due := ParseDate(word[len("due:"):], now); due != nil {
				res.DueDate = due
			} else {
				titleParts = append(titleParts, word)
			}

		default:
			titleParts = append(titleParts, word)
		}
	}

	res.Title = strings.Join(titleParts, " ")
	return res
}

func parsePriority(s string) (model.Priority, bool) {
	switch strings.ToLower(s) {
	case "low", "l":
		return model.PriorityLow, true
	case "medium", "med", "m":
		return model.PriorityMedium, true
	case "high", "hi", "h", "urgent", "u":
		return model.PriorityHigh, true
	}
	return "", false
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"Jan 2",
}

// ParseDate understands today, tomorrow, weekday names, nextweek and a
// few numeric layouts. Dates land at the end of the day in now's location.
// It returns nil when s is not a date.
func ParseDate(s string, now time.Time) *time.Time {
	today := model.EndOfDay(now).Truncate(time.Second)

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return &today
	case "tomorrow", "tom":
		t := today.AddDate(0, 0, 1)
		return &t
	case "nextweek":
		t := today.AddDate(0, 0, 7)
		return &t
	case "monday", "mon":
		return nextWeekday(today, time.Monday)
	case "tuesday", "tue":
		return nextWeekday(today, time.Tuesday)
	case "wednesday", "wed":
		return nextWeekday(today, time.Wednesday)
	case "thursday", "thu":
		return nextWeekday(today, time.Thursday)
	case "friday", "fri":
		return nextWeekday(today, time.Friday)
	case "saturday", "sat":
		return nextWeekday(today, time.Saturday)
	case "sunday", "sun":
		return nextWeekday(today, time.Sunday)
	}

	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, now.Location())
		if err != nil {
			continue
		}
		// If no year, use current year
		if t.Year() == 0 {
			t = t.AddDate(now.Year(), 0, 0)
		}
		t = model.EndOfDay(t).Truncate(time.Second)
		return &t
	}

	return nil
}

// nextWeekday returns the next day strictly after today falling on day.
func nextWeekday(today time.Time, day time.Weekday) *time.Time {
	daysUntil := int(day - today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	t := today.AddDate(0, 0, daysUntil)
	return &t
}
