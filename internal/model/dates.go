package model

import (
	"fmt"
	"time"
)

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of t's day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether t falls on now's calendar day.
func IsToday(t, now time.Time) bool {
	return sameDay(t, now)
}

// IsTomorrow reports whether t falls on the day after now.
func IsTomorrow(t, now time.Time) bool {
	return sameDay(t, now.AddDate(0, 0, 1))
}

// IsOverdue reports whether t is in the past and not today. It looks at the
// date only; callers decide whether finished tasks count.
func IsOverdue(t, now time.Time) bool {
	return t.Before(now) && !IsToday(t, now)
}

// IsThisWeek reports whether t is within the Sunday-started week of now.
func IsThisWeek(t, now time.Time) bool {
	start := StartOfDay(now).AddDate(0, 0, -int(now.Weekday()))
	end := start.AddDate(0, 0, 7)
	return !t.Before(start) && t.Before(end)
}

// DaysUntil counts calendar days from now to t; negative when t is past.
func DaysUntil(t, now time.Time) int {
	from := StartOfDay(now)
	to := StartOfDay(t.In(now.Location()))
	return int(to.Sub(from).Round(time.Hour).Hours() / 24)
}

// FormatDate renders t as "Jan 15, 2024".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatRelative renders t relative to now, e.g. "2 days ago" or "in 3 hours".
func FormatRelative(t, now time.Time) string {
	diff := t.Sub(now)
	if diff < 0 {
		ago := -diff
		switch {
		case ago < time.Minute:
			return "just now"
		case ago < time.Hour:
			return fmt.Sprintf("%d min ago", int(ago.Minutes()))
		case ago < 24*time.Hour:
			return plural(int(ago.Hours()), "hour") + " ago"
		case ago < 7*24*time.Hour:
			return plural(int(ago.Hours()/24), "day") + " ago"
		}
		return FormatDate(t)
	}

	switch {
	case diff < time.Minute:
		return "in a moment"
	case diff < time.Hour:
		return fmt.Sprintf("in %d min", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return "in " + plural(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return "in " + plural(int(diff.Hours()/24), "day")
	}
	return FormatDate(t)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
