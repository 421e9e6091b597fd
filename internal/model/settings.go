package model

import (
	"fmt"
	"time"
)

// ViewMode selects how the task collection is rendered.
type ViewMode string

const (
	ViewKanban ViewMode = "kanban"
	ViewList   ViewMode = "list"
)

// ParseViewMode validates s.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewKanban, ViewList:
		return ViewMode(s), nil
	}
	return "", fmt.Errorf("unknown view mode %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *ViewMode) UnmarshalText(b []byte) error {
	m, err := ParseViewMode(string(b))
	if err != nil {
		return err
	}
	*v = m
	return nil
}

// Theme is the color scheme of the interface.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates s.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Theme) UnmarshalText(b []byte) error {
	v, err := ParseTheme(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Settings is the persisted slice of UI state.
type Settings struct {
	ActiveProjectID *string  `json:"activeProjectId"`
	ViewMode        ViewMode `json:"viewMode"`
	Theme           Theme    `json:"theme"`
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		ViewMode: ViewKanban,
		Theme:    ThemeLight,
	}
}

// Nav is the top-level screen the view layer shows.
type Nav int

const (
	NavBoard Nav = iota
	NavArchive
	NavStats
)

// String returns the display name for a screen
func (n Nav) String() string {
	switch n {
	case NavBoard:
		return "Board"
	case NavArchive:
		return "Archive"
	case NavStats:
		return "Stats"
	default:
		return "Unknown"
	}
}

// DateRange is an inclusive due-date window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Filters narrows the displayed task list. Zero values mean "no filter".
type Filters struct {
	Priority  *Priority
	Tags      []string
	DateRange *DateRange
}

// IsEmpty reports whether no criterion is set.
func (f Filters) IsEmpty() bool {
	return f.Priority == nil && len(f.Tags) == 0 && f.DateRange == nil
}

// Count returns the number of active criteria, for badges.
func (f Filters) Count() int {
	n := 0
	if f.Priority != nil {
		n++
	}
	n += len(f.Tags)
	if f.DateRange != nil {
		n++
	}
	return n
}
