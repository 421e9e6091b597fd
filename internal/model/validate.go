package model

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Input limits enforced at the form boundary.
const (
	MaxTaskTitle            = 100
	MaxTaskDescriptionWords = 200
	MaxProjectName          = 50
	MaxProjectDescription   = 200
	MaxTagName              = 20
)

// FieldErrors maps a form field to its message.
type FieldErrors map[string]string

// Error implements error so a non-empty FieldErrors can be returned directly.
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// Err returns nil when there are no field errors.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// CountWords counts whitespace separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// RemainingWords returns how many words may still be added, never negative.
func RemainingWords(text string, limit int) int {
	if r := limit - CountWords(text); r > 0 {
		return r
	}
	return 0
}

// ExceedsWordLimit reports whether text has more than limit words.
func ExceedsWordLimit(text string, limit int) bool {
	return CountWords(text) > limit
}

// WordCountMessage renders the counter shown under a description field.
func WordCountMessage(text string, limit int) string {
	count := CountWords(text)
	remaining := limit - count
	switch {
	case remaining < 0:
		return fmt.Sprintf("%d words over limit", -remaining)
	case remaining <= 20:
		return fmt.Sprintf("%d words remaining", remaining)
	}
	return fmt.Sprintf("%d / %d words", count, limit)
}

// ValidateTag checks a single tag name.
func ValidateTag(tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return fmt.Errorf("tag is empty")
	}
	if utf8.RuneCountInString(tag) > MaxTagName {
		return fmt.Errorf("tag is too long (max %d characters)", MaxTagName)
	}
	return nil
}

// ValidateTaskInput checks a task form before it is submitted.
func ValidateTaskInput(title, description string, tags []string) FieldErrors {
	errs := FieldErrors{}

	title = strings.TrimSpace(title)
	switch {
	case title == "":
		errs["title"] = "Title is required"
	case utf8.RuneCountInString(title) > MaxTaskTitle:
		errs["title"] = fmt.Sprintf("Title must be less than %d characters", MaxTaskTitle)
	}

	if n := CountWords(description); n > MaxTaskDescriptionWords {
		errs["description"] = fmt.Sprintf("Description must be %d words or less (currently %d words)",
			MaxTaskDescriptionWords, n)
	}

	for _, tag := range tags {
		if err := ValidateTag(tag); err != nil {
			errs["tags"] = fmt.Sprintf("%q: %v", tag, err)
			break
		}
	}

	return errs
}

// ValidateProjectInput checks a project form before it is submitted.
func ValidateProjectInput(name, description string) FieldErrors {
	errs := FieldErrors{}

	name = strings.TrimSpace(name)
	switch {
	case name == "":
		errs["name"] = "Project name is required"
	case utf8.RuneCountInString(name) > MaxProjectName:
		errs["name"] = fmt.Sprintf("Name must be less than %d characters", MaxProjectName)
	}

	if utf8.RuneCountInString(description) > MaxProjectDescription {
		errs["description"] = fmt.Sprintf("Description must be less than %d characters", MaxProjectDescription)
	}

	return errs
}
