package model

import (
	"strings"
)

// NormalizeTag trims surrounding whitespace and a leading '#' or '@'
// used by the quick-add syntax.
func NormalizeTag(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimLeft(name, "#@")
	return strings.TrimSpace(name)
}

// AddTag appends tag to tags unless it is empty or already present.
// Insertion order is kept for display.
func AddTag(tags []string, tag string) []string {
	tag = NormalizeTag(tag)
	if tag == "" {
		return tags
	}
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}

// RemoveTag returns tags without tag, keeping the order of the rest.
func RemoveTag(tags []string, tag string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}
