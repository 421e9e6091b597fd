package model

import (
	"math/rand"
	"time"
)

// InboxID is the well-known identifier of the default project.
const InboxID = "inbox"

// Accent is the color of the Inbox and the fallback project color.
const Accent = "#FFD5E5"

// Palette holds the pastel colors offered for new projects.
var Palette = [...]string{
	"#FFB3BA", // red
	"#FFDFBA", // orange
	"#FFFFBA", // yellow
	"#BAFFC9", // green
	"#BAE1FF", // blue
	"#E0BBE4", // purple
	"#FFD5E5", // pink
	"#C9C9FF", // lavender
	"#FFDAC1", // peach
	"#B5EAD7", // mint
}

// Project groups tasks under a name and a display color
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	IsArchived  bool      `json:"isArchived"`
}

// IsInbox returns true if this is the default inbox project
func (p *Project) IsInbox() bool {
	return p.ID == InboxID
}

// NewInbox returns the default project stamped with now.
func NewInbox(now time.Time) Project {
	return Project{
		ID:          InboxID,
		Name:        "Inbox",
		Description: "Default project for uncategorized tasks",
		Color:       Accent,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// RandomColor picks a palette entry using r.
func RandomColor(r *rand.Rand) string {
	if r == nil {
		return Accent
	}
	return Palette[r.Intn(len(Palette))]
}

// CreateProjectInput carries the caller-supplied fields of a new project.
// An empty Color means "pick one from the palette".
type CreateProjectInput struct {
	Name        string
	Description string
	Color       string
}

// ProjectUpdate lists the fields to change on a project. Nil fields are left as they are.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Color       *string
}

// Apply merges u into p and stamps UpdatedAt.
func (u ProjectUpdate) Apply(p *Project, now time.Time) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Color != nil {
		p.Color = *u.Color
	}
	p.UpdatedAt = now
}

// IsEmpty reports whether the update would change nothing but UpdatedAt.
func (u ProjectUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Color == nil
}
