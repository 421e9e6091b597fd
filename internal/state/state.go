// Package state holds the canonical projects and tasks together with the
// UI state around them. Every mutation is written through to the codec
// before it returns. A State has a single owner and is not safe for
// concurrent use.
package state

import (
	"math/rand"
	"slices"
	"time"

	"github.com/dori/bloc/internal/model"
	"github.com/dori/bloc/internal/query"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Codec is the persistence the container writes through to.
// *storage.Store satisfies it.
type Codec interface {
	LoadProjects() []model.Project
	SaveProjects([]model.Project)
	LoadTasks() []model.Task
	SaveTasks([]model.Task)
	SaveBoard([]model.Project, []model.Task)
	LoadSettings() model.Settings
	SaveSettings(model.Settings)
}

// Option configures a State
type Option func(*State)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// WithIDGenerator replaces the uuid v4 generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *State) { s.newID = gen }
}

// WithRand sets the source used to pick project colors.
func WithRand(r *rand.Rand) Option {
	return func(s *State) { s.rng = r }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *State) { s.log = log }
}

// State is the application state container.
type State struct {
	codec Codec
	now   func() time.Time
	newID func() string
	rng   *rand.Rand
	log   zerolog.Logger

	projects []model.Project
	tasks    []model.Task
	settings model.Settings

	search  string
	filters model.Filters
	nav     model.Nav
}

// New returns an empty container. Call Init to load stored data.
func New(codec Codec, opts ...Option) *State {
	s := &State{
		codec:    codec,
		now:      time.Now,
		newID:    uuid.NewString,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		log:      zerolog.Nop(),
		settings: model.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(1))
	}
	s.log = s.log.With().Str("component", "state").Logger()
	return s
}

// Init loads all three namespaces. An empty project list gets the Inbox.
// The active project is the stored one, else the first project.
func (s *State) Init() {
	s.tasks = s.codec.LoadTasks()

	s.projects = s.codec.LoadProjects()
	if len(s.projects) == 0 {
		s.projects = []model.Project{model.NewInbox(s.now())}
		s.codec.SaveProjects(s.projects)
		s.log.Info().Msg("created inbox")
	}

	s.settings = s.codec.LoadSettings()
	if s.settings.ActiveProjectID == nil || *s.settings.ActiveProjectID == "" {
		s.settings.ActiveProjectID = nil
		if len(s.projects) > 0 {
			id := s.projects[0].ID
			s.settings.ActiveProjectID = &id
		}
	}
	s.codec.SaveSettings(s.settings)

	s.log.Debug().
		Int("projects", len(s.projects)).
		Int("tasks", len(s.tasks)).
		Msg("state loaded")
}

// Dispose releases nothing; every mutation has already been written.
func (s *State) Dispose() {}

func (s *State) saveTasks() {
	s.codec.SaveTasks(s.tasks)
}

func (s *State) saveProjects() {
	s.codec.SaveProjects(s.projects)
}

// saveBoard writes projects and tasks together, atomically when the
// backend allows it.
func (s *State) saveBoard() {
	s.codec.SaveBoard(s.projects, s.tasks)
}

func (s *State) saveSettings() {
	s.codec.SaveSettings(s.settings)
}

func (s *State) projectIndex(id string) int {
	return slices.IndexFunc(s.projects, func(p model.Project) bool { return p.ID == id })
}

func (s *State) taskIndex(id string) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

// Projects returns every project, archived ones included.
func (s *State) Projects() []model.Project {
	return slices.Clone(s.projects)
}

// ActiveProjects returns projects that are not archived.
func (s *State) ActiveProjects() []model.Project {
	out := make([]model.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if !p.IsArchived {
			out = append(out, p)
		}
	}
	return out
}

// Project looks up a project by id.
func (s *State) Project(id string) (model.Project, bool) {
	if i := s.projectIndex(id); i >= 0 {
		return s.projects[i], true
	}
	return model.Project{}, false
}

// Tasks returns a copy of the full collection in stored order.
func (s *State) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Task looks up a task by id.
func (s *State) Task(id string) (model.Task, bool) {
	if i := s.taskIndex(id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return model.Task{}, false
}

// ActiveTasks returns tasks that are not archived.
func (s *State) ActiveTasks() []model.Task {
	return query.Active(s.Tasks())
}

// ArchivedTasks returns archived tasks.
func (s *State) ArchivedTasks() []model.Task {
	return query.Archived(s.Tasks())
}

// ProjectTasks returns the active tasks owned by projectID. Tasks pointing
// at a project that no longer exists appear under no project.
func (s *State) ProjectTasks(projectID string) []model.Task {
	return query.ByProject(s.ActiveTasks(), projectID)
}

// VisibleTasks is what the board and list show: active tasks of the active
// project, narrowed by filters and search, ordered by key.
func (s *State) VisibleTasks(key query.SortKey) []model.Task {
	tasks := s.ActiveTasks()
	if id := s.ActiveProjectID(); id != "" {
		tasks = query.ByProject(tasks, id)
	}
	tasks = query.Apply(tasks, s.filters, s.search)
	return query.Sort(tasks, key)
}

// Settings returns the persisted UI settings.
func (s *State) Settings() model.Settings {
	out := s.settings
	if out.ActiveProjectID != nil {
		id := *out.ActiveProjectID
		out.ActiveProjectID = &id
	}
	return out
}

// ActiveProjectID returns the selected project id, or "" when none is selected.
func (s *State) ActiveProjectID() string {
	if s.settings.ActiveProjectID == nil {
		return ""
	}
	return *s.settings.ActiveProjectID
}

// ViewMode returns the persisted view mode
func (s *State) ViewMode() model.ViewMode {
	return s.settings.ViewMode
}

// Theme returns the persisted theme
func (s *State) Theme() model.Theme {
	return s.settings.Theme
}

// SearchQuery returns the current search text
func (s *State) SearchQuery() string {
	return s.search
}

// Filters returns the current filters
func (s *State) Filters() model.Filters {
	f := s.filters
	f.Tags = slices.Clone(f.Tags)
	return f
}

// Nav returns the current screen
func (s *State) Nav() model.Nav {
	return s.nav
}

// AllTags returns every tag used by an active task, sorted and deduplicated.
func (s *State) AllTags() []string {
	var tags []string
	for _, t := range s.tasks {
		if t.IsArchived {
			continue
		}
		tags = append(tags, t.Tags...)
	}
	slices.Sort(tags)
	return slices.Compact(tags)
}
