package storage

import (
	"errors"

	"github.com/dori/bloc/internal/model"
	"github.com/rs/zerolog"
)

// Namespace keys. Each is read and written on its own; only SaveBoard
// spans two of them.
const (
	KeyProjects = "bloc_projects"
	KeyTasks    = "bloc_tasks"
	KeySettings = "bloc_settings"
)

// Store is the persistence boundary of the application. It never returns
// errors: failures are logged and answered with the caller's default.
type Store struct {
	backend Backend
	log     zerolog.Logger
}

// NewStore wraps backend.
func NewStore(backend Backend, log zerolog.Logger) *Store {
	return &Store{
		backend: backend,
		log:     log.With().Str("component", "store").Logger(),
	}
}

// Backend returns the underlying key-value backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// Load reads key into a fresh T. A missing key, a backend failure or
// malformed content all yield def.
func Load[T any](s *Store, key string, def T) T {
	raw, err := s.backend.Get(key)
	if errors.Is(err, ErrNotFound) {
		return def
	}
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("error reading from storage")
		return def
	}
	if raw == "" {
		return def
	}

	var out T
	if err := Decode([]byte(raw), &out); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("error decoding stored value")
		return def
	}
	return out
}

// Save writes v under key. Failures are logged and dropped.
func (s *Store) Save(key string, v any) {
	data, err := Encode(v)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("error encoding value")
		return
	}
	if err := s.backend.Set(key, string(data)); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("error writing to storage")
		return
	}
	s.log.Debug().Str("key", key).Int("bytes", len(data)).Msg("saved")
}

// SaveAll writes several keys, in one transaction when the backend supports it.
func (s *Store) SaveAll(values map[string]any) {
	encoded := make(map[string]string, len(values))
	for key, v := range values {
		data, err := Encode(v)
		if err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("error encoding value")
			return
		}
		encoded[key] = string(data)
	}

	if b, ok := s.backend.(Batcher); ok {
		if err := b.SetMany(encoded); err != nil {
			s.log.Error().Err(err).Msg("error writing batch to storage")
		}
		return
	}
	for key, data := range encoded {
		if err := s.backend.Set(key, data); err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("error writing to storage")
		}
	}
}

// Remove deletes key
func (s *Store) Remove(key string) {
	if err := s.backend.Delete(key); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("error removing key")
	}
}

// Clear deletes every key
func (s *Store) Clear() {
	if err := s.backend.Clear(); err != nil {
		s.log.Error().Err(err).Msg("error clearing storage")
	}
}

// LoadProjects returns the stored projects, or none.
func (s *Store) LoadProjects() []model.Project {
	return Load(s, KeyProjects, []model.Project{})
}

// SaveProjects writes the full project collection
func (s *Store) SaveProjects(projects []model.Project) {
	s.Save(KeyProjects, nonNil(projects))
}

// LoadTasks returns the stored tasks, or none.
func (s *Store) LoadTasks() []model.Task {
	return Load(s, KeyTasks, []model.Task{})
}

// SaveTasks writes the full task collection
func (s *Store) SaveTasks(tasks []model.Task) {
	s.Save(KeyTasks, nonNil(tasks))
}

// SaveBoard writes projects and tasks in one batch, so a reader never sees
// tasks that point at a removed project.
func (s *Store) SaveBoard(projects []model.Project, tasks []model.Task) {
	s.SaveAll(map[string]any{
		KeyProjects: nonNil(projects),
		KeyTasks:    nonNil(tasks),
	})
}

// LoadSettings returns the stored settings or the defaults.
func (s *Store) LoadSettings() model.Settings {
	settings := Load(s, KeySettings, model.DefaultSettings())
	def := model.DefaultSettings()
	if settings.ViewMode == "" {
		settings.ViewMode = def.ViewMode
	}
	if settings.Theme == "" {
		settings.Theme = def.Theme
	}
	return settings
}

// SaveSettings writes the settings namespace
func (s *Store) SaveSettings(settings model.Settings) {
	s.Save(KeySettings, settings)
}

// Initialize makes sure all three namespaces exist.
func (s *Store) Initialize() {
	projects := s.LoadProjects()
	tasks := s.LoadTasks()
	settings := s.LoadSettings()

	if len(projects) == 0 {
		s.SaveProjects(nil)
	}
	if len(tasks) == 0 {
		s.SaveTasks(nil)
	}
	s.SaveSettings(settings)
}

// nonNil keeps empty collections encoded as [] rather than null.
func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
