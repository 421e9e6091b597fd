package state

import (
	"github.com/dori/bloc/internal/model"
)

// CreateProject appends a new project. Without a color one is picked from
// the palette.
func (s *State) CreateProject(in model.CreateProjectInput) model.Project {
	now := s.now()
	color := in.Color
	if color == "" {
		color = model.RandomColor(s.rng)
	}

	p := model.Project{
		ID:          s.newID(),
		Name:        in.Name,
		Description: in.Description,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.projects = append(s.projects, p)
	s.saveProjects()

	s.log.Debug().Str("project", p.ID).Msg("project created")
	return p
}

// UpdateProject merges u into project id. Unknown ids are ignored.
func (s *State) UpdateProject(id string, u model.ProjectUpdate) {
	i := s.projectIndex(id)
	if i < 0 {
		return
	}
	u.Apply(&s.projects[i], s.now())
	s.saveProjects()
}

// DeleteProject removes a project and moves its tasks to the Inbox. The
// Inbox itself cannot be deleted.
func (s *State) DeleteProject(id string) {
	if id == model.InboxID {
		return
	}
	i := s.projectIndex(id)
	if i < 0 {
		return
	}

	now := s.now()
	moved := 0
	for j := range s.tasks {
		if s.tasks[j].ProjectID == id {
			s.tasks[j].ProjectID = model.InboxID
			s.tasks[j].UpdatedAt = now
			moved++
		}
	}
	s.projects = append(s.projects[:i:i], s.projects[i+1:]...)
	s.saveBoard()

	if s.ActiveProjectID() == id {
		inbox := model.InboxID
		s.settings.ActiveProjectID = &inbox
		s.saveSettings()
	}

	s.log.Debug().Str("project", id).Int("moved", moved).Msg("project deleted")
}

// CreateTask appends a new task in the initial stage at the end of the
// manual order.
func (s *State) CreateTask(in model.CreateTaskInput) model.Task {
	now := s.now()
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityDefault
	}
	tags := make([]string, len(in.Tags))
	copy(tags, in.Tags)

	t := model.Task{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		ProjectID:   in.ProjectID,
		Status:      model.StatusInitial,
		Priority:    priority,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
		Order:       len(s.tasks),
	}
	if in.DueDate != nil {
		d := *in.DueDate
		t.DueDate = &d
	}

	s.tasks = append(s.tasks, t)
	s.saveTasks()

	s.log.Debug().Str("task", t.ID).Msg("task created")
	return t.Clone()
}

// UpdateTask merges u into task id. Unknown ids are ignored.
func (s *State) UpdateTask(id string, u model.TaskUpdate) {
	i := s.taskIndex(id)
	if i < 0 {
		return
	}
	u.Apply(&s.tasks[i], s.now())
	s.saveTasks()
}

// DeleteTask removes a task for good.
func (s *State) DeleteTask(id string) {
	i := s.taskIndex(id)
	if i < 0 {
		return
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.saveTasks()
}

// ArchiveTask hides a task from the board and list.
func (s *State) ArchiveTask(id string) {
	s.setArchived(id, true)
}

// UnarchiveTask brings an archived task back.
func (s *State) UnarchiveTask(id string) {
	s.setArchived(id, false)
}

func (s *State) setArchived(id string, archived bool) {
	i := s.taskIndex(id)
	if i < 0 {
		return
	}
	s.tasks[i].IsArchived = archived
	s.tasks[i].UpdatedAt = s.now()
	s.saveTasks()
}

// ReorderTasks replaces the collection with ordered, setting each task's
// Order to its index. Membership is not checked.
func (s *State) ReorderTasks(ordered []model.Task) {
	now := s.now()
	tasks := make([]model.Task, len(ordered))
	for i, t := range ordered {
		t = t.Clone()
		t.Order = i
		t.UpdatedAt = now
		tasks[i] = t
	}
	s.tasks = tasks
	s.saveTasks()
}

// SetActiveProject selects a project; nil selects none.
func (s *State) SetActiveProject(id *string) {
	if id != nil {
		v := *id
		id = &v
	}
	s.settings.ActiveProjectID = id
	s.saveSettings()
}

// SetViewMode switches between board and list.
func (s *State) SetViewMode(mode model.ViewMode) {
	s.settings.ViewMode = mode
	s.saveSettings()
}

// SetTheme switches between light and dark.
func (s *State) SetTheme(theme model.Theme) {
	s.settings.Theme = theme
	s.saveSettings()
}

// SetSearchQuery sets the search text. Not persisted.
func (s *State) SetSearchQuery(q string) {
	s.search = q
}

// SetFilters replaces the filters. Not persisted.
func (s *State) SetFilters(f model.Filters) {
	s.filters = f
}

// ClearFilters drops the filters and the search text.
func (s *State) ClearFilters() {
	s.filters = model.Filters{}
	s.search = ""
}

// SetNav switches screens.
func (s *State) SetNav(n model.Nav) {
	s.nav = n
}
