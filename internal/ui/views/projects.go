package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/bloc/internal/model"
	"github.com/dori/bloc/internal/state"
	"github.com/dori/bloc/internal/ui/theme"
)

type projectsMode int

const (
	projectsBrowse projectsMode = iota
	projectsCreate
	projectsRename
	projectsConfirmDelete
)

// allProjectsID marks the "All projects" row
const allProjectsID = ""

// ProjectsView picks the active project and manages the project list
type ProjectsView struct {
	st     *state.State
	width  int
	height int

	cursor    int
	mode      projectsMode
	textInput textinput.Model
	targetID  string
	errMsg    string
}

// NewProjectsView creates the project manager
func NewProjectsView(st *state.State) ProjectsView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = model.MaxProjectName

	return ProjectsView{st: st, textInput: ti}
}

// Open resets the manager with the cursor on the active project
func (v ProjectsView) Open() ProjectsView {
	v.mode = projectsBrowse
	v.errMsg = ""
	v.cursor = 0
	active := v.st.ActiveProjectID()
	for i, id := range v.rows() {
		if id == active {
			v.cursor = i
		}
	}
	return v
}

// SetSize sets the view dimensions
func (v ProjectsView) SetSize(width, height int) ProjectsView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode returns whether the view is in input mode
func (v ProjectsView) IsInputMode() bool {
	return v.mode != projectsBrowse
}

// rows lists "All projects" followed by every active project id
func (v ProjectsView) rows() []string {
	ids := []string{allProjectsID}
	for _, p := range v.st.ActiveProjects() {
		ids = append(ids, p.ID)
	}
	return ids
}

func (v ProjectsView) currentID() string {
	rows := v.rows()
	if v.cursor < 0 || v.cursor >= len(rows) {
		return allProjectsID
	}
	return rows[v.cursor]
}

func closeProjects() tea.Msg { return ProjectsClosedMsg{} }

// Update handles messages
func (v ProjectsView) Update(msg tea.Msg) (ProjectsView, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if v.mode == projectsCreate || v.mode == projectsRename {
			var cmd tea.Cmd
			v.textInput, cmd = v.textInput.Update(msg)
			return v, cmd
		}
		return v, nil
	}

	switch v.mode {
	case projectsCreate, projectsRename:
		return v.handleNameInput(key)
	case projectsConfirmDelete:
		switch key.String() {
		case "y", "Y":
			p, _ := v.st.Project(v.targetID)
			v.st.DeleteProject(v.targetID)
			v.mode = projectsBrowse
			v.cursor = min(v.cursor, len(v.rows())-1)
			return v, statusf("Deleted %s; its tasks moved to the Inbox", p.Name)
		case "n", "N", "esc":
			v.mode = projectsBrowse
		}
		return v, nil
	}

	switch key.String() {
	case "j", "down":
		if v.cursor < len(v.rows())-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "enter":
		id := v.currentID()
		if id == allProjectsID {
			v.st.SetActiveProject(nil)
			return v, tea.Batch(closeProjects, statusf("Showing all projects"))
		}
		v.st.SetActiveProject(&id)
		p, _ := v.st.Project(id)
		return v, tea.Batch(closeProjects, statusf("Project: %s", p.Name))
	case "n":
		v.mode = projectsCreate
		v.errMsg = ""
		v.textInput.SetValue("")
		v.textInput.Placeholder = "Project name"
		v.textInput.Focus()
	case "r":
		id := v.currentID()
		if p, ok := v.st.Project(id); ok {
			v.mode = projectsRename
			v.targetID = id
			v.errMsg = ""
			v.textInput.SetValue(p.Name)
			v.textInput.Focus()
			v.textInput.CursorEnd()
		}
	case "x", "d":
		id := v.currentID()
		switch id {
		case allProjectsID:
		case model.InboxID:
			v.errMsg = "The Inbox cannot be deleted"
		default:
			v.targetID = id
			v.mode = projectsConfirmDelete
		}
	case "esc", "q", "P":
		return v, closeProjects
	}
	return v, nil
}

func (v ProjectsView) handleNameInput(key tea.KeyMsg) (ProjectsView, tea.Cmd) {
	switch key.String() {
	case "esc":
		v.mode = projectsBrowse
		v.errMsg = ""
		v.textInput.Blur()
		return v, nil
	case "enter":
		name := strings.TrimSpace(v.textInput.Value())
		if errs := model.ValidateProjectInput(name, ""); len(errs) > 0 {
			v.errMsg = errs["name"]
			return v, nil
		}
		v.textInput.Blur()
		v.errMsg = ""
		if v.mode == projectsRename {
			v.st.UpdateProject(v.targetID, model.ProjectUpdate{Name: &name})
			v.mode = projectsBrowse
			return v, statusf("Renamed to %s", name)
		}
		p := v.st.CreateProject(model.CreateProjectInput{Name: name})
		v.mode = projectsBrowse
		for i, id := range v.rows() {
			if id == p.ID {
				v.cursor = i
			}
		}
		return v, statusf("Created project %s", p.Name)
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(key)
	return v, cmd
}

// View renders the project manager
func (v ProjectsView) View() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	active := v.st.ActiveProjectID()

	var lines []string
	lines = append(lines, styles.PanelTitle.Render("Projects"), "")

	for i, id := range v.rows() {
		var name, color string
		var count int
		if id == allProjectsID {
			name = "All projects"
			count = len(v.st.ActiveTasks())
		} else {
			p, _ := v.st.Project(id)
			name, color = p.Name, p.Color
			count = len(v.st.ProjectTasks(id))
		}

		mark := " "
		if id == active {
			mark = "✓"
		}
		dot := " "
		if color != "" {
			dot = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
		}
		row := fmt.Sprintf("%s %s %-30s %s", mark, dot, name, styles.Label.Render(fmt.Sprintf("%d", count)))
		if i == v.cursor {
			row = styles.TaskSelected.Render(row)
		}
		lines = append(lines, row)
	}
	if p, ok := v.st.Project(v.currentID()); ok && p.Description != "" {
		lines = append(lines, "", styles.Subtitle.Render(p.Description))
	}
	lines = append(lines, "")

	switch v.mode {
	case projectsCreate:
		lines = append(lines, "New project: "+v.textInput.View())
	case projectsRename:
		lines = append(lines, "Rename: "+v.textInput.View())
	case projectsConfirmDelete:
		p, _ := v.st.Project(v.targetID)
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Error).Bold(true).
			Render(fmt.Sprintf("Delete '%s'? Its tasks move to the Inbox. (y/n)", p.Name)))
	default:
		lines = append(lines, styles.HelpDesc.Render("enter: open • n: new • r: rename • x: delete • esc: close"))
	}
	if v.errMsg != "" {
		lines = append(lines, styles.FieldError.Render(v.errMsg))
	}

	return styles.Panel.Width(min(max(v.width-4, 40), 70)).Render(strings.Join(lines, "\n"))
}
