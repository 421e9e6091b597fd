package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/bloc/internal/app"
	"github.com/dori/bloc/internal/model"
	"github.com/dori/bloc/internal/state"
	"github.com/dori/bloc/internal/ui/theme"
	"github.com/dori/bloc/internal/ui/views"
)

// RootModel is the main application model that manages views
type RootModel struct {
	app    *app.App
	st     *state.State
	keys   KeyMap
	help   help.Model
	width  int
	height int

	kanbanView   views.KanbanView
	listView     views.ListView
	archiveView  views.ArchiveView
	statsView    views.StatsView
	projectsView views.ProjectsView

	showProjects bool
	helpVisible  bool

	// Status message
	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App) RootModel {
	st := application.State
	theme.Apply(st.Theme())

	h := help.New()
	h.ShowAll = true

	return RootModel{
		app:          application,
		st:           st,
		keys:         DefaultKeyMap(),
		help:         h,
		kanbanView:   views.NewKanbanView(st, time.Now),
		listView:     views.NewListView(st, time.Now, application.Config.Sort()),
		archiveView:  views.NewArchiveView(st, time.Now),
		statsView:    views.NewStatsView(st, time.Now),
		projectsView: views.NewProjectsView(st),
	}
}

// Init sends the overdue reminder. The titles are collected here so the
// command only touches the notifier.
func (m RootModel) Init() tea.Cmd {
	titles := m.app.OverdueTitles(time.Now())
	if len(titles) == 0 || !m.app.Notifier.IsEnabled() {
		return nil
	}
	notifier := m.app.Notifier
	return func() tea.Msg {
		err := notifier.SendOverdueSummary(titles)
		return reminderMsg{count: len(titles), err: err}
	}
}

func (m RootModel) screen() screen {
	return currentScreen(m.st.Nav(), m.st.ViewMode())
}

// isInputMode reports whether the focused view is capturing text
func (m RootModel) isInputMode() bool {
	if m.showProjects {
		return m.projectsView.IsInputMode()
	}
	switch m.screen() {
	case screenKanban:
		return m.kanbanView.IsInputMode()
	case screenList:
		return m.listView.IsInputMode()
	case screenArchive:
		return m.archiveView.IsInputMode()
	case screenStats:
		return m.statsView.IsInputMode()
	}
	return false
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for header (1 line) and footer (3 lines)
		contentHeight := m.height - 4
		m.kanbanView = m.kanbanView.SetSize(m.width, contentHeight)
		m.listView = m.listView.SetSize(m.width, contentHeight)
		m.archiveView = m.archiveView.SetSize(m.width, contentHeight)
		m.statsView = m.statsView.SetSize(m.width, contentHeight)
		m.projectsView = m.projectsView.SetSize(m.width, contentHeight)
		return m, nil

	case tea.KeyMsg:
		// Clear status/error on any keypress
		m.statusMsg = ""
		m.errorMsg = ""

		inputMode := m.isInputMode()

		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, 'q' only outside of text entry and
			// the project overlay, which uses it to close
			if msg.String() == "ctrl+c" || (!inputMode && !m.showProjects) {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			m.cycleTheme()
			return m, nil
		}

		if m.helpVisible {
			if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
				m.helpVisible = false
			}
			return m, nil
		}

		if m.showProjects {
			var cmd tea.Cmd
			m.projectsView, cmd = m.projectsView.Update(msg)
			return m, cmd
		}

		if inputMode {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = true
			return m, nil
		case key.Matches(msg, m.keys.BoardView):
			m.st.SetViewMode(model.ViewKanban)
			m.st.SetNav(model.NavBoard)
			return m, nil
		case key.Matches(msg, m.keys.ListView):
			m.st.SetViewMode(model.ViewList)
			m.st.SetNav(model.NavBoard)
			return m, nil
		case key.Matches(msg, m.keys.ArchiveView):
			m.st.SetNav(model.NavArchive)
			return m, nil
		case key.Matches(msg, m.keys.StatsView):
			m.st.SetNav(model.NavStats)
			return m, nil
		case key.Matches(msg, m.keys.Projects):
			m.projectsView = m.projectsView.Open()
			m.showProjects = true
			return m, nil
		}

	case views.ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case views.StatusMsg:
		m.statusMsg = msg.Message
		return m, nil

	case views.ProjectsClosedMsg:
		m.showProjects = false
		return m, nil

	case reminderMsg:
		if msg.err != nil {
			m.app.Log.Warn().Err(msg.err).Msg("overdue reminder failed")
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("%d overdue task(s)", msg.count)
		return m, nil
	}

	if m.showProjects {
		var cmd tea.Cmd
		m.projectsView, cmd = m.projectsView.Update(msg)
		return m, cmd
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch m.screen() {
	case screenKanban:
		var v tea.Model
		v, cmd = m.kanbanView.Update(msg)
		m.kanbanView = v.(views.KanbanView)
	case screenList:
		var v tea.Model
		v, cmd = m.listView.Update(msg)
		m.listView = v.(views.ListView)
	case screenArchive:
		var v tea.Model
		v, cmd = m.archiveView.Update(msg)
		m.archiveView = v.(views.ArchiveView)
	case screenStats:
		var v tea.Model
		v, cmd = m.statsView.Update(msg)
		m.statsView = v.(views.StatsView)
	}
	return m, cmd
}

// cycleTheme switches between light and dark and persists the choice
func (m *RootModel) cycleTheme() {
	next := model.ThemeDark
	if m.st.Theme() == model.ThemeDark {
		next = model.ThemeLight
	}
	m.st.SetTheme(next)
	theme.Apply(next)
	m.statusMsg = fmt.Sprintf("Theme: %s", theme.Current.Theme.Name)
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	contentHeight := m.height - 4
	var content string
	switch {
	case m.helpVisible:
		content = m.renderHelp()
	case m.showProjects:
		content = lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, m.projectsView.View())
	default:
		switch m.screen() {
		case screenKanban:
			content = m.kanbanView.View()
		case screenList:
			content = m.listView.View()
		case screenArchive:
			content = m.archiveView.View()
		case screenStats:
			content = m.statsView.View()
		}
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("bloc")

	viewStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)

	projectName := "All projects"
	if p, ok := m.st.Project(m.st.ActiveProjectID()); ok {
		projectName = p.Name
	}
	project := viewStyle.Foreground(t.Accent).Bold(true).Render(projectName)
	viewIndicator := viewStyle.Render(fmt.Sprintf("[%s]", m.screen()))
	themeIndicator := viewStyle.Render(fmt.Sprintf("theme: %s", t.Name))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, project, viewIndicator)
	gap := max(m.width-lipgloss.Width(leftSide)-lipgloss.Width(themeIndicator), 0)

	return leftSide + strings.Repeat(" ", gap) + themeIndicator
}

// renderFooter renders the status line and the screen keys
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	key := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = styles.StatusBar.Render(
			styles.StatusKey.Render(m.screen().String()) + " " + styles.StatusValue.Render(m.statusMsg))
	}

	hints := key("1", "board") + sep +
		key("2", "list") + sep +
		key("3", "archive") + sep +
		key("4", "stats") + sep +
		key("P", "projects") + sep +
		key("C-t", "theme") + sep +
		key("?", "help") + sep +
		key("q", "quit")

	return statusLine + "\n" + styles.Footer.Render(hints)
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	t := theme.Current.Theme
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Bloc Help"),
		m.help.FullHelpView(m.keys.FullHelp()),
		"",
		theme.Current.Styles.HelpDesc.Render("Quick add: @tag !high due:tomorrow  •  esc or ? to close"),
	)
}
