package state

import (
	"time"

	"github.com/dori/bloc/internal/model"
)

type sampleTask struct {
	title       string
	description string
	status      model.Status
	priority    model.Priority
	tags        []string
	days        int
}

type sampleProject struct {
	name        string
	description string
	tasks       []sampleTask
}

var sampleProjects = []sampleProject{
	{
		name:        "Website Redesign",
		description: "Complete overhaul of company website with modern design",
		tasks: []sampleTask{
			{"Research competitor websites", "Analyze top 10 competitors for design inspiration and feature comparison.", model.StatusBrainstorm, model.PriorityMedium, []string{"research", "design"}, 7},
			{"Design homepage mockup", "Create high-fidelity mockup for homepage including hero section, features, and testimonials.", model.StatusTodo, model.PriorityHigh, []string{"design", "figma"}, 5},
			{"Set up development environment", "Configure the project with TypeScript, Tailwind CSS, and deployment pipeline.", model.StatusTodo, model.PriorityHigh, []string{"dev", "setup"}, 3},
			{"Implement responsive navigation", "Build mobile-friendly navigation with hamburger menu and smooth transitions.", model.StatusInProgress, model.PriorityHigh, []string{"dev", "mobile"}, 2},
			{"Conduct user research", "Interview 15 users about current website pain points and desired improvements.", model.StatusDone, model.PriorityHigh, []string{"research", "ux"}, -3},
		},
	},
	{
		name:        "Mobile App Development",
		description: "Build native iOS and Android applications",
		tasks: []sampleTask{
			{"Push notification strategy", "Plan notification types and frequency to maximize engagement without annoying users.", model.StatusBrainstorm, model.PriorityMedium, []string{"product", "notifications"}, 12},
			{"Design app icon and splash screen", "Create app icon in multiple sizes and animated splash screen for iOS and Android.", model.StatusTodo, model.PriorityMedium, []string{"design", "branding"}, 6},
			{"Build authentication flow", "Sign up, login and password reset screens backed by the API.", model.StatusInProgress, model.PriorityHigh, []string{"dev", "auth"}, 4},
			{"Choose cross-platform framework", "Compared frameworks and picked one for both platforms.", model.StatusDone, model.PriorityHigh, []string{"technical", "planning"}, -6},
		},
	},
	{
		name:        "Marketing Campaign Q2",
		description: "Social media and content marketing initiatives",
		tasks: []sampleTask{
			{"Influencer partnership ideas", "List potential partners and collaboration formats.", model.StatusBrainstorm, model.PriorityLow, []string{"social", "partnerships"}, 15},
			{"Write blog post series", "Draft four posts on product use cases.", model.StatusTodo, model.PriorityMedium, []string{"content", "writing"}, 9},
			{"Schedule social media posts", "Plan and schedule a month of posts across channels.", model.StatusInProgress, model.PriorityMedium, []string{"social", "planning"}, 1},
			{"Define campaign goals", "Agreed on reach and conversion targets with the team.", model.StatusDone, model.PriorityHigh, []string{"planning", "strategy"}, -4},
		},
	},
	{
		name:        "Customer Portal",
		description: "Self-service portal for customers to manage accounts",
		tasks: []sampleTask{
			{"Self-service billing ideas", "Collect ideas for letting customers manage invoices themselves.", model.StatusBrainstorm, model.PriorityLow, []string{"billing", "product"}, 18},
			{"Design account settings page", "Layout for profile, security and notification preferences.", model.StatusTodo, model.PriorityHigh, []string{"design", "ux"}, -1},
			{"Build support ticket system", "Customers can open and follow support tickets.", model.StatusInProgress, model.PriorityHigh, []string{"dev", "support"}, 5},
			{"Gather customer feedback", "Surveyed key accounts about what the portal should offer.", model.StatusDone, model.PriorityMedium, []string{"research", "feedback"}, -7},
		},
	},
	{
		name:        "Internal Tools",
		description: "Automation and productivity tools for team",
		tasks: []sampleTask{
			{"Slack bot for standups", "Bot that collects daily standup notes.", model.StatusBrainstorm, model.PriorityLow, []string{"slack", "bot"}, 25},
			{"Build time tracking widget", "Create simple time tracking tool integrated with project management system.", model.StatusTodo, model.PriorityHigh, []string{"productivity", "tracking"}, 6},
			{"Create API documentation", "Write comprehensive API docs with examples and interactive playground.", model.StatusTodo, model.PriorityMedium, []string{"docs", "api"}, 11},
			{"Implement CI/CD pipeline", "Set up automated testing and deployment.", model.StatusInProgress, model.PriorityHigh, []string{"devops", "automation"}, 2},
			{"Audit existing tools", "Reviewed all internal tools to identify gaps and improvement opportunities.", model.StatusDone, model.PriorityHigh, []string{"audit", "planning"}, -8},
		},
	},
}

const day = 24 * time.Hour

// LoadSampleData replaces every project except the Inbox, and every task,
// with a demo data set dated relative to now.
func (s *State) LoadSampleData(now time.Time) {
	inbox, ok := s.Project(model.InboxID)
	if !ok {
		inbox = model.NewInbox(now)
	}

	projects := []model.Project{inbox}
	var tasks []model.Task

	for i, sp := range sampleProjects {
		p := model.Project{
			ID:          s.newID(),
			Name:        sp.name,
			Description: sp.description,
			Color:       model.Palette[i%len(model.Palette)],
			CreatedAt:   now.Add(-time.Duration(s.rng.Int63n(int64(30 * day)))),
			UpdatedAt:   now,
		}
		projects = append(projects, p)

		for _, st := range sp.tasks {
			created := now.Add(-time.Duration(s.rng.Int63n(int64(20 * day))))
			due := now.Add(time.Duration(st.days) * day)
			t := model.Task{
				ID:          s.newID(),
				Title:       st.title,
				Description: st.description,
				ProjectID:   p.ID,
				Status:      st.status,
				Priority:    st.priority,
				Tags:        append([]string(nil), st.tags...),
				DueDate:     &due,
				CreatedAt:   created,
				UpdatedAt:   created,
				Order:       len(tasks),
			}
			if st.status == model.StatusDone {
				completed := created
				t.CompletedAt = &completed
			}
			tasks = append(tasks, t)
		}
	}

	s.tasks = tasks
	s.projects = projects
	s.saveBoard()

	if _, ok := s.Project(s.ActiveProjectID()); !ok {
		id := projects[1].ID
		s.settings.ActiveProjectID = &id
		s.saveSettings()
	}

	s.log.Info().Int("projects", len(projects)).Int("tasks", len(tasks)).Msg("sample data loaded")
}
