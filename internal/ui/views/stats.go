package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/bloc/internal/model"
	"github.com/dori/bloc/internal/state"
	"github.com/dori/bloc/internal/ui/theme"
)

// StatsView summarizes the task collection
type StatsView struct {
	st     *state.State
	now    func() time.Time
	width  int
	height int
}

// NewStatsView creates a new stats view
func NewStatsView(st *state.State, now func() time.Time) StatsView {
	if now == nil {
		now = time.Now
	}
	return StatsView{st: st, now: now}
}

// Init initializes the stats view
func (v StatsView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v StatsView) SetSize(width, height int) StatsView {
	v.width = width
	v.height = height
	return v
}

// Update handles messages
func (v StatsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "b":
			v.st.SetNav(model.NavBoard)
		}
	}
	return v, nil
}

// IsInputMode returns whether the view is in input mode
func (v StatsView) IsInputMode() bool {
	return false
}

// dailyCompletions counts tasks finished on each of the last 7 days,
// oldest first
func dailyCompletions(tasks []model.Task, now time.Time) [7]int {
	var counts [7]int
	for _, t := range tasks {
		if t.CompletedAt == nil {
			continue
		}
		ago := -model.DaysUntil(*t.CompletedAt, now)
		if ago >= 0 && ago < 7 {
			counts[6-ago]++
		}
	}
	return counts
}

// View renders the stats view
func (v StatsView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	stats := v.st.Stats()

	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	sections = append(sections, titleStyle.Render("Statistics"))
	sections = append(sections, "")

	// Summary cards (side by side)
	cardStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 2).
		Width(18)

	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(t.Subtle)

	card := func(value int, label string, color lipgloss.Color) string {
		return cardStyle.Render(
			valueStyle.Foreground(color).Render(fmt.Sprintf("%d", value)) + "\n" +
				labelStyle.Render(label),
		)
	}

	cardRow := lipgloss.JoinHorizontal(lipgloss.Top,
		card(stats.Active, "Active", t.Primary),
		card(stats.ByStatus[model.StatusDone], "Done", t.Success),
		card(stats.Overdue, "Overdue", t.Error),
		card(stats.DueToday, "Due Today", t.Warning),
		card(stats.Archived, "Archived", t.Subtle),
	)
	sections = append(sections, cardRow, "")

	sections = append(sections, v.renderStatusBars(stats), "")
	sections = append(sections, v.renderActivityChart(), "")
	sections = append(sections, v.renderProjectCounts())

	hints := lipgloss.NewStyle().Foreground(t.Subtle).Render("esc: back to board")
	sections = append(sections, "", hints)

	return strings.Join(sections, "\n")
}

// renderStatusBars draws one bar per workflow stage
func (v StatsView) renderStatusBars(stats state.Stats) string {
	t := theme.Current.Theme
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Secondary)

	lines := []string{headerStyle.Render("By Stage")}

	maxCount := 1
	for _, n := range stats.ByStatus {
		maxCount = max(maxCount, n)
	}

	barMaxWidth := 30
	for _, s := range model.Statuses() {
		n := stats.ByStatus[s]
		barWidth := n * barMaxWidth / maxCount
		if barWidth < 1 && n > 0 {
			barWidth = 1
		}
		bar := lipgloss.NewStyle().Foreground(t.StatusColor(s)).Render(strings.Repeat("█", barWidth))
		lines = append(lines, fmt.Sprintf("%-12s %s %d", s.Label(), bar, n))
	}
	return strings.Join(lines, "\n")
}

// renderActivityChart renders the 7-day completion chart
func (v StatsView) renderActivityChart() string {
	t := theme.Current.Theme
	now := v.now()

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Secondary)

	var lines []string
	lines = append(lines, headerStyle.Render("Completed (Last 7 Days)"))

	counts := dailyCompletions(v.st.Tasks(), now)

	maxCount := 1
	for _, count := range counts {
		maxCount = max(maxCount, count)
	}

	chartHeight := 5
	barWidth := 4

	for row := chartHeight; row >= 1; row-- {
		var rowStr strings.Builder
		threshold := float64(row) / float64(chartHeight)

		for i, count := range counts {
			ratio := float64(count) / float64(maxCount)

			var block string
			if ratio >= threshold {
				block = lipgloss.NewStyle().Foreground(t.Success).Render(strings.Repeat("█", barWidth))
			} else if ratio >= threshold-0.2 && ratio > 0 {
				block = lipgloss.NewStyle().Foreground(t.Info).Render(strings.Repeat("▄", barWidth))
			} else {
				block = strings.Repeat(" ", barWidth)
			}

			rowStr.WriteString(block)
			if i < len(counts)-1 {
				rowStr.WriteString(" ")
			}
		}
		lines = append(lines, rowStr.String())
	}

	// Day and count labels
	var labelStr, countStr strings.Builder
	for i, count := range counts {
		day := now.AddDate(0, 0, i-6).Format("Mon")
		labelStr.WriteString(lipgloss.NewStyle().Foreground(t.Subtle).Width(barWidth).Align(lipgloss.Center).Render(day))
		countStr.WriteString(lipgloss.NewStyle().Foreground(t.Foreground).Width(barWidth).Align(lipgloss.Center).Render(fmt.Sprintf("%d", count)))
		if i < len(counts)-1 {
			labelStr.WriteString(" ")
			countStr.WriteString(" ")
		}
	}
	lines = append(lines, labelStr.String(), countStr.String())

	return strings.Join(lines, "\n")
}

// renderProjectCounts shows active tasks per project
func (v StatsView) renderProjectCounts() string {
	t := theme.Current.Theme

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Secondary)
	lines := []string{headerStyle.Render("Tasks by Project")}

	projects := v.st.ActiveProjects()
	counts := make([]int, len(projects))
	maxCount := 1
	for i, p := range projects {
		counts[i] = len(v.st.ProjectTasks(p.ID))
		maxCount = max(maxCount, counts[i])
	}

	barMaxWidth := 30
	for i, p := range projects {
		barWidth := counts[i] * barMaxWidth / maxCount
		if barWidth < 1 && counts[i] > 0 {
			barWidth = 1
		}
		color := t.Info
		if p.Color != "" {
			color = lipgloss.Color(p.Color)
		}
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", barWidth))
		lines = append(lines, fmt.Sprintf("%-15s %s %d", truncate(p.Name, 15), bar, counts[i]))
	}

	return strings.Join(lines, "\n")
}
