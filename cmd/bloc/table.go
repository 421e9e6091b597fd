package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dori/bloc/internal/model"
	"github.com/dori/bloc/internal/state"
	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	return t
}

func renderTasks(out io.Writer, st *state.State, tasks []model.Task, now time.Time) {
	t := newTable(out)
	t.AppendHeader(table.Row{"ID", "Title", "Project", "Status", "Priority", "Tags", "Due"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Title", WidthMax: 48},
	})

	for _, task := range tasks {
		project := ""
		if p, ok := st.Project(task.ProjectID); ok {
			project = p.Name
		}
		due := ""
		if task.DueDate != nil {
			due = model.FormatDate(*task.DueDate)
			if task.IsOverdue(now) {
				due += " (overdue)"
			}
		}
		title := task.Title
		if task.IsArchived {
			title += " [archived]"
		}
		t.AppendRow(table.Row{
			shortID(task.ID),
			title,
			project,
			task.Status.Label(),
			string(task.Priority),
			strings.Join(task.Tags, ", "),
			due,
		})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d task(s)", len(tasks)), "", "", "", "", ""})
	t.Render()
}

func renderProjects(out io.Writer, st *state.State) {
	t := newTable(out)
	t.AppendHeader(table.Row{"ID", "Name", "Active", "Done", "Description"})

	active := st.ActiveProjectID()
	for _, p := range st.ActiveProjects() {
		tasks := st.ProjectTasks(p.ID)
		done := 0
		for _, task := range tasks {
			if task.IsDone() {
				done++
			}
		}
		name := p.Name
		if p.ID == active {
			name = "* " + name
		}
		t.AppendRow(table.Row{shortID(p.ID), name, len(tasks) - done, done, p.Description})
	}
	t.Render()
}
