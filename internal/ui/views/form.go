package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/bloc/internal/model"
	"github.com/dori/bloc/internal/quickadd"
	"github.com/dori/bloc/internal/ui/theme"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldTags
	fieldDue
	fieldPriority
	fieldCount
)

type formAction int

const (
	formNone formAction = iota
	formSubmit
	formCancel
)

// TaskForm edits every user-facing field of one task
type TaskForm struct {
	taskID   string
	title    textinput.Model
	desc     textarea.Model
	tags     textinput.Model
	due      textinput.Model
	priority model.Priority
	focus    int
	errs     model.FieldErrors
	width    int
}

// NewTaskForm fills a form from task
func NewTaskForm(task model.Task, width int) TaskForm {
	title := textinput.New()
	title.Prompt = ""
	title.CharLimit = model.MaxTaskTitle
	title.SetValue(task.Title)
	title.CursorEnd()

	desc := textarea.New()
	desc.ShowLineNumbers = false
	desc.Placeholder = "Description"
	desc.SetHeight(4)
	desc.SetValue(task.Description)

	tags := textinput.New()
	tags.Prompt = ""
	tags.Placeholder = "comma, separated"
	tags.SetValue(strings.Join(task.Tags, ", "))

	due := textinput.New()
	due.Prompt = ""
	due.Placeholder = "tomorrow, friday, 2024-01-15"
	if task.DueDate != nil {
		due.SetValue(task.DueDate.Format("2006-01-02"))
	}

	f := TaskForm{
		taskID:   task.ID,
		title:    title,
		desc:     desc,
		tags:     tags,
		due:      due,
		priority: task.Priority,
	}
	if f.priority == "" {
		f.priority = model.PriorityDefault
	}
	f = f.SetWidth(width)
	f.setFocus(fieldTitle)
	return f
}

// SetWidth resizes the inputs
func (f TaskForm) SetWidth(width int) TaskForm {
	if width < 30 {
		width = 30
	}
	f.width = width
	inner := width - 20
	f.title.Width = inner
	f.tags.Width = inner
	f.due.Width = inner
	f.desc.SetWidth(inner)
	return f
}

func (f *TaskForm) setFocus(i int) {
	f.focus = (i + fieldCount) % fieldCount
	f.title.Blur()
	f.desc.Blur()
	f.tags.Blur()
	f.due.Blur()
	switch f.focus {
	case fieldTitle:
		f.title.Focus()
	case fieldDescription:
		f.desc.Focus()
	case fieldTags:
		f.tags.Focus()
	case fieldDue:
		f.due.Focus()
	}
}

// Update handles a key while the form is open
func (f TaskForm) Update(msg tea.Msg) (TaskForm, formAction, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return f, formCancel, nil
		case "ctrl+s":
			return f, formSubmit, nil
		case "tab", "down":
			if key.String() == "down" && f.focus == fieldDescription {
				break
			}
			f.setFocus(f.focus + 1)
			return f, formNone, nil
		case "shift+tab", "up":
			if key.String() == "up" && f.focus == fieldDescription {
				break
			}
			f.setFocus(f.focus - 1)
			return f, formNone, nil
		case "enter":
			if f.focus != fieldDescription {
				return f, formSubmit, nil
			}
		case "left", "right", " ":
			if f.focus == fieldPriority {
				f.priority = nextPriority(f.priority, key.String() != "left")
				return f, formNone, nil
			}
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.desc, cmd = f.desc.Update(msg)
	case fieldTags:
		f.tags, cmd = f.tags.Update(msg)
	case fieldDue:
		f.due, cmd = f.due.Update(msg)
	}
	return f, formNone, cmd
}

// Result validates the form and turns it into an update. On failure the
// errors are kept for display and returned.
func (f *TaskForm) Result(now time.Time) (model.TaskUpdate, model.FieldErrors) {
	title := strings.TrimSpace(f.title.Value())
	desc := strings.TrimSpace(f.desc.Value())

	var tags []string
	for _, tag := range strings.Split(f.tags.Value(), ",") {
		tags = model.AddTag(tags, tag)
	}
	if tags == nil {
		tags = []string{}
	}

	errs := model.ValidateTaskInput(title, desc, tags)

	u := model.TaskUpdate{
		Title:       &title,
		Description: &desc,
		Tags:        &tags,
	}
	priority := f.priority
	u.Priority = &priority

	if raw := strings.TrimSpace(f.due.Value()); raw == "" {
		u.ClearDueDate = true
	} else if due := quickadd.ParseDate(raw, now); due != nil {
		u.DueDate = due
	} else {
		if errs == nil {
			errs = model.FieldErrors{}
		}
		errs["dueDate"] = fmt.Sprintf("Cannot read %q as a date", raw)
	}

	f.errs = errs
	if len(errs) > 0 {
		return model.TaskUpdate{}, errs
	}
	return u, nil
}

// View renders the form
func (f TaskForm) View() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	label := func(i int, name string) string {
		style := lipgloss.NewStyle().Width(13).Foreground(t.Subtle)
		if f.focus == i {
			style = style.Foreground(t.Primary).Bold(true)
		}
		return style.Render(name)
	}
	fieldErr := func(key string) string {
		if msg, ok := f.errs[key]; ok {
			return "\n" + strings.Repeat(" ", 13) + styles.FieldError.Render(msg)
		}
		return ""
	}

	var b strings.Builder
	heading := "Edit task"
	if f.taskID == "" {
		heading = "New task"
	}
	b.WriteString(styles.PanelTitle.Render(heading))
	b.WriteString("\n\n")

	b.WriteString(label(fieldTitle, "Title") + f.title.View() + fieldErr("title") + "\n")
	b.WriteString(label(fieldDescription, "Description") + "\n" + f.desc.View() + fieldErr("description") + "\n")
	b.WriteString(styles.Label.Render(strings.Repeat(" ", 13)+model.WordCountMessage(f.desc.Value(), model.MaxTaskDescriptionWords)) + "\n")
	b.WriteString(label(fieldTags, "Tags") + f.tags.View() + fieldErr("tags") + "\n")
	b.WriteString(label(fieldDue, "Due") + f.due.View() + fieldErr("dueDate") + "\n")
	b.WriteString(label(fieldPriority, "Priority") + priorityGlyph(f.priority) + " " + f.priority.Label())
	if f.focus == fieldPriority {
		b.WriteString(styles.Label.Render("  ←/→ to change"))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.HelpDesc.Render("tab: next field • enter/ctrl+s: save • esc: cancel"))

	return styles.Panel.Width(f.width - 4).Render(b.String())
}

// nextPriority cycles high, medium, low
func nextPriority(p model.Priority, forward bool) model.Priority {
	all := model.Priorities()
	i := 0
	for j, q := range all {
		if q == p {
			i = j
		}
	}
	if forward {
		return all[(i+1)%len(all)]
	}
	return all[(i-1+len(all))%len(all)]
}
