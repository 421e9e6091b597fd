package main

import (
	"fmt"
	"strings"

	"github.com/dori/bloc/internal/app"
	"github.com/dori/bloc/internal/board"
	"github.com/dori/bloc/internal/model"
	"github.com/dori/bloc/internal/query"
	"github.com/dori/bloc/internal/quickadd"
	"github.com/spf13/cobra"
)

func newAddCmd(c *cli) *cobra.Command {
	var projectRef, description string

	cmd := &cobra.Command{
		Use:   "add <task>",
		Short: "Quick add a task",
		Long: `Quick add a task. Markers in the text set fields:

  Tags:      @tag          (e.g. @home, @work)
  Priority:  !low !medium !high
  Due date:  due:tomorrow due:friday due:2024-01-15`,
		Example: `  bloc add "Buy groceries"
  bloc add "Review PR @work !high due:tomorrow" --project Work`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app.App) error {
				st := a.State
				projectID := model.InboxID
				if projectRef != "" {
					p, err := findProject(st, projectRef)
					if err != nil {
						return err
					}
					projectID = p.ID
				}

				parsed := quickadd.Parse(strings.Join(args, " "), clock())
				in := parsed.Input(projectID)
				in.Description = description
				if err := model.ValidateTaskInput(in.Title, in.Description, in.Tags).Err(); err != nil {
					return err
				}

				task := st.CreateTask(in)
				a.Log.Debug().Str("task", task.ID).Msg("task added from the command line")

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Added %s %q\n", shortID(task.ID), task.Title)
				if len(task.Tags) > 0 {
					fmt.Fprintf(out, "  Tags: %s\n", strings.Join(task.Tags, ", "))
				}
				if task.Priority != model.PriorityDefault {
					fmt.Fprintf(out, "  Priority: %s\n", task.Priority)
				}
				if task.DueDate != nil {
					fmt.Fprintf(out, "  Due: %s\n", model.FormatDate(*task.DueDate))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&projectRef, "project", "p", "", "project name or id (default Inbox)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	return cmd
}

func newTaskCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "List and change tasks",
	}
	cmd.AddCommand(
		newTaskListCmd(c),
		newTaskDoneCmd(c),
		newTaskMoveCmd(c),
		newTaskArchiveCmd(c, true),
		newTaskArchiveCmd(c, false),
		newTaskEditCmd(c),
		newTaskRemoveCmd(c),
	)
	return cmd
}

type listOptions struct {
	project  string
	status   string
	priority string
	tags     []string
	sort     string
	archived bool
	all      bool
}

func newTaskListCmd(c *cli) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(func(a *app.App) error {
				st := a.State

				var tasks []model.Task
				switch {
				case opts.all:
					tasks = st.Tasks()
				case opts.archived:
					tasks = st.ArchivedTasks()
				default:
					tasks = st.ActiveTasks()
				}

				if opts.project != "" {
					p, err := findProject(st, opts.project)
					if err != nil {
						return err
					}
					tasks = query.ByProject(tasks, p.ID)
				}
				if opts.status != "" {
					s, err := model.ParseStatus(opts.status)
					if err != nil {
						return err
					}
					tasks = query.ByStatus(tasks, s)
				}

				var f model.Filters
				if opts.priority != "" {
					p, err := model.ParsePriority(opts.priority)
					if err != nil {
						return err
					}
					f.Priority = &p
				}
				for _, tag := range opts.tags {
					f.Tags = model.AddTag(f.Tags, tag)
				}
				tasks = query.Apply(tasks, f, "")

				key := a.Config.Sort()
				if opts.sort != "" {
					k, err := query.ParseSortKey(opts.sort)
					if err != nil {
						return err
					}
					key = k
				}
				if key == query.SortManual {
					tasks = query.Stable(tasks, query.Then(query.CompareStatus, query.CompareOrder))
				} else {
					tasks = query.Sort(tasks, key)
				}

				renderTasks(cmd.OutOrStdout(), st, tasks, clock())
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.project, "project", "p", "", "only tasks of this project")
	flags.StringVarP(&opts.status, "status", "s", "", "brainstorm, todo, inProgress or done")
	flags.StringVar(&opts.priority, "priority", "", "low, medium or high")
	flags.StringSliceVarP(&opts.tags, "tag", "t", nil, "tasks with any of these tags")
	flags.StringVar(&opts.sort, "sort", "", "manual, priority, due, created, updated or title")
	flags.BoolVar(&opts.archived, "archived", false, "list archived tasks instead")
	flags.BoolVarP(&opts.all, "all", "a", false, "include archived tasks")
	return cmd
}

func newTaskDoneCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task between done and to do",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app.App) error {
				task, err := findTask(a.State, args[0])
				if err != nil {
					return err
				}
				next := model.StatusDone
				if task.IsDone() {
					next = model.StatusTodo
				}
				a.State.UpdateTask(task.ID, model.StatusUpdate(next))
				fmt.Fprintf(cmd.OutOrStdout(), "%q is now %s\n", task.Title, next.Label())
				return nil
			})
		},
	}
}

func newTaskMoveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <status>",
		Short: "Move a task to another stage, at the end of its column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := model.ParseStatus(args[1])
			if err != nil {
				return err
			}
			return c.withApp(func(a *app.App) error {
				task, err := findTask(a.State, args[0])
				if err != nil {
					return err
				}
				if task.Status == status {
					fmt.Fprintf(cmd.OutOrStdout(), "%q is already in %s\n", task.Title, status.Label())
					return nil
				}
				d := board.NewDrag(a.State)
				d.Start(task.ID)
				d.Over(board.ColumnTarget(status))
				d.End(board.NoTarget)
				board.SendToBack(a.State, task.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %q to %s\n", task.Title, status.Label())
				return nil
			})
		},
	}
}

func newTaskArchiveCmd(c *cli, archive bool) *cobra.Command {
	use, short, verb := "archive <id>", "Archive a task", "Archived"
	if !archive {
		use, short, verb = "unarchive <id>", "Restore an archived task", "Restored"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app.App) error {
				task, err := findTask(a.State, args[0])
				if err != nil {
					return err
				}
				if archive {
					a.State.ArchiveTask(task.ID)
				} else {
					a.State.UnarchiveTask(task.ID)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %q\n", verb, task.Title)
				return nil
			})
		},
	}
}

type editOptions struct {
	title       string
	description string
	priority    string
	due         string
	project     string
	addTags     []string
	removeTags  []string
}

func newTaskEditCmd(c *cli) *cobra.Command {
	var opts editOptions

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change task fields",
		Example: `  bloc task edit 3f2a --priority high --due friday
  bloc task edit 3f2a --tag urgent --untag later
  bloc task edit 3f2a --due ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app.App) error {
				st := a.State
				task, err := findTask(st, args[0])
				if err != nil {
					return err
				}

				var u model.TaskUpdate
				flags := cmd.Flags()

				title, description, tags := task.Title, task.Description, task.Tags
				if flags.Changed("title") {
					title = strings.TrimSpace(opts.title)
					u.Title = &title
				}
				if flags.Changed("description") {
					description = opts.description
					u.Description = &description
				}
				if len(opts.addTags) > 0 || len(opts.removeTags) > 0 {
					for _, tag := range opts.addTags {
						tags = model.AddTag(tags, tag)
					}
					for _, tag := range opts.removeTags {
						tags = model.RemoveTag(tags, tag)
					}
					u.Tags = &tags
				}
				if flags.Changed("priority") {
					p, err := model.ParsePriority(opts.priority)
					if err != nil {
						return err
					}
					u.Priority = &p
				}
				if flags.Changed("due") {
					if strings.TrimSpace(opts.due) == "" {
						u.ClearDueDate = true
					} else if due := quickadd.ParseDate(opts.due, clock()); due != nil {
						u.DueDate = due
					} else {
						return fmt.Errorf("cannot read due date %q", opts.due)
					}
				}
				if flags.Changed("project") {
					p, err := findProject(st, opts.project)
					if err != nil {
						return err
					}
					u.ProjectID = &p.ID
				}

				if err := model.ValidateTaskInput(title, description, tags).Err(); err != nil {
					return err
				}
				st.UpdateTask(task.ID, u)
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %q\n", shortID(task.ID), title)
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.title, "title", "", "new title")
	flags.StringVar(&opts.description, "description", "", "new description")
	flags.StringVar(&opts.priority, "priority", "", "low, medium or high")
	flags.StringVar(&opts.due, "due", "", "due date; empty clears it")
	flags.StringVarP(&opts.project, "project", "p", "", "move to this project")
	flags.StringSliceVar(&opts.addTags, "tag", nil, "add tags")
	flags.StringSliceVar(&opts.removeTags, "untag", nil, "remove tags")
	return cmd
}

func newTaskRemoveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task permanently",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app.App) error {
				task, err := findTask(a.State, args[0])
				if err != nil {
					return err
				}
				a.State.DeleteTask(task.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", task.Title)
				return nil
			})
		},
	}
}

func newSearchCmd(c *cli) *cobra.Command {
	var archived bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find tasks by title, description or tag",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app.App) error {
				tasks := a.State.ActiveTasks()
				if archived {
					tasks = a.State.Tasks()
				}
				found := query.SortByUpdated(query.BySearch(tasks, strings.Join(args, " ")))
				renderTasks(cmd.OutOrStdout(), a.State, found, clock())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&archived, "archived", false, "search archived tasks too")
	return cmd
}
