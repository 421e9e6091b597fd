package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dori/bloc/internal/app"
	"github.com/dori/bloc/internal/model"
	"github.com/spf13/cobra"
)

func newProjectCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "List and manage projects",
	}
	cmd.AddCommand(
		newProjectListCmd(c),
		newProjectAddCmd(c),
		newProjectRenameCmd(c),
		newProjectUseCmd(c),
		newProjectRemoveCmd(c),
	)
	return cmd
}

func newProjectListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects with their task counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(func(a *app.App) error {
				renderProjects(cmd.OutOrStdout(), a.State)
				return nil
			})
		},
	}
}

func newProjectAddCmd(c *cli) *cobra.Command {
	var description, color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if err := model.ValidateProjectInput(name, description).Err(); err != nil {
				return err
			}
			return c.withApp(func(a *app.App) error {
				p := a.State.CreateProject(model.CreateProjectInput{
					Name:        name,
					Description: description,
					Color:       color,
				})
				fmt.Fprintf(cmd.OutOrStdout(), "Created project %s %q\n", shortID(p.ID), p.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "project description")
	cmd.Flags().StringVar(&color, "color", "", "hex color such as #FFB3BA (default random)")
	return cmd
}

func newProjectRenameCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <project> <new name>",
		Short: "Rename a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args[1:], " "))
			if err := model.ValidateProjectInput(name, "").Err(); err != nil {
				return err
			}
			return c.withApp(func(a *app.App) error {
				p, err := findProject(a.State, args[0])
				if err != nil {
					return err
				}
				a.State.UpdateProject(p.ID, model.ProjectUpdate{Name: &name})
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed %q to %q\n", p.Name, name)
				return nil
			})
		},
	}
}

func newProjectUseCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "use <project>",
		Short: "Open a project on the board next time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app.App) error {
				p, err := findProject(a.State, args[0])
				if err != nil {
					return err
				}
				a.State.SetActiveProject(&p.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Active project: %s\n", p.Name)
				return nil
			})
		},
	}
}

var errDeleteInbox = errors.New("the Inbox cannot be deleted")

func newProjectRemoveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <project>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a project; its tasks move to the Inbox",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(a *app.App) error {
				p, err := findProject(a.State, args[0])
				if err != nil {
					return err
				}
				if p.IsInbox() {
					return errDeleteInbox
				}
				moved := len(a.State.ProjectTasks(p.ID))
				a.State.DeleteProject(p.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q; %d task(s) moved to the Inbox\n", p.Name, moved)
				return nil
			})
		},
	}
}
