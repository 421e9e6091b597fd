package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/bloc/internal/app"
	"github.com/dori/bloc/internal/config"
	"github.com/dori/bloc/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli carries the persistent flags shared by every command
type cli struct {
	cfgFile   string
	ephemeral bool
	verbose   bool
}

// clock is replaced in tests
var clock = time.Now

// withApp opens the application for the duration of fn
func (c *cli) withApp(fn func(a *app.App) error) error {
	cfg, err := config.Load(viper.New(), c.cfgFile)
	if err != nil {
		return err
	}
	a, err := app.New(cfg, app.Options{Ephemeral: c.ephemeral, Verbose: c.verbose})
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	runTUI := func(cmd *cobra.Command, _ []string) error {
		return c.withApp(func(a *app.App) error {
			p := tea.NewProgram(ui.NewRootModel(a), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("failed to run board: %w", err)
			}
			return nil
		})
	}

	root := &cobra.Command{
		Use:           "bloc",
		Short:         "A kanban board for projects and tasks in the terminal",
		Long:          "bloc keeps projects and tasks on a four stage board.\nRun without arguments to open the board.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default "+config.File()+")")
	flags.BoolVar(&c.ephemeral, "ephemeral", false, "keep everything in memory for this run")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "Open the board (same as running bloc without arguments)",
			Args:  cobra.NoArgs,
			RunE:  runTUI,
		},
		newAddCmd(c),
		newTaskCmd(c),
		newProjectCmd(c),
		newSearchCmd(c),
		newSeedCmd(c),
		newRemindCmd(c),
		newVersionCmd(),
	)
	return root
}

func newSeedCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace all data with the sample board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(func(a *app.App) error {
				a.State.LoadSampleData(clock())
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d projects and %d tasks\n",
					len(a.State.Projects()), len(a.State.Tasks()))
				return nil
			})
		},
	}
}

func newRemindCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Send a desktop notification listing overdue tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(func(a *app.App) error {
				n, err := a.Remind(clock())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d overdue task(s)\n", n)
				return nil
			})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bloc v%s\n", version)
		},
	}
}
