package commands

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/trellis/internal/core/project"
	"github.com/hay-kot/trellis/internal/trellis"
	"github.com/hay-kot/trellis/pkg/iojson"
)

// ProjectCmd implements the trellis project command group.
type ProjectCmd struct {
	flags *Flags
	app   *trellis.App

	input iojson.FileReader[project.Input]
	patch iojson.FileReader[project.Patch]

	createName        string
	createDescription string
	createMain        bool

	listAll bool
}

// NewProjectCmd creates a new project command.
func NewProjectCmd(flags *Flags, app *trellis.App) *ProjectCmd {
	return &ProjectCmd{flags: flags, app: app}
}

// Register adds the project command to the application.
func (cmd *ProjectCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "project",
		Usage: "Manage projects",
		Description: `Project commands for grouping tasks.

Examples:
  trellis project create --name "Website Redesign" --main
  trellis project list
  trellis project tasks <id>
  trellis project add-url <id> https://github.com/org/repo/pull/42`,
		Commands: []*cli.Command{
			cmd.createCmd(),
			cmd.listCmd(),
			cmd.showCmd(),
			cmd.updateCmd(),
			cmd.completeCmd(),
			cmd.reactivateCmd(),
			cmd.addURLCmd(),
			cmd.tasksCmd(),
			cmd.rmCmd(),
		},
	})

	return app
}

func (cmd *ProjectCmd) createCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a project",
		UsageText: "trellis project create --name <name> [options]",
		Flags: []cli.Flag{
			cmd.input.Flag(),
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "project name", Destination: &cmd.createName},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "project description", Destination: &cmd.createDescription},
			&cli.BoolFlag{Name: "main", Usage: "mark as the main project", Destination: &cmd.createMain},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			var in project.Input
			if cmd.input.HasInput() {
				read, err := cmd.input.Read()
				if err != nil {
					return err
				}
				in = read
			} else {
				in = project.Input{
					Name:          cmd.createName,
					Description:   cmd.createDescription,
					IsMainProject: cmd.createMain,
				}
			}

			created, err := cmd.app.Projects.Create(ctx, in)
			if err != nil {
				return err
			}
			return iojson.Write(os.Stdout, created)
		},
	}
}

func (cmd *ProjectCmd) listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List projects as JSON lines",
		UsageText: "trellis project list [--all]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "include completed projects", Destination: &cmd.listAll},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			projects, err := cmd.app.Projects.List(ctx)
			if err != nil {
				return err
			}

			if !cmd.listAll {
				active := projects[:0]
				for _, p := range projects {
					if !p.IsCompleted {
						active = append(active, p)
					}
				}
				projects = active
			}

			return iojson.WriteLines(os.Stdout, projects)
		},
	}
}

func (cmd *ProjectCmd) showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a project by id",
		UsageText: "trellis project show <id>",
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := requireIDArg(c)
			if err != nil {
				return err
			}

			p, err := cmd.app.Projects.Get(ctx, id)
			if err != nil {
				return err
			}
			return iojson.Write(os.Stdout, p)
		},
	}
}

func (cmd *ProjectCmd) updateCmd() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Apply a partial update to a project",
		UsageText: "trellis project update <id> -f patch.json",
		Flags:     []cli.Flag{cmd.patch.Flag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := requireIDArg(c)
			if err != nil {
				return err
			}

			patch, err := cmd.patch.Read()
			if err != nil {
				return err
			}

			updated, err := cmd.app.Projects.Update(ctx, id, patch)
			if err != nil {
				return err
			}
			return iojson.Write(os.Stdout, updated)
		},
	}
}

func (cmd *ProjectCmd) completeCmd() *cli.Command {
	return &cli.Command{
		Name:      "complete",
		Usage:     "Mark a project completed",
		UsageText: "trellis project complete <id>",
		Description: `Marks the project completed. Its tasks keep their own
statuses.`,
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := requireIDArg(c)
			if err != nil {
				return err
			}

			p, err := cmd.app.Projects.Complete(ctx, id)
			if err != nil {
				return err
			}
			return iojson.Write(os.Stdout, p)
		},
	}
}

func (cmd *ProjectCmd) reactivateCmd() *cli.Command {
	return &cli.Command{
		Name:      "reactivate",
		Usage:     "Mark a project active again",
		UsageText: "trellis project reactivate <id>",
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := requireIDArg(c)
			if err != nil {
				return err
			}

			p, err := cmd.app.Projects.Reactivate(ctx, id)
			if err != nil {
				return err
			}
			return iojson.Write(os.Stdout, p)
		},
	}
}

func (cmd *ProjectCmd) addURLCmd() *cli.Command {
	return &cli.Command{
		Name:      "add-url",
		Usage:     "Attach a reference link to a project",
		UsageText: "trellis project add-url <id> <url>",
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := requireIDArg(c)
			if err != nil {
				return err
			}

			url := c.Args().Get(1)
			p, err := cmd.app.Projects.AddTaskURL(ctx, id, url)
			if err != nil {
				return err
			}
			return iojson.Write(os.Stdout, p)
		},
	}
}

func (cmd *ProjectCmd) tasksCmd() *cli.Command {
	return &cli.Command{
		Name:      "tasks",
		Usage:     "List the tasks belonging to a project",
		UsageText: "trellis project tasks <id>",
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := requireIDArg(c)
			if err != nil {
				return err
			}

			if _, err := cmd.app.Projects.Get(ctx, id); err != nil {
				return err
			}

			tasks, err := cmd.app.Tasks.ListByProject(ctx, id)
			if err != nil {
				return err
			}
			return iojson.WriteLines(os.Stdout, tasks)
		},
	}
}

func (cmd *ProjectCmd) rmCmd() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Delete a project",
		UsageText: "trellis project rm <id>",
		Description: `Deletes the project. Tasks that referenced it keep their
projectId and remain in the task collection.`,
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := requireIDArg(c)
			if err != nil {
				return err
			}
			return cmd.app.Projects.Delete(ctx, id)
		},
	}
}
