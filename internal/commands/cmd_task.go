package commands

import (
	"context"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/trellis/internal/core/query"
	"github.com/hay-kot/trellis/internal/core/task"
	"github.com/hay-kot/trellis/internal/core/validate"
	"github.com/hay-kot/trellis/internal/trellis"
	"github.com/hay-kot/trellis/pkg/iojson"
)

// TaskCmd implements the trellis task command group.
type TaskCmd struct {
	flags *Flags
	app   *trellis.App

	input iojson.FileReader[task.Input]
	patch iojson.FileReader[task.Patch]

	// create flags
	createTitle       string
	createDescription string
	createProject     string
	createPriority    string
	createDue         string
	createTags        []string
	createEstimate    int
	createImpact      string
	createUrgency     string
	createURL         string

	// list flags
	listStatuses   []string
	listPriorities []string
	listTags       []string
	listSearch     string
	listDue        string
	listSort       string
	listProject    string
}

// NewTaskCmd creates a new task command.
func NewTaskCmd(flags *Flags, app *trellis.App) *TaskCmd {
	return &TaskCmd{flags: flags, app: app}
}

// Register adds the task command to the application.
func (cmd *TaskCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "task",
		Usage: "Manage tasks",
		Description: `Task commands for creating, listing, and updating tasks.

Examples:
  trellis task create --title "Fix login bug" --priority high
  trellis task create                        # interactive form
  echo '{"title":"Ship it"}' | trellis task create
  trellis task list --status "In Progress" --tag 'front*'
  trellis task complete <id>`,
		Commands: []*cli.Command{
			cmd.createCmd(),
			cmd.listCmd(),
			cmd.showCmd(),
			cmd.updateCmd(),
			cmd.completeCmd(),
			cmd.reactivateCmd(),
			cmd.rmCmd(),
		},
	})

	return app
}

func (cmd *TaskCmd) createCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a task",
		UsageText: "trellis task create [--title <title>] [options]",
		Description: `Creates a task. With no --title and no JSON input, opens an
interactive form. JSON input via -f or piped stdin takes the same shape
as the API create body.`,
		Flags: []cli.Flag{
			cmd.input.Flag(),
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "task title", Destination: &cmd.createTitle},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "task description", Destination: &cmd.createDescription},
			&cli.StringFlag{Name: "project", Aliases: []string{"p"}, Usage: "owning project id", Destination: &cmd.createProject},
			&cli.StringFlag{Name: "priority", Usage: "low, medium, or high", Destination: &cmd.createPriority},
			&cli.StringFlag{Name: "due", Usage: "due date (YYYY-MM-DD)", Destination: &cmd.createDue},
			&cli.StringSliceFlag{Name: "tag", Usage: "tag (repeatable)", Destination: &cmd.createTags},
			&cli.IntFlag{Name: "estimate", Usage: "time estimate in minutes", Destination: &cmd.createEstimate},
			&cli.StringFlag{Name: "impact", Usage: "low, medium, or high", Destination: &cmd.createImpact},
			&cli.StringFlag{Name: "urgency", Usage: "low, normal, or urgent", Destination: &cmd.createUrgency},
			&cli.StringFlag{Name: "url", Usage: "external reference link", Destination: &cmd.createURL},
		},
		Action: cmd.runCreate,
	}
}

func (cmd *TaskCmd) runCreate(ctx context.Context, c *cli.Command) error {
	var in task.Input

	switch {
	case cmd.input.HasInput():
		read, err := cmd.input.Read()
		if err != nil {
			return err
		}
		in = read
	case cmd.createTitle != "":
		in = cmd.inputFromFlags()
	default:
		formed, err := cmd.runForm()
		if err != nil {
			return err
		}
		in = formed
	}

	created, err := cmd.app.Tasks.Create(ctx, in)
	if err != nil {
		return err
	}

	return iojson.Write(os.Stdout, created)
}

func (cmd *TaskCmd) inputFromFlags() task.Input {
	in := task.Input{
		ProjectID:   cmd.createProject,
		Title:       cmd.createTitle,
		Description: cmd.createDescription,
		DueDate:     cmd.createDue,
		Priority:    task.Priority(cmd.createPriority),
		Tags:        cmd.createTags,
		Impact:      task.Impact(cmd.createImpact),
		Urgency:     task.Urgency(cmd.createUrgency),
		URL:         cmd.createURL,
	}
	if cmd.createEstimate > 0 {
		estimate := cmd.createEstimate
		in.TimeEstimate = &estimate
	}
	return in
}

func (cmd *TaskCmd) runForm() (task.Input, error) {
	var (
		in       task.Input
		priority = string(task.PriorityMedium)
		tags     string
	)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(validate.Required).
				Value(&in.Title),
			huh.NewText().
				Title("Description").
				Value(&in.Description),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("High", string(task.PriorityHigh)),
					huh.NewOption("Medium", string(task.PriorityMedium)),
					huh.NewOption("Low", string(task.PriorityLow)),
				).
				Value(&priority),
			huh.NewInput().
				Title("Tags").
				Description("Comma-separated").
				Value(&tags),
			huh.NewInput().
				Title("Due date").
				Description("YYYY-MM-DD, optional").
				Validate(validate.Date).
				Value(&in.DueDate),
		),
	).Run()
	if err != nil {
		return task.Input{}, err
	}

	in.Priority = task.Priority(priority)
	in.Tags = splitTags(tags)
	return in, nil
}

func (cmd *TaskCmd) listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List tasks as JSON lines",
		UsageText: "trellis task list [filter options]",
		Description: `Lists tasks, optionally filtered and sorted. The --tag and
--project filters accept glob patterns (doublestar syntax), matched
against the tags and project names present in the collection.

Examples:
  trellis task list
  trellis task list --status "To Do" --status "In Progress"
  trellis task list --tag 'front*' --sort priority
  trellis task list --due overdue`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "status", Aliases: []string{"s"}, Usage: "filter by status (repeatable)", Destination: &cmd.listStatuses},
			&cli.StringSliceFlag{Name: "priority", Usage: "filter by priority (repeatable)", Destination: &cmd.listPriorities},
			&cli.StringSliceFlag{Name: "tag", Usage: "filter by tag glob (repeatable)", Destination: &cmd.listTags},
			&cli.StringFlag{Name: "search", Usage: "substring match on title/description", Destination: &cmd.listSearch},
			&cli.StringFlag{Name: "due", Usage: "due window: all, today, this_week, overdue", Destination: &cmd.listDue},
			&cli.StringFlag{Name: "sort", Usage: "sort order: default, dueDate, priority, createdAt", Destination: &cmd.listSort},
			&cli.StringFlag{Name: "project", Aliases: []string{"p"}, Usage: "filter by project name glob", Destination: &cmd.listProject},
		},
		Action: cmd.runList,
	}
}

func (cmd *TaskCmd) runList(ctx context.Context, c *cli.Command) error {
	tasks, err := cmd.app.Tasks.List(ctx)
	if err != nil {
		return err
	}

	if cmd.listProject != "" {
		tasks, err = cmd.filterByProjectGlob(ctx, tasks, cmd.listProject)
		if err != nil {
			return err
		}
	}

	criteria := query.Criteria{
		SearchText: cmd.listSearch,
		DueDate:    query.DueRange(cmd.listDue),
		Tags:       expandTagGlobs(tasks, cmd.listTags),
	}
	for _, s := range cmd.listStatuses {
		criteria.Statuses = append(criteria.Statuses, task.Status(s))
	}
	for _, p := range cmd.listPriorities {
		criteria.Priorities = append(criteria.Priorities, task.Priority(p))
	}

	// Tag globs that matched nothing should yield an empty result rather
	// than no tag restriction at all.
	if len(cmd.listTags) > 0 && len(criteria.Tags) == 0 {
		return nil
	}

	filtered := query.Filter(tasks, criteria, timeNow())
	sorted := query.Sort(filtered, query.Order(cmd.listSort))

	return iojson.WriteLines(os.Stdout, sorted)
}

func (cmd *TaskCmd) filterByProjectGlob(ctx context.Context, tasks []task.Task, pattern string) ([]task.Task, error) {
	projects, err := cmd.app.Projects.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := map[string]bool{}
	for _, p := range projects {
		if matchGlob(pattern, p.Name) {
			ids[p.ID] = true
		}
	}

	out := []task.Task{}
	for _, t := range tasks {
		if ids[t.ProjectID] {
			out = append(out, t)
		}
	}
	return out, nil
}

func (cmd *TaskCmd) showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a task by id",
		UsageText: "trellis task show <id>",
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := requireIDArg(c)
			if err != nil {
				return err
			}

			t, err := cmd.app.Tasks.Get(ctx, id)
			if err != nil {
				return err
			}
			return iojson.Write(os.Stdout, t)
		},
	}
}

func (cmd *TaskCmd) updateCmd() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Apply a partial update to a task",
		UsageText: "trellis task update <id> -f patch.json",
		Description: `Merges a JSON patch into the task. Only fields present in the
patch change. Setting status to "Completed" stamps the completion
time; setting it to anything else clears it.`,
		Flags: []cli.Flag{cmd.patch.Flag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := requireIDArg(c)
			if err != nil {
				return err
			}

			patch, err := cmd.patch.Read()
			if err != nil {
				return err
			}

			updated, err := cmd.app.Tasks.Update(ctx, id, patch)
			if err != nil {
				return err
			}
			return iojson.Write(os.Stdout, updated)
		},
	}
}

func (cmd *TaskCmd) completeCmd() *cli.Command {
	return &cli.Command{
		Name:      "complete",
		Usage:     "Mark a task completed",
		UsageText: "trellis task complete <id>",
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := requireIDArg(c)
			if err != nil {
				return err
			}

			t, err := cmd.app.Tasks.Complete(ctx, id)
			if err != nil {
				return err
			}
			return iojson.Write(os.Stdout, t)
		},
	}
}

func (cmd *TaskCmd) reactivateCmd() *cli.Command {
	return &cli.Command{
		Name:      "reactivate",
		Usage:     "Reset a task to To Do",
		UsageText: "trellis task reactivate <id>",
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := requireIDArg(c)
			if err != nil {
				return err
			}

			t, err := cmd.app.Tasks.Reactivate(ctx, id)
			if err != nil {
				return err
			}
			return iojson.Write(os.Stdout, t)
		},
	}
}

func (cmd *TaskCmd) rmCmd() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Delete a task",
		UsageText: "trellis task rm <id>",
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := requireIDArg(c)
			if err != nil {
				return err
			}
			return cmd.app.Tasks.Delete(ctx, id)
		},
	}
}
