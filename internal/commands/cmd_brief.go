package commands

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/trellis/internal/core/project"
	"github.com/hay-kot/trellis/internal/core/query"
	"github.com/hay-kot/trellis/internal/core/task"
	"github.com/hay-kot/trellis/internal/trellis"
)

// BriefCmd renders a markdown summary of current work to the terminal.
type BriefCmd struct {
	flags *Flags
	app   *trellis.App

	days  int
	focus int
	plain bool
}

// NewBriefCmd creates a new brief command.
func NewBriefCmd(flags *Flags, app *trellis.App) *BriefCmd {
	return &BriefCmd{flags: flags, app: app}
}

// Register adds the brief command to the application.
func (cmd *BriefCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "brief",
		Usage:     "Render a daily work summary",
		UsageText: "trellis brief [--days N] [--focus N] [--plain]",
		Description: `Builds a markdown brief of overdue and due-today tasks, a
short focus list, active projects, and recent activity, then renders
it for the terminal.`,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "days", Usage: "activity window in days", Destination: &cmd.days},
			&cli.IntFlag{Name: "focus", Usage: "focus list length", Destination: &cmd.focus},
			&cli.BoolFlag{Name: "plain", Usage: "print raw markdown without terminal styling", Destination: &cmd.plain},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *BriefCmd) run(ctx context.Context, c *cli.Command) error {
	days := cmd.days
	if days <= 0 {
		days = cmd.flags.Config.Brief.Days
	}
	focus := cmd.focus
	if focus <= 0 {
		focus = cmd.flags.Config.Brief.FocusLimit
	}

	tasks, err := cmd.app.Tasks.List(ctx)
	if err != nil {
		return err
	}
	projects, err := cmd.app.Projects.List(ctx)
	if err != nil {
		return err
	}

	md := buildBrief(tasks, projects, days, focus)

	if cmd.plain {
		_, err := fmt.Fprint(os.Stdout, md)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("render brief: %w", err)
	}

	_, err = fmt.Fprint(os.Stdout, out)
	return err
}

func buildBrief(tasks []task.Task, projects []project.Project, days, focus int) string {
	now := timeNow()
	var b strings.Builder

	b.WriteString("# Daily Brief\n\n")
	b.WriteString(now.Format("Monday, January 2, 2006") + "\n\n")

	stats := query.ComputeStats(tasks)
	fmt.Fprintf(&b, "**%d** open tasks, **%.0f%%** completion rate, productivity score **%.0f**\n\n",
		stats.TotalCount-stats.CompletedCount, stats.CompletionRate, query.ProductivityScore(tasks))

	overdue := query.Filter(tasks, query.Criteria{DueDate: query.DueOverdue}, now)
	if len(overdue) > 0 {
		b.WriteString("## Overdue\n\n")
		writeTaskList(&b, overdue)
	}

	today := query.Filter(tasks, query.Criteria{DueDate: query.DueToday}, now)
	if len(today) > 0 {
		b.WriteString("## Due Today\n\n")
		writeTaskList(&b, today)
	}

	b.WriteString("## Focus\n\n")
	writeTaskList(&b, focusList(tasks, focus))

	active := activeProjects(projects)
	if len(active) > 0 {
		b.WriteString("## Active Projects\n\n")
		for _, p := range active {
			marker := ""
			if p.IsMainProject {
				marker = " (main)"
			}
			fmt.Fprintf(&b, "- %s%s\n", p.Name, marker)
		}
		b.WriteString("\n")
	}

	completed := completedSince(tasks, days, now)
	fmt.Fprintf(&b, "## Last %d Days\n\nCompleted **%d** tasks.\n", days, completed)

	return b.String()
}

func writeTaskList(b *strings.Builder, tasks []task.Task) {
	if len(tasks) == 0 {
		b.WriteString("Nothing here.\n\n")
		return
	}
	for _, t := range tasks {
		due := ""
		if t.DueDate != "" {
			due = " (due " + t.DueDate + ")"
		}
		fmt.Fprintf(b, "- [%s] %s%s\n", t.Priority, t.Title, due)
	}
	b.WriteString("\n")
}

// focusList picks the top open tasks by priority, earliest due date first
// within each priority.
func focusList(tasks []task.Task, limit int) []task.Task {
	open := []task.Task{}
	for _, t := range tasks {
		if !t.Completed() {
			open = append(open, t)
		}
	}

	sorted := query.Sort(open, query.OrderPriority)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return false
		}
		if sorted[i].DueDate == "" || sorted[j].DueDate == "" {
			return sorted[j].DueDate == "" && sorted[i].DueDate != ""
		}
		return sorted[i].DueDate < sorted[j].DueDate
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func activeProjects(projects []project.Project) []project.Project {
	active := []project.Project{}
	for _, p := range projects {
		if !p.IsCompleted {
			active = append(active, p)
		}
	}
	return active
}

func completedSince(tasks []task.Task, days int, now time.Time) int {
	cutoff := now.AddDate(0, 0, -days)
	count := 0
	for _, t := range tasks {
		if t.DateCompleted != nil && t.DateCompleted.After(cutoff) {
			count++
		}
	}
	return count
}
