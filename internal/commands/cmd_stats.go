package commands

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/trellis/internal/core/query"
	"github.com/hay-kot/trellis/internal/trellis"
	"github.com/hay-kot/trellis/pkg/iojson"
)

// StatsCmd prints aggregate task statistics.
type StatsCmd struct {
	flags *Flags
	app   *trellis.App

	days int
}

// NewStatsCmd creates a new stats command.
func NewStatsCmd(flags *Flags, app *trellis.App) *StatsCmd {
	return &StatsCmd{flags: flags, app: app}
}

type statsOutput struct {
	Stats                 query.Stats         `json:"stats"`
	ProductivityScore     float64             `json:"productivityScore"`
	AverageCompletionDays float64             `json:"averageCompletionDays"`
	Daily                 []query.DailyBucket `json:"daily,omitempty"`
}

// Register adds the stats command to the application.
func (cmd *StatsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "stats",
		Usage:     "Show task statistics",
		UsageText: "trellis stats [--days N]",
		Description: `Prints counts, completion rate, and the productivity score.
With --days, includes per-day created/completed buckets for the last N
days, oldest first.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "days",
				Usage:       "include daily buckets for the last N days",
				Destination: &cmd.days,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *StatsCmd) run(ctx context.Context, c *cli.Command) error {
	tasks, err := cmd.app.Tasks.List(ctx)
	if err != nil {
		return err
	}

	out := statsOutput{
		Stats:                 query.ComputeStats(tasks),
		ProductivityScore:     query.ProductivityScore(tasks),
		AverageCompletionDays: query.AverageCompletionDays(tasks),
	}
	if cmd.days > 0 {
		out.Daily = query.DailyBuckets(tasks, cmd.days, timeNow())
	}

	return iojson.Write(os.Stdout, out)
}
