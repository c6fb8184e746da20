package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/trellis/internal/core/config"
	"github.com/hay-kot/trellis/internal/store/jsonfile"
	"github.com/hay-kot/trellis/internal/trellis"
	"github.com/hay-kot/trellis/internal/tui"
)

// TuiCmd runs the interactive task browser.
type TuiCmd struct {
	flags *Flags
	app   *trellis.App
}

// NewTuiCmd creates a new tui command.
func NewTuiCmd(flags *Flags, app *trellis.App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Run executes the TUI. Exported for use as the default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

// Register adds the tui command to the application.
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Browse tasks interactively",
		UsageText: "trellis tui",
		Description: `Opens the task browser. With the JSON backend, edits made by
other processes show up automatically.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	var watcher *jsonfile.Watcher
	if cmd.flags.Config.Storage.Backend == config.BackendJSON {
		w, err := jsonfile.NewWatcher(cmd.flags.Config.DataDir)
		if err != nil {
			cmd.app.Log.Warn().Err(err).Msg("file watching disabled")
		} else {
			watcher = w
			defer func() { _ = w.Close() }()
		}
	}

	return tui.Run(ctx, cmd.app, watcher)
}
