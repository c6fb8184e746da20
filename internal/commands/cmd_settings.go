package commands

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/trellis/internal/core/settings"
	"github.com/hay-kot/trellis/internal/trellis"
	"github.com/hay-kot/trellis/pkg/iojson"
)

// SettingsCmd reads and updates user settings.
type SettingsCmd struct {
	flags *Flags
	app   *trellis.App

	patch iojson.FileReader[settings.Patch]
}

// NewSettingsCmd creates a new settings command.
func NewSettingsCmd(flags *Flags, app *trellis.App) *SettingsCmd {
	return &SettingsCmd{flags: flags, app: app}
}

// Register adds the settings command to the application.
func (cmd *SettingsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "settings",
		Usage: "Show or update user settings",
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Print current settings",
				UsageText: "trellis settings show",
				Action: func(ctx context.Context, c *cli.Command) error {
					s, err := cmd.app.Settings.Get(ctx)
					if err != nil {
						return err
					}
					return iojson.Write(os.Stdout, s)
				},
			},
			{
				Name:      "update",
				Usage:     "Merge a JSON patch into settings",
				UsageText: "trellis settings update -f patch.json",
				Flags:     []cli.Flag{cmd.patch.Flag()},
				Action: func(ctx context.Context, c *cli.Command) error {
					patch, err := cmd.patch.Read()
					if err != nil {
						return err
					}

					s, err := cmd.app.Settings.Update(ctx, patch)
					if err != nil {
						return err
					}
					return iojson.Write(os.Stdout, s)
				},
			},
		},
	})

	return app
}
