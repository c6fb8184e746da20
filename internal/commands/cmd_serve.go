package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/trellis/internal/trellis"
	"github.com/hay-kot/trellis/internal/web"
)

// ServeCmd runs the HTTP API server.
type ServeCmd struct {
	flags *Flags
	app   *trellis.App

	listen string
}

// NewServeCmd creates a new serve command.
func NewServeCmd(flags *Flags, app *trellis.App) *ServeCmd {
	return &ServeCmd{flags: flags, app: app}
}

// Register adds the serve command to the application.
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Run the JSON HTTP API server",
		UsageText: "trellis serve [--listen host:port]",
		Description: `Serves the task and project API until interrupted. The bind
address comes from the config file unless --listen overrides it.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "listen",
				Aliases:     []string{"l"},
				Usage:       "bind address (host:port)",
				Destination: &cmd.listen,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ServeCmd) run(ctx context.Context, c *cli.Command) error {
	addr := cmd.listen
	if addr == "" {
		addr = cmd.flags.Config.Web.Listen
	}

	server := web.NewServer(cmd.app, cmd.app.Log)
	return server.Run(ctx, addr)
}
