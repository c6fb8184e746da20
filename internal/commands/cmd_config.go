package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/trellis/pkg/iojson"
)

// ConfigCmd implements the config command group.
type ConfigCmd struct {
	flags *Flags
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config command to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Print the resolved configuration",
				UsageText: "trellis config show",
				Action: func(ctx context.Context, c *cli.Command) error {
					return iojson.Write(os.Stdout, cmd.flags.Config)
				},
			},
			{
				Name:        "validate",
				Usage:       "Validate the configuration file",
				UsageText:   "trellis config validate",
				Description: "Checks config values and verifies the config file and data directory are usable.",
				Action:      cmd.runValidate,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runValidate(ctx context.Context, c *cli.Command) error {
	err := cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath)
	if err == nil {
		fmt.Fprintln(os.Stdout, "configuration is valid")
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", fe.Field, fe.Err)
		}
		return fmt.Errorf("configuration is invalid")
	}

	return err
}
