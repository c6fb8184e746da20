// Command docgen generates CLI reference documentation from the trellis
// command definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/trellis/internal/commands"
	"github.com/hay-kot/trellis/internal/trellis"
)

func main() {
	flags := &commands.Flags{}
	app := &trellis.App{}

	root := &cli.Command{
		Name:      "trellis",
		Usage:     "Personal task and project management",
		UsageText: "trellis [global options] command [command options]",
		Description: `Trellis tracks tasks and projects from the command line.

Tasks carry a status, priority, tags, and an optional due date; projects
group tasks. Data lives in plain JSON files (or SQLite) under the data
directory, so it is easy to inspect, back up, and sync.

Run 'trellis' with no arguments to open the interactive task browser.
Run 'trellis serve' to expose the same data over an HTTP API.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("TRELLIS_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file (defaults to <data-dir>/trellis.log)",
				Sources: cli.EnvVars("TRELLIS_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("TRELLIS_CONFIG"),
				Value:   commands.DefaultConfigPath(),
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "path to data directory",
				Sources: cli.EnvVars("TRELLIS_DATA_DIR"),
				Value:   commands.DefaultDataDir(),
			},
		},
	}

	root = commands.NewTaskCmd(flags, app).Register(root)
	root = commands.NewProjectCmd(flags, app).Register(root)
	root = commands.NewStatsCmd(flags, app).Register(root)
	root = commands.NewBriefCmd(flags, app).Register(root)
	root = commands.NewServeCmd(flags, app).Register(root)
	root = commands.NewSettingsCmd(flags, app).Register(root)
	root = commands.NewConfigCmd(flags).Register(root)
	root = commands.NewTuiCmd(flags, app).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
