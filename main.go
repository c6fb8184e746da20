package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/trellis/internal/commands"
	"github.com/hay-kot/trellis/internal/core/config"
	"github.com/hay-kot/trellis/internal/core/project"
	"github.com/hay-kot/trellis/internal/core/settings"
	"github.com/hay-kot/trellis/internal/core/task"
	"github.com/hay-kot/trellis/internal/store/jsonfile"
	"github.com/hay-kot/trellis/internal/store/sqlite"
	"github.com/hay-kot/trellis/internal/trellis"
	"github.com/hay-kot/trellis/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser  func()
		trellisApp = &trellis.App{}
		database   *sqlite.DB
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "trellis",
		Usage:     "Personal task and project management",
		UsageText: "trellis [global options] command [command options]",
		Description: `Trellis tracks tasks and projects from the command line.

Tasks carry a status, priority, tags, and an optional due date; projects
group tasks. Data lives in plain JSON files (or SQLite) under the data
directory, so it is easy to inspect, back up, and sync.

Run 'trellis' with no arguments to open the interactive task browser.
Run 'trellis serve' to expose the same data over an HTTP API.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TRELLIS_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/trellis.log)",
				Sources:     cli.EnvVars("TRELLIS_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TRELLIS_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TRELLIS_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; command output stays clean for piping.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "trellis.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return ctx, fmt.Errorf("create data directory: %w", err)
			}

			var (
				taskStore    task.Store
				projectStore project.Store
			)

			switch cfg.Storage.Backend {
			case config.BackendSQLite:
				database, err = sqlite.Open(cfg.DataDir)
				if err != nil {
					return ctx, fmt.Errorf("open database: %w", err)
				}
				taskStore = sqlite.NewTaskStore(database)
				projectStore = sqlite.NewProjectStore(database)
			default:
				taskStore = jsonfile.NewCollection[task.Task](cfg.TasksFile())
				projectStore = jsonfile.NewCollection[project.Project](cfg.ProjectsFile())
			}

			// Settings stay in JSON regardless of backend so they remain
			// hand-editable.
			var settingsStore settings.Store = jsonfile.NewSettingsStore(cfg.SettingsFile())

			// Populate the pre-allocated App struct (commands already hold
			// a pointer to it)
			*trellisApp = *trellis.NewApp(taskStore, projectStore, settingsStore, cfg, logger)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, trellisApp)

	app = commands.NewTaskCmd(flags, trellisApp).Register(app)
	app = commands.NewProjectCmd(flags, trellisApp).Register(app)
	app = commands.NewStatsCmd(flags, trellisApp).Register(app)
	app = commands.NewBriefCmd(flags, trellisApp).Register(app)
	app = commands.NewServeCmd(flags, trellisApp).Register(app)
	app = commands.NewSettingsCmd(flags, trellisApp).Register(app)
	app = commands.NewConfigCmd(flags).Register(app)
	app = tuiCmd.Register(app)

	// Open the TUI when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'trellis --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
