// Package trellis wires the domain services together. Commands, the web
// server, and the TUI consume App instead of cherry-picking raw stores.
package trellis

import (
	"github.com/hay-kot/trellis/internal/core/config"
	"github.com/hay-kot/trellis/internal/core/project"
	"github.com/hay-kot/trellis/internal/core/settings"
	"github.com/hay-kot/trellis/internal/core/task"
	"github.com/rs/zerolog"
)

// App is the central entry point for all trellis operations.
type App struct {
	Tasks    *TaskService
	Projects *ProjectService
	Settings *SettingsService
	Config   *config.Config
	Log      zerolog.Logger
}

// NewApp constructs an App from explicit store dependencies.
func NewApp(
	taskStore task.Store,
	projectStore project.Store,
	settingsStore settings.Store,
	cfg *config.Config,
	log zerolog.Logger,
) *App {
	return &App{
		Tasks:    NewTaskService(taskStore, log),
		Projects: NewProjectService(projectStore, log),
		Settings: NewSettingsService(settingsStore, log),
		Config:   cfg,
		Log:      log,
	}
}
