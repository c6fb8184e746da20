// Package settings defines user preference storage for the app.
package settings

import (
	"context"
	"time"
)

// TaskManagement holds task list display preferences.
type TaskManagement struct {
	Categories    []string `json:"categories"`
	DefaultView   string   `json:"defaultView"`
	SortBy        string   `json:"sortBy"`
	ShowCompleted bool     `json:"showCompleted"`
}

// Settings is the full user preference document.
type Settings struct {
	Theme          string         `json:"theme"`
	Notifications  bool           `json:"notifications"`
	Language       string         `json:"language"`
	Timezone       string         `json:"timezone"`
	TaskManagement TaskManagement `json:"taskManagement"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Default returns the settings used when nothing has been saved yet.
func Default() Settings {
	return Settings{
		Theme:         "light",
		Notifications: true,
		Language:      "en",
		Timezone:      "UTC",
		TaskManagement: TaskManagement{
			Categories:    []string{"Work", "Personal", "Shopping", "Health"},
			DefaultView:   "list",
			SortBy:        "dueDate",
			ShowCompleted: true,
		},
	}
}

// Patch holds a partial settings update. Nil fields are left unchanged.
type Patch struct {
	Theme          *string         `json:"theme"`
	Notifications  *bool           `json:"notifications"`
	Language       *string         `json:"language"`
	Timezone       *string         `json:"timezone"`
	TaskManagement *TaskManagement `json:"taskManagement"`
}

// Apply merges the patch into s and returns the result.
func (p Patch) Apply(s Settings) Settings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.Notifications != nil {
		s.Notifications = *p.Notifications
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.Timezone != nil {
		s.Timezone = *p.Timezone
	}
	if p.TaskManagement != nil {
		s.TaskManagement = *p.TaskManagement
	}
	return s
}

// Store defines the persistence port for settings. Load on a store that has
// never been written returns Default(), not an error.
type Store interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}
