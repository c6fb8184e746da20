package project

import "context"

// Store defines the persistence port for the project collection.
// Same full-replacement contract as the task store: one LoadAll,
// in-memory mutation, one SaveAll.
type Store interface {
	LoadAll(ctx context.Context) ([]Project, error)
	SaveAll(ctx context.Context, projects []Project) error
}
