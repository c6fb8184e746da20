package task

import "context"

// Store defines the persistence port for the task collection.
//
// SaveAll fully replaces the stored collection; callers must read the whole
// collection, mutate it in memory, and write it back. Concurrent writers are
// last-writer-wins with no merge. LoadAll on a store that has never been
// written returns an empty collection, not an error.
type Store interface {
	LoadAll(ctx context.Context) ([]Task, error)
	SaveAll(ctx context.Context, tasks []Task) error
}
