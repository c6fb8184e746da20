package trellis

import (
	"context"
	"fmt"
	"time"

	"github.com/hay-kot/trellis/internal/core/task"
	"github.com/rs/zerolog"
)

// TaskService owns all task mutations. Every write is one full load and one
// full save through the store; the store's last-writer-wins contract means at
// most one in-flight mutation per store is assumed.
type TaskService struct {
	store task.Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewTaskService creates a new TaskService.
func NewTaskService(store task.Store, log zerolog.Logger) *TaskService {
	return &TaskService{
		store: store,
		log:   log.With().Str("component", "task-service").Logger(),
		now:   time.Now,
	}
}

// Create validates the input, assigns identity and defaults, and appends the
// task to the collection.
func (s *TaskService) Create(ctx context.Context, in task.Input) (task.Task, error) {
	t, err := task.New(in, s.now())
	if err != nil {
		return task.Task{}, err
	}

	tasks, err := s.store.LoadAll(ctx)
	if err != nil {
		return task.Task{}, fmt.Errorf("load tasks: %w", err)
	}

	tasks = append(tasks, t)
	if err := s.store.SaveAll(ctx, tasks); err != nil {
		return task.Task{}, fmt.Errorf("save tasks: %w", err)
	}

	s.log.Info().Str("id", t.ID).Str("title", t.Title).Msg("task created")
	return t, nil
}

// Get returns a single task by ID. Returns task.ErrNotFound if absent.
func (s *TaskService) Get(ctx context.Context, id string) (task.Task, error) {
	tasks, err := s.store.LoadAll(ctx)
	if err != nil {
		return task.Task{}, fmt.Errorf("load tasks: %w", err)
	}

	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}

	return task.Task{}, task.ErrNotFound
}

// List returns the full task collection in stored order.
func (s *TaskService) List(ctx context.Context) ([]task.Task, error) {
	return s.store.LoadAll(ctx)
}

// ListByProject returns the tasks attached to the given project.
func (s *TaskService) ListByProject(ctx context.Context, projectID string) ([]task.Task, error) {
	tasks, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	out := []task.Task{}
	for _, t := range tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

// Update merges the patch into the stored task. A transition into Completed
// stamps DateCompleted; a transition out of Completed clears it. Returns
// task.ErrNotFound if the ID is absent.
func (s *TaskService) Update(ctx context.Context, id string, patch task.Patch) (task.Task, error) {
	tasks, err := s.store.LoadAll(ctx)
	if err != nil {
		return task.Task{}, fmt.Errorf("load tasks: %w", err)
	}

	idx := -1
	for i, t := range tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return task.Task{}, task.ErrNotFound
	}

	merged := patch.Apply(tasks[idx], s.now())
	if err := merged.Validate(); err != nil {
		return task.Task{}, err
	}

	tasks[idx] = merged
	if err := s.store.SaveAll(ctx, tasks); err != nil {
		return task.Task{}, fmt.Errorf("save tasks: %w", err)
	}

	s.log.Debug().Str("id", id).Str("status", string(merged.Status)).Msg("task updated")
	return merged, nil
}

// Delete removes the task. Returns task.ErrNotFound if the ID is absent; the
// stored collection is untouched in that case.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	tasks, err := s.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	kept := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return task.ErrNotFound
	}

	if err := s.store.SaveAll(ctx, kept); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}

	s.log.Info().Str("id", id).Msg("task deleted")
	return nil
}

// Complete transitions the task to Completed.
func (s *TaskService) Complete(ctx context.Context, id string) (task.Task, error) {
	status := task.StatusCompleted
	return s.Update(ctx, id, task.Patch{Status: &status})
}

// Reactivate resets the task to To Do. It does not try to recover a prior
// In Progress state; reactivation is deterministic.
func (s *TaskService) Reactivate(ctx context.Context, id string) (task.Task, error) {
	status := task.StatusTodo
	return s.Update(ctx, id, task.Patch{Status: &status})
}
