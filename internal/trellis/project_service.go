package trellis

import (
	"context"
	"fmt"
	"time"

	"github.com/hay-kot/trellis/internal/core/project"
	"github.com/hay-kot/trellis/internal/core/validate"
	"github.com/rs/zerolog"
)

// ProjectService owns all project mutations. Deleting a project leaves its
// tasks in place with a dangling projectId; there is no cascade and the two
// stores are never written in one transaction.
type ProjectService struct {
	store project.Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewProjectService creates a new ProjectService.
func NewProjectService(store project.Store, log zerolog.Logger) *ProjectService {
	return &ProjectService{
		store: store,
		log:   log.With().Str("component", "project-service").Logger(),
		now:   time.Now,
	}
}

// Create validates the input, assigns identity, and appends the project to
// the collection.
func (s *ProjectService) Create(ctx context.Context, in project.Input) (project.Project, error) {
	p, err := project.New(in, s.now())
	if err != nil {
		return project.Project{}, err
	}

	projects, err := s.store.LoadAll(ctx)
	if err != nil {
		return project.Project{}, fmt.Errorf("load projects: %w", err)
	}

	projects = append(projects, p)
	if err := s.store.SaveAll(ctx, projects); err != nil {
		return project.Project{}, fmt.Errorf("save projects: %w", err)
	}

	s.log.Info().Str("id", p.ID).Str("name", p.Name).Msg("project created")
	return p, nil
}

// Get returns a single project by ID. Returns project.ErrNotFound if absent.
func (s *ProjectService) Get(ctx context.Context, id string) (project.Project, error) {
	projects, err := s.store.LoadAll(ctx)
	if err != nil {
		return project.Project{}, fmt.Errorf("load projects: %w", err)
	}

	for _, p := range projects {
		if p.ID == id {
			return p, nil
		}
	}

	return project.Project{}, project.ErrNotFound
}

// List returns the full project collection in stored order.
func (s *ProjectService) List(ctx context.Context) ([]project.Project, error) {
	return s.store.LoadAll(ctx)
}

// Update merges the patch into the stored project.
func (s *ProjectService) Update(ctx context.Context, id string, patch project.Patch) (project.Project, error) {
	return s.mutate(ctx, id, func(p project.Project) (project.Project, error) {
		merged := patch.Apply(p)
		if err := merged.Validate(); err != nil {
			return project.Project{}, err
		}
		return merged, nil
	})
}

// Delete removes the project. Its tasks keep their projectId and become
// orphaned; orphaned tasks are tolerated throughout.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	projects, err := s.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}

	kept := make([]project.Project, 0, len(projects))
	for _, p := range projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(projects) {
		return project.ErrNotFound
	}

	if err := s.store.SaveAll(ctx, kept); err != nil {
		return fmt.Errorf("save projects: %w", err)
	}

	s.log.Info().Str("id", id).Msg("project deleted")
	return nil
}

// Complete marks the project completed. Task statuses are not touched.
func (s *ProjectService) Complete(ctx context.Context, id string) (project.Project, error) {
	return s.mutate(ctx, id, func(p project.Project) (project.Project, error) {
		p.IsCompleted = true
		return p, nil
	})
}

// Reactivate marks the project active again.
func (s *ProjectService) Reactivate(ctx context.Context, id string) (project.Project, error) {
	return s.mutate(ctx, id, func(p project.Project) (project.Project, error) {
		p.IsCompleted = false
		return p, nil
	})
}

// AddTaskURL appends a reference link to the project. Duplicate URLs are
// permitted; an empty URL is a validation error.
func (s *ProjectService) AddTaskURL(ctx context.Context, id, url string) (project.Project, error) {
	if err := validate.RequiredField("url", url); err != nil {
		return project.Project{}, err
	}

	return s.mutate(ctx, id, func(p project.Project) (project.Project, error) {
		p.TaskURLs = append(p.TaskURLs, url)
		return p, nil
	})
}

// mutate runs a read-modify-write cycle against a single project.
func (s *ProjectService) mutate(ctx context.Context, id string, fn func(project.Project) (project.Project, error)) (project.Project, error) {
	projects, err := s.store.LoadAll(ctx)
	if err != nil {
		return project.Project{}, fmt.Errorf("load projects: %w", err)
	}

	idx := -1
	for i, p := range projects {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return project.Project{}, project.ErrNotFound
	}

	updated, err := fn(projects[idx])
	if err != nil {
		return project.Project{}, err
	}

	projects[idx] = updated
	if err := s.store.SaveAll(ctx, projects); err != nil {
		return project.Project{}, fmt.Errorf("save projects: %w", err)
	}

	s.log.Debug().Str("id", id).Msg("project updated")
	return updated, nil
}
