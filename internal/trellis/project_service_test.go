package trellis

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/trellis/internal/core/project"
	"github.com/hay-kot/trellis/internal/core/task"
	"github.com/hay-kot/trellis/internal/store/jsonfile"
)

func newProjectService(t *testing.T) *ProjectService {
	t.Helper()

	store := jsonfile.NewCollection[project.Project](filepath.Join(t.TempDir(), "projects.json"))
	return NewProjectService(store, zerolog.Nop())
}

func TestProjectService_CreateAndGet(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, project.Input{Name: "Website", IsMainProject: true})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Website", got.Name)
	assert.True(t, got.IsMainProject)
	assert.False(t, got.IsCompleted)
}

func TestProjectService_GetMissing(t *testing.T) {
	svc := newProjectService(t)

	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, project.ErrNotFound)
}

func TestProjectService_Update(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, project.Input{Name: "Old"})
	require.NoError(t, err)

	name := "New"
	updated, err := svc.Update(ctx, created.ID, project.Patch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)

	blank := " "
	_, err = svc.Update(ctx, created.ID, project.Patch{Name: &blank})
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
}

func TestProjectService_CompleteAndReactivate(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, project.Input{Name: "P"})
	require.NoError(t, err)

	completed, err := svc.Complete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, completed.IsCompleted)

	reopened, err := svc.Reactivate(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, reopened.IsCompleted)
}

func TestProjectService_AddTaskURL(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, project.Input{Name: "P"})
	require.NoError(t, err)

	withURL, err := svc.AddTaskURL(ctx, created.ID, "https://example.com/pr/1")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/pr/1"}, withURL.TaskURLs)

	// duplicates are allowed
	again, err := svc.AddTaskURL(ctx, created.ID, "https://example.com/pr/1")
	require.NoError(t, err)
	assert.Len(t, again.TaskURLs, 2)
}

func TestProjectService_AddTaskURLRejectsBlank(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, project.Input{Name: "P"})
	require.NoError(t, err)

	_, err = svc.AddTaskURL(ctx, created.ID, "  ")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "url", fieldErrs[0].Field)
}

func TestProjectService_DeleteLeavesTasksOrphaned(t *testing.T) {
	dir := t.TempDir()
	projSvc := NewProjectService(jsonfile.NewCollection[project.Project](filepath.Join(dir, "projects.json")), zerolog.Nop())
	taskSvc := NewTaskService(jsonfile.NewCollection[task.Task](filepath.Join(dir, "tasks.json")), zerolog.Nop())
	ctx := context.Background()

	p, err := projSvc.Create(ctx, project.Input{Name: "Doomed"})
	require.NoError(t, err)

	created, err := taskSvc.Create(ctx, task.Input{Title: "survivor", ProjectID: p.ID})
	require.NoError(t, err)

	require.NoError(t, projSvc.Delete(ctx, p.ID))

	// the task remains, still pointing at the deleted project
	got, err := taskSvc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ProjectID)

	assert.ErrorIs(t, projSvc.Delete(ctx, p.ID), project.ErrNotFound)
}
