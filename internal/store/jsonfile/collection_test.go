package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/trellis/internal/core/task"
)

func newTask(t *testing.T, title string) task.Task {
	t.Helper()

	created, err := task.New(task.Input{Title: title}, time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return created
}

func TestCollection_LoadMissingFileIsEmpty(t *testing.T) {
	store := NewCollection[task.Task](filepath.Join(t.TempDir(), "tasks.json"))

	items, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCollection_LoadEmptyFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	store := NewCollection[task.Task](path)
	items, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCollection_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	store := NewCollection[task.Task](path)
	ctx := context.Background()

	want := []task.Task{newTask(t, "first"), newTask(t, "second")}
	require.NoError(t, store.SaveAll(ctx, want))

	got, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "second", got[1].Title)
}

func TestCollection_FileIsBareJSONArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	store := NewCollection[task.Task](path)
	ctx := context.Background()

	require.NoError(t, store.SaveAll(ctx, []task.Task{newTask(t, "a")}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "a", raw[0]["title"])
	assert.Contains(t, raw[0], "dateCreated")
	assert.Contains(t, raw[0], "projectId")
}

func TestCollection_SaveReplacesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	store := NewCollection[task.Task](path)
	ctx := context.Background()

	require.NoError(t, store.SaveAll(ctx, []task.Task{newTask(t, "a"), newTask(t, "b")}))
	require.NoError(t, store.SaveAll(ctx, []task.Task{newTask(t, "c")}))

	got, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].Title)
}

func TestCollection_SaveNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	store := NewCollection[task.Task](path)
	ctx := context.Background()

	require.NoError(t, store.SaveAll(ctx, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestCollection_SaveCreatesDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "tasks.json")
	store := NewCollection[task.Task](path)

	require.NoError(t, store.SaveAll(context.Background(), []task.Task{newTask(t, "a")}))
	assert.FileExists(t, path)
}

func TestCollection_LoadMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewCollection[task.Task](path)
	_, err := store.LoadAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tasks.json")
}

func TestCollection_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewCollection[task.Task](filepath.Join(dir, "tasks.json"))

	require.NoError(t, store.SaveAll(context.Background(), []task.Task{newTask(t, "a")}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "tasks.json", entries[0].Name())
}
