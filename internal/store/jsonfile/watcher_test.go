package jsonfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForEvent(t *testing.T, w *Watcher) (Event, bool) {
	t.Helper()

	select {
	case ev := <-w.Events():
		return ev, true
	case <-time.After(2 * time.Second):
		return Event{}, false
	}
}

func TestWatcher_ReportsJSONWrites(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("[]"), 0o644))

	ev, ok := waitForEvent(t, w)
	require.True(t, ok, "expected an event for tasks.json")
	assert.Equal(t, "tasks.json", ev.File)
}

func TestWatcher_IgnoresNonJSONFiles(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "trellis.log"), []byte("line"), 0o644))

	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event for %s", ev.File)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_DebouncesRapidWrites(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	path := filepath.Join(dir, "tasks.json")
	for range 5 {
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	}

	_, ok := waitForEvent(t, w)
	require.True(t, ok)

	// The burst above collapses into one event.
	select {
	case <-w.Events():
		t.Fatal("expected rapid writes to debounce into a single event")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_MissingDirErrors(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}
