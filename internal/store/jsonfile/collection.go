// Package jsonfile persists entity collections as flat JSON files.
//
// Each collection is one file holding a bare JSON array, so the files stay
// hand-editable and diffable. Saves replace the whole file;
// there is no partial write and no cross-file transaction. Concurrent
// processes racing on the same file are last-writer-wins.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hay-kot/trellis/internal/core/project"
	"github.com/hay-kot/trellis/internal/core/task"
	"github.com/hay-kot/trellis/pkg/randid"
)

var (
	_ task.Store    = (*Collection[task.Task])(nil)
	_ project.Store = (*Collection[project.Project])(nil)
)

// Collection is a JSON-file-backed store for a slice of entities.
// The mutex serializes access within this process only.
type Collection[T any] struct {
	path string
	mu   sync.RWMutex
}

// NewCollection creates a collection store backed by the given file path.
// The file is created on first save.
func NewCollection[T any](path string) *Collection[T] {
	return &Collection[T]{path: path}
}

// LoadAll reads the full collection. A missing or empty file loads as an
// empty collection.
func (c *Collection[T]) LoadAll(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", filepath.Base(c.path), err)
	}

	if len(data) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(c.path), err)
	}
	if items == nil {
		items = []T{}
	}

	return items, nil
}

// SaveAll replaces the stored collection. The write is atomic within this
// process: content goes to a temp file which is renamed over the target.
func (c *Collection[T]) SaveAll(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if items == nil {
		items = []T{}
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(c.path), err)
	}

	// Random suffix keeps two racing processes from sharing a temp file;
	// the final rename is still last-writer-wins.
	tmp := c.path + ".tmp." + randid.Generate(6)
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(c.path), err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(c.path), err)
	}

	return nil
}
