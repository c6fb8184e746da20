package jsonfile

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/hay-kot/trellis/internal/core/logging"
)

const (
	debounceDelay   = 50 * time.Millisecond
	eventBufferSize = 16
)

// Event reports that a data file changed on disk.
type Event struct {
	// File is the base name of the changed file, e.g. "tasks.json".
	File string
}

// Watcher observes the data directory and reports external changes to the
// JSON data files. It is an observer only; consumers (the TUI) use it to
// reload after another process wrote the files.
type Watcher struct {
	dataDir string
	watcher *fsnotify.Watcher
	log     zerolog.Logger

	mu       sync.Mutex
	debounce map[string]*time.Timer

	events chan Event
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher over the given data directory.
func NewWatcher(dataDir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(dataDir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		dataDir:  dataDir,
		watcher:  fsw,
		log:      logging.Component("jsonfile-watcher"),
		debounce: make(map[string]*time.Timer),
		events:   make(chan Event, eventBufferSize),
		ctx:      ctx,
		cancel:   cancel,
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Events returns the channel of debounced change events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// non-fatal; the next event may still arrive
			w.log.Warn().Err(err).Msg("watch error")
		}
	}
}

// handleEvent debounces rapid write sequences per file. Atomic saves produce
// a create+rename pair which would otherwise fire twice.
func (w *Watcher) handleEvent(ev fsnotify.Event) {
	name := filepath.Base(ev.Name)
	if !strings.HasSuffix(name, ".json") {
		return
	}
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.debounce[name]; ok {
		timer.Stop()
	}
	w.debounce[name] = time.AfterFunc(debounceDelay, func() {
		select {
		case w.events <- Event{File: name}:
		case <-w.ctx.Done():
		}
	})
}
