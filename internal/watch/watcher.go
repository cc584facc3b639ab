// Package watch reloads the chime config file whenever it changes on disk.
package watch

import (
	"errors"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/minicodemonkey/chime/internal/config"
)

// Event carries a reloaded config or the error that prevented reloading it.
type Event struct {
	Config *config.Config
	Error  error
}

// Watcher watches a config file for changes and sends events.
type Watcher struct {
	path       string
	watcher    *fsnotify.Watcher
	events     chan Event
	done       chan struct{}
	mu         sync.Mutex
	running    bool
	lastConfig *config.Config
}

// NewWatcher creates a new Watcher for the given config file path.
func NewWatcher(path string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:    filepath.Clean(path),
		watcher: fsWatcher,
		events:  make(chan Event, 10),
		done:    make(chan struct{}),
	}

	return w, nil
}

// Start loads the current config and begins watching. The directory is
// watched rather than the file so editors that save by rename are seen.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	cfg, err := config.Load(w.path)
	if err != nil {
		// Don't fail startup, just send error event
		w.events <- Event{Error: err}
	} else {
		w.setLast(cfg)
	}

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	go w.processEvents()

	return nil
}

// Stop stops watching the config file.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.done)
	w.watcher.Close()
}

// Events returns the channel for receiving config change events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Current returns the last successfully loaded config.
func (w *Watcher) Current() *config.Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastConfig
}

func (w *Watcher) setLast(cfg *config.Config) {
	w.mu.Lock()
	w.lastConfig = cfg
	w.mu.Unlock()
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			close(w.events)
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.handleFileChange()
			}

			if event.Op&fsnotify.Remove != 0 {
				w.send(Event{Error: errors.New("config file was removed")})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(Event{Error: err})
		}
	}
}

// handleFileChange reloads the config and sends an event if it changed.
func (w *Watcher) handleFileChange() {
	cfg, err := config.Load(w.path)
	if err != nil {
		w.send(Event{Error: err})
		return
	}

	if last := w.Current(); last != nil && reflect.DeepEqual(last, cfg) {
		return
	}
	w.setLast(cfg)
	w.send(Event{Config: cfg})
}

func (w *Watcher) send(e Event) {
	select {
	case w.events <- e:
	case <-w.done:
	}
}
