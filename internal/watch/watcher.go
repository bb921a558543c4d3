// Package watch reports changes to files in watched directories.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"musicshell/internal/errors"
	"musicshell/internal/log"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
)

// Change is a file event that passed the watcher's filter.
type Change struct {
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher monitors directories for file changes using fsnotify
type Watcher struct {
	// Directories being watched
	directories []string

	// Only base names matching this pattern are reported; nil matches all
	filter glob.Glob

	// Channel to receive changes
	changes chan Change

	// Channel to signal stop
	stopChan chan struct{}
	done     chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	mutex   sync.RWMutex
	running bool
	closed  bool
}

// Option configures a Watcher.
type Option func(*Watcher) error

// WithPattern reports only files whose base name matches the glob pattern.
func WithPattern(pattern string) Option {
	return func(w *Watcher) error {
		g, err := glob.Compile(pattern)
		if err != nil {
			return errors.NewInvalidInputError("invalid watch pattern", err).WithContext("pattern", pattern)
		}
		w.filter = g
		return nil
	}
}

// New creates a new directory watcher using fsnotify
func New(opts ...Option) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		changes:   make(chan Change, 16),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
		fsWatcher: fsWatcher,
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			fsWatcher.Close()
			return nil, err
		}
	}
	return w, nil
}

// AddDirectory adds a directory to watch. It is created if missing.
func (w *Watcher) AddDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.FromOS("error accessing directory", dir, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return errors.FromOS("error accessing directory", dir, err)
	}
	if !info.IsDir() {
		return errors.NewFileError("not a directory", dir, errors.InvalidPath, nil)
	}

	if err := w.fsWatcher.Add(dir); err != nil {
		return errors.NewFileError("failed to watch directory", dir, errors.FileOperationFailed, err)
	}

	w.mutex.Lock()
	found := false
	for _, existing := range w.directories {
		if existing == dir {
			found = true
			break
		}
	}
	if !found {
		w.directories = append(w.directories, dir)
	}
	w.mutex.Unlock()
	log.LogWithFields(log.F("directory", dir)).Debug("Watching directory")
	return nil
}

// Changes returns the channel that delivers filtered changes. It is closed
// after Stop.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

func (w *Watcher) matches(path string) bool {
	return w.filter == nil || w.filter.Match(filepath.Base(path))
}

// Start begins the event loop.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return errors.New("watcher already running")
	}
	if w.closed {
		return errors.New("watcher stopped")
	}
	w.running = true

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.changes)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.matches(event.Name) {
				continue
			}

			change := Change{Path: event.Name, Op: event.Op, Timestamp: time.Now()}
			// Send non-blockingly so a slow consumer cannot stall fsnotify
			select {
			case w.changes <- change:
			default:
				log.LogWithFields(log.F("file", event.Name)).Debug("Change channel full, dropped event")
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithError(err).Warn("fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

// Stop halts the watcher, releases fsnotify and closes the change channel
// if the loop was started.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if w.closed {
		w.mutex.Unlock()
		return
	}
	w.closed = true
	wasRunning := w.running
	w.running = false
	if wasRunning {
		close(w.stopChan)
	}
	w.mutex.Unlock()

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithError(err).Warn("Error closing fsnotify watcher")
	}
	if wasRunning {
		<-w.done
	}
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// GetDirectories returns the list of directories being watched
func (w *Watcher) GetDirectories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	dirsCopy := make([]string, len(w.directories))
	copy(dirsCopy, w.directories)
	return dirsCopy
}

// Forward calls notify once per burst of changes, waiting for quiet before
// each call so a save that writes and renames produces one refresh. It
// returns when ctx is done or the change channel closes.
func (w *Watcher) Forward(ctx context.Context, quiet time.Duration, notify func()) error {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending bool
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.changes:
			if !ok {
				if pending {
					notify()
				}
				return nil
			}
			pending = true
			if timer == nil {
				timer = time.NewTimer(quiet)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(quiet)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			if pending {
				pending = false
				notify()
			}
		}
	}
}
