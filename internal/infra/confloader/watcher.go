package confloader

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yndnr/domainmap/internal/telemetry/logger"
)

// Watcher reports writes to configuration files.
type Watcher struct {
	fs       *fsnotify.Watcher
	logger   logger.Logger
	debounce time.Duration

	mu        sync.RWMutex
	files     map[string]bool
	callbacks []func(string)

	// pending holds one timer per path while a burst of events settles.
	pendingMu sync.Mutex
	pending   map[string]*time.Timer
	notifyMu  sync.Mutex

	done     chan struct{}
	stopOnce sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger for the watcher.
func WithWatcherLogger(l logger.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = l
	}
}

// WithDebounce coalesces events for the same file that arrive within d into
// one callback run. Editors typically truncate and write in separate steps.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// NewWatcher creates a configuration file watcher.
func NewWatcher(opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:      fw,
		logger:  logger.Default(),
		files:   make(map[string]bool),
		pending: make(map[string]*time.Timer),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch registers a file. The parent directory is what fsnotify watches,
// so editors that save by rename are still seen; events for other files in
// that directory are ignored.
func (w *Watcher) Watch(path string) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := w.fs.Add(dir); err != nil {
		w.logger.Error("failed to watch directory", "path", dir, "error", err)
		return err
	}

	w.mu.Lock()
	w.files[path] = true
	w.mu.Unlock()

	w.logger.Debug("watching config file", "path", path, "debounce", w.debounce)
	return nil
}

// OnChange registers a callback run with the path of each changed file.
// Callbacks never run concurrently with each other.
func (w *Watcher) OnChange(callback func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start processes events until Stop is called.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			path := filepath.Clean(event.Name)
			if !w.watched(path) {
				continue
			}
			w.logger.Debug("config file changed", "file", path, "op", event.Op.String())
			w.schedule(path)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

// StartAsync runs Start in a goroutine.
func (w *Watcher) StartAsync() {
	go w.Start()
}

// Stop stops the watcher and drops pending notifications. It is safe to
// call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()

		w.pendingMu.Lock()
		for path, t := range w.pending {
			t.Stop()
			delete(w.pending, path)
		}
		w.pendingMu.Unlock()
	})
	return err
}

func (w *Watcher) watched(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// schedule notifies now, or once no event for path arrived for the
// debounce interval.
func (w *Watcher) schedule(path string) {
	if w.debounce <= 0 {
		w.notifyCallbacks(path)
		return
	}

	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.pendingMu.Lock()
		delete(w.pending, path)
		w.pendingMu.Unlock()

		select {
		case <-w.done:
			return
		default:
		}
		w.notifyCallbacks(path)
	})
}

func (w *Watcher) notifyCallbacks(path string) {
	w.notifyMu.Lock()
	defer w.notifyMu.Unlock()

	w.mu.RLock()
	callbacks := append(([]func(string))(nil), w.callbacks...)
	w.mu.RUnlock()

	for _, cb := range callbacks {
		cb(path)
	}
}
