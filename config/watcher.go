package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/implgen/errors"
	"github.com/teranos/implgen/logger"
)

// DefaultDebounce groups bursts of writes into one reload.
const DefaultDebounce = 500 * time.Millisecond

// ChangeCallback is called once per debounced burst of changes to a watched file
type ChangeCallback func(path string) error

// ReloadCallback receives the reloaded configuration
type ReloadCallback func(*Config) error

// Watcher watches files for changes and calls back after a quiet period.
//
// Directories are watched rather than the files themselves so that editors
// replacing a file by rename keep triggering events.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration

	mu        sync.Mutex
	callbacks []ChangeCallback
	timers    map[string]*time.Timer

	ownWriteMu sync.Mutex
	ownWrite   bool

	done chan struct{}
	wg   sync.WaitGroup
}

var (
	globalWatcher   *Watcher
	globalWatcherMu sync.Mutex
)

// NewWatcher creates a watcher for the given files.
func NewWatcher(debounce time.Duration, paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		watcher:  fw,
		files:    map[string]bool{},
		debounce: debounce,
		timers:   map[string]*time.Timer{},
		done:     make(chan struct{}),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}

	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "resolve %s", p)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
	}
	return w, nil
}

// OnChange registers a callback for changes to any watched file
func (w *Watcher) OnChange(cb ChangeCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, cb)
}

// OnReload registers a callback that receives a freshly loaded Config
// after any watched file changes.
func (w *Watcher) OnReload(cb ReloadCallback) {
	w.OnChange(func(path string) error {
		Reset()
		cfg, err := Load()
		if err != nil {
			return errors.Wrap(err, "failed to load config")
		}
		logger.Infow("Config reloaded", "path", path)
		return cb(cfg)
	})
}

// MarkOwnWrite marks the next write as coming from us
func (w *Watcher) MarkOwnWrite() {
	w.ownWriteMu.Lock()
	defer w.ownWriteMu.Unlock()
	w.ownWrite = true
}

func (w *Watcher) checkOwnWrite() bool {
	w.ownWriteMu.Lock()
	defer w.ownWriteMu.Unlock()
	if w.ownWrite {
		w.ownWrite = false
		return true
	}
	return false
}

// Start begins watching in the background
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.watchLoop()
}

func (w *Watcher) watchLoop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Clean(event.Name)
			if isBackupFile(name) || !w.files[name] {
				continue
			}
			if w.checkOwnWrite() {
				logger.Debugw("Watcher ignoring own write", "file", name)
				continue
			}
			logger.Debugw("Watcher detected change", "file", name, "op", event.Op.String())
			w.schedule(name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("Watcher error", "error", err)
		}
	}
}

// schedule restarts the quiet-period timer for path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.fire(path)
	})
}

func (w *Watcher) fire(path string) {
	select {
	case <-w.done:
		return
	default:
	}

	w.mu.Lock()
	callbacks := make([]ChangeCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, cb := range callbacks {
		if err := cb(path); err != nil {
			logger.Warnw("Watcher callback error", "file", path, "error", err)
		}
	}
}

// Stop stops watching and cancels pending callbacks
func (w *Watcher) Stop() error {
	close(w.done)

	w.mu.Lock()
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

// isBackupFile reports whether path is a rotated backup (.back1, .back2, ...)
func isBackupFile(path string) bool {
	ext := filepath.Ext(path)
	return strings.HasPrefix(ext, ".back")
}

// SetGlobalWatcher sets the watcher Save marks its own writes on
func SetGlobalWatcher(w *Watcher) {
	globalWatcherMu.Lock()
	defer globalWatcherMu.Unlock()
	globalWatcher = w
}

// GetGlobalWatcher returns the global watcher instance
func GetGlobalWatcher() *Watcher {
	globalWatcherMu.Lock()
	defer globalWatcherMu.Unlock()
	return globalWatcher
}
