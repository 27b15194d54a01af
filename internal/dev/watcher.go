package dev

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change represents a detected file change.
type Change struct {
	Path string
	Op   fsnotify.Op
}

// Removed reports whether the file was removed or renamed away.
func (c Change) Removed() bool {
	return c.Op.Has(fsnotify.Remove) || c.Op.Has(fsnotify.Rename)
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Paths are the files or directories to watch.
	Paths []string

	// Ignore patterns to skip (globs on the base name).
	Ignore []string

	// Debounce is the quiet period before a change is reported.
	Debounce time.Duration

	// Logger receives watcher errors. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	".git",
	"*.tmp",
	"*.swp",
	"*~",
	"4913", // vim write probe
}

// Watcher monitors files for changes.
type Watcher struct {
	config   WatcherConfig
	onChange func(Change)
	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}

	// files are the watched regular files; dirs the watched directories.
	files map[string]bool
	dirs  map[string]bool
}

// NewWatcher creates a new file watcher.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Debounce == 0 {
		config.Debounce = 100 * time.Millisecond
	}
	if len(config.Ignore) == 0 {
		config.Ignore = DefaultIgnore
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Watcher{
		config: config,
		files:  make(map[string]bool),
		dirs:   make(map[string]bool),
	}
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start begins watching and blocks until ctx is done or Stop is called.
// Files are watched through their parent directory so that editors which
// replace the file on save keep being tracked.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.markStopped()
		return err
	}
	defer fsw.Close()

	if err := w.addPaths(fsw); err != nil {
		w.markStopped()
		return err
	}

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending Change
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.markStopped()
			return ctx.Err()
		case <-stopCh:
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			pending = Change{Path: filepath.Clean(event.Name), Op: event.Op}
			if timer == nil {
				timer = time.NewTimer(w.config.Debounce)
			} else {
				timer.Reset(w.config.Debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			w.report(pending)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.config.Logger.Warn("watcher error", "error", err)
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

func (w *Watcher) markStopped() {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
}

// addPaths registers the configured paths with fsw.
func (w *Watcher) addPaths(fsw *fsnotify.Watcher) error {
	for _, p := range w.config.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return err
		}
		dir := abs
		if info.IsDir() {
			w.dirs[abs] = true
		} else {
			w.files[abs] = true
			dir = filepath.Dir(abs)
		}
		if err := fsw.Add(dir); err != nil {
			return err
		}
	}
	return nil
}

// relevant reports whether event concerns a watched path.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	if w.shouldIgnore(name) {
		return false
	}
	if w.files[name] {
		return true
	}
	return w.dirs[filepath.Dir(name)]
}

func (w *Watcher) report(c Change) {
	w.mu.Lock()
	callback := w.onChange
	w.mu.Unlock()
	if callback != nil {
		callback(c)
	}
}

// shouldIgnore checks if a path should be ignored.
func (w *Watcher) shouldIgnore(fullPath string) bool {
	name := filepath.Base(fullPath)
	for _, pattern := range w.config.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if name == pattern {
			return true
		}
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
