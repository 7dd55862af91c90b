package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a change triggers a reload.
const DefaultDebounce = 100 * time.Millisecond

// Reloader is implemented by Store.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Watcher reloads blueprints when files under a directory change. Bursts of
// events are collapsed into a single reload.
type Watcher struct {
	dir      string
	target   Reloader
	interval time.Duration
	logger   *slog.Logger

	watcher  *fsnotify.Watcher
	debounce *debouncer
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher watches dir and every subdirectory present at start.
func NewWatcher(dir string, target Reloader, opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		dir:      dir,
		target:   target,
		interval: DefaultDebounce,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := addTree(fw, dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w.watcher = fw
	w.debounce = newDebouncer(w.interval)
	return w, nil
}

// Watch processes file events until ctx is cancelled. It closes the
// underlying watcher on return.
func (w *Watcher) Watch(ctx context.Context) error {
	defer func() {
		w.debounce.stop()
		_ = w.watcher.Close()
	}()

	w.logger.Info("watching blueprints", slog.String("dir", w.dir))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(w.watcher, event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", slog.String("dir", event.Name), slog.Any("error", err))
					}
					continue
				}
			}
			if !relevant(event) {
				continue
			}

			w.logger.Debug("blueprint file changed", slog.String("path", event.Name), slog.String("op", event.Op.String()))
			w.debounce.trigger(func() {
				if err := w.target.Reload(ctx); err != nil {
					w.logger.Error("blueprint reload failed", slog.Any("error", err))
					return
				}
				w.logger.Info("blueprints reloaded")
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", slog.Any("error", err))
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(base)))
}

func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", p, err)
		}
		return nil
	})
}

// debouncer runs the last triggered callback once no trigger arrived for
// the interval.
type debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
