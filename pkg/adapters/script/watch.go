package script

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 50 * time.Millisecond

// WatchConfig tunes Watch.
type WatchConfig struct {
	Logger   *slog.Logger
	Debounce time.Duration
}

// Watch calls fn with the freshly parsed script every time the file at path
// changes, until ctx is done. fn is also called once up front. Parse errors are
// handed to fn rather than ending the watch, so a half-saved file does not
// stop the loop.
//
// The parent directory is watched rather than the file itself because many
// editors save by writing a temporary file and renaming it over the original.
func Watch(ctx context.Context, path string, cfg WatchConfig, fn func([]Step, error)) error {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve script path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &scriptWatcher{
		path:    abs,
		cfg:     cfg,
		fn:      fn,
		watcher: watcher,
	}

	fn(Load(abs))
	return w.run(ctx)
}

type scriptWatcher struct {
	path    string
	cfg     WatchConfig
	fn      func([]Step, error)
	watcher *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
	wg    sync.WaitGroup
}

// run is the main event loop for the watcher.
func (w *scriptWatcher) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)

			// Stack traces only when debug logging is enabled.
			if w.cfg.Logger.Enabled(ctx, slog.LevelDebug) {
				w.cfg.Logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				w.cfg.Logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)

	// Wait for an in-flight reload so fn is never called after Watch returns.
	w.mu.Lock()
	if w.timer != nil && w.timer.Stop() {
		w.wg.Done()
	}
	w.mu.Unlock()
	w.wg.Wait()

	return err
}

func (w *scriptWatcher) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processEvent(event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.cfg.Logger.Error("fsnotify error", "error", wErr)
		}
	}
}

// processEvent filters events down to writes of the script file and
// schedules a debounced reload.
func (w *scriptWatcher) processEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	w.cfg.Logger.Debug("script changed", "path", w.path, "op", event.Op.String())

	w.mu.Lock()
	defer w.mu.Unlock()

	// Editors often emit several events per save; collapse them.
	if w.timer != nil && w.timer.Stop() {
		w.wg.Done()
	}
	w.wg.Add(1)
	w.timer = time.AfterFunc(w.cfg.Debounce, func() {
		defer w.wg.Done()
		w.fn(Load(w.path))
	})
}
