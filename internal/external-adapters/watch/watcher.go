// Package watch re-runs the minifier when configured web assets change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ochairo/prebuild/internal/domain/interfaces"
	"github.com/ochairo/prebuild/internal/domain/services"
)

// DefaultDebounce is how long a file must stay quiet before the handler runs.
// Editors often truncate and then write, which yields several events per save.
const DefaultDebounce = 200 * time.Millisecond

// Handler is called with the full path of a changed asset
type Handler func(ctx context.Context, path string)

// Watcher watches one directory for writes to a fixed set of filenames
type Watcher struct {
	dir      string
	files    map[string]struct{}
	handler  Handler
	logger   interfaces.Logger
	fsw      *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher starts watching dir; only events for the named files reach handler.
// Names that already carry the .min marker are never tracked.
func NewWatcher(dir string, files []string, handler Handler, logger interfaces.Logger) (*Watcher, error) {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	set := make(map[string]struct{}, len(files))
	for _, name := range files {
		set[name] = struct{}{}
	}

	return &Watcher{
		dir:      dir,
		files:    set,
		handler:  handler,
		logger:   logger,
		fsw:      fsw,
		debounce: DefaultDebounce,
	}, nil
}

// Run dispatches change events until ctx is done, then closes the watcher.
// Bursts of events for one file collapse into a single handler call.
func (w *Watcher) Run(ctx context.Context) error {
	//nolint:errcheck // Defer close
	defer w.fsw.Close()

	stop := make(chan struct{})
	ready := make(chan string)
	pending := make(map[string]*time.Timer)
	defer func() {
		close(stop)
		for _, timer := range pending {
			timer.Stop()
		}
	}()

	w.logger.Info("watching assets", interfaces.F("dir", w.dir), interfaces.F("files", len(w.files)))
	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-ready:
			delete(pending, path)
			w.handler(ctx, path)
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.tracks(event) {
				continue
			}
			w.logger.Debug("asset changed", interfaces.F("file", event.Name), interfaces.F("op", event.Op.String()))
			if timer, exists := pending[event.Name]; exists {
				timer.Reset(w.debounce)
				continue
			}
			path := event.Name
			pending[path] = time.AfterFunc(w.debounce, func() {
				select {
				case ready <- path:
				case <-stop:
				}
			})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", interfaces.F("error", err))
		}
	}
}

func (w *Watcher) tracks(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	name := filepath.Base(event.Name)
	if services.IsMinifiedName(name) {
		return false
	}
	_, tracked := w.files[name]
	return tracked
}
