package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/wordspace/internal/core/ports/driving"
	"github.com/custodia-labs/wordspace/internal/logger"
)

// DefaultDebounce is the quiet period before a reload.
const DefaultDebounce = 500 * time.Millisecond

// ModelWatcher reloads a model artifact through the model service.
type ModelWatcher struct {
	models   driving.ModelService
	path     string
	debounce time.Duration

	// onReload, if set, is called after every reload attempt.
	onReload func(error)
}

// New creates a watcher for the artifact at path.
func New(models driving.ModelService, path string, debounce time.Duration) *ModelWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &ModelWatcher{
		models:   models,
		path:     filepath.Clean(path),
		debounce: debounce,
	}
}

// OnReload registers fn to receive the outcome of every reload.
func (w *ModelWatcher) OnReload(fn func(error)) {
	w.onReload = fn
}

// Run watches the artifact's directory until ctx is cancelled. The
// directory is watched rather than the file because an atomic save
// replaces the file with a rename.
func (w *ModelWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Debug("Watching %s for model changes", w.path)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Model watch error: %v", err)
		case <-timer.C:
			w.reload(ctx)
		}
	}
}

func (w *ModelWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// reload keeps the current model when loading fails.
func (w *ModelWatcher) reload(ctx context.Context) {
	model, err := w.models.Load(ctx, w.path)
	if err != nil {
		logger.Warn("Model reload failed, keeping current model: %v", err)
	} else {
		logger.Info("Reloaded model %s from %s", model.ID(), w.path)
	}
	if w.onReload != nil {
		w.onReload(err)
	}
}
