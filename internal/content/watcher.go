package content

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a Store whenever its backing file changes on disk.
// The parent directory is watched rather than the file so editors that
// save by rename are picked up too.
type Watcher struct {
	store    *Store
	logger   *zap.Logger
	debounce time.Duration

	// OnReload, when set, is called after every reload attempt.
	OnReload func(error)
}

// NewWatcher creates a watcher for a file-backed store.
func NewWatcher(store *Store, logger *zap.Logger) (*Watcher, error) {
	if store.Path() == "" {
		return nil, fmt.Errorf("watch content: store has no backing file")
	}
	return &Watcher{
		store:    store,
		logger:   logger,
		debounce: 250 * time.Millisecond,
	}, nil
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch content: %w", err)
	}
	defer fw.Close()

	target := filepath.Clean(w.store.Path())
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch content %s: %w", target, err)
	}
	w.logger.Info("watching content", zap.String("path", target))

	// A nil channel blocks forever, so the timer case is inert until armed.
	var (
		timer  *time.Timer
		timerC <-chan time.Time
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

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			err := w.store.Reload()
			if err != nil {
				w.logger.Warn("content reload failed, keeping previous document", zap.Error(err))
			} else {
				w.logger.Info("content reloaded", zap.String("path", target))
			}
			if w.OnReload != nil {
				w.OnReload(err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("content watcher error", zap.Error(err))
		}
	}
}
