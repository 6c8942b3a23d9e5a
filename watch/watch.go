// Package watch reruns a build whenever a file changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/glenum/errors"
	"github.com/teranos/glenum/logger"
)

// BuildFunc is called after each debounced change. A returned error is
// logged and watching continues.
type BuildFunc func(ctx context.Context) error

// Watcher watches a single file for changes.
//
// The parent directory is watched rather than the file itself so that
// editors replacing the file by rename are still noticed.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	log      *zap.SugaredLogger
}

// New creates a watcher for path. A zero debounce runs the build on every
// relevant event.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "failed to watch directory of %s", path)
	}

	return &Watcher{path: abs, debounce: debounce, watcher: fw, log: logger.ComponentLogger("watch")}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run blocks, calling build after each burst of changes, until ctx is
// cancelled. The watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, build BuildFunc) error {
	defer w.watcher.Close()

	// pending is nil while no build is scheduled.
	var pending <-chan time.Time
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debugw("Detected change",
				logger.FieldFile, event.Name,
				"op", event.Op.String())

			if w.debounce <= 0 {
				w.runBuild(ctx, build)
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			w.runBuild(ctx, build)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("fsnotify error", logger.FieldError, err.Error())
		}
	}
}

// Close stops watching without running.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) runBuild(ctx context.Context, build BuildFunc) {
	start := time.Now()
	if err := build(ctx); err != nil {
		w.log.Errorw("Rebuild failed",
			logger.FieldFile, w.path,
			logger.FieldError, err.Error())
		return
	}
	w.log.Infow("Rebuilt",
		logger.FieldFile, w.path,
		logger.FieldDurationMS, time.Since(start).Milliseconds())
}
