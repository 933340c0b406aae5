// Package fsnotify watches a pattern file with github.com/fsnotify/fsnotify and
// reports settled changes. The parent directory is watched rather than the file,
// since editors and config managers replace files by rename
package fsnotify

import (
	"path/filepath"
	"sync"
	"time"

	perr "acdat/internal/platform/errors"
	"acdat/internal/platform/logger"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a change is reported
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changes to a single file
type Watcher struct {
	fw       *fsnotify.Watcher
	debounce time.Duration
	done     chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a watcher; debounce <= 0 uses DefaultDebounce
func NewWatcher(debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "fsnotify: new watcher")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{fw: fw, debounce: debounce, done: make(chan struct{})}, nil
}

// Watch starts monitoring path. onChange runs once per burst of write, create or
// rename events, after the file has been quiet for the debounce interval.
// Removal is not reported; a reload would only fail until the file comes back
func (w *Watcher) Watch(path string, onChange func(path string)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "fsnotify: %s", path)
	}
	if err := w.fw.Add(filepath.Dir(abs)); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeNotFound, "fsnotify: watch %s", filepath.Dir(abs))
	}

	log := logger.Named("watcher")
	log.Info().Str("path", abs).Dur("debounce", w.debounce).Msg("watching pattern file")

	go func() {
		var (
			tmu   sync.Mutex
			timer *time.Timer
		)
		defer func() {
			tmu.Lock()
			if timer != nil {
				timer.Stop()
			}
			tmu.Unlock()
		}()

		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				log.Debug().Str("op", event.Op.String()).Msg("pattern file event")

				tmu.Lock()
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(w.debounce, func() {
					select {
					case <-w.done:
					default:
						onChange(abs)
					}
				})
				tmu.Unlock()

			case err, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("watch error")

			case <-w.done:
				return
			}
		}
	}()
	return nil
}

// Stop ends monitoring and releases all resources. Safe to call multiple times
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return perr.WrapIf(w.fw.Close(), perr.ErrorCodeUnavailable, "fsnotify: close")
}
