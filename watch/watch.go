// Package watch follows a placement file written by the capture tool and
// asks for a suggestion every time it changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"klondike/engine"
	"klondike/placement"
	"klondike/searcher"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Handler receives each suggestion together with the placement it answers.
type Handler func(in placement.Input, s searcher.Suggestion)

type Option func(w *Watcher)

// WithDebounce waits d after the last write before reading the file, so a
// file written in several chunks is read once.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

func WithSession(s *engine.Session) Option {
	return func(w *Watcher) {
		w.session = s
	}
}

type Watcher struct {
	path     string
	handler  Handler
	session  *engine.Session
	debounce time.Duration
}

func New(path string, handler Handler, options ...Option) *Watcher {
	w := &Watcher{
		path:     filepath.Clean(path),
		handler:  handler,
		debounce: 100 * time.Millisecond,
	}
	for _, option := range options {
		option(w)
	}
	if w.session == nil {
		w.session = engine.NewSession()
	}
	return w
}

// Process reads the placement file once and passes the suggestion to the
// handler. Writing the same position again yields the next move.
func (w *Watcher) Process() error {
	in, err := placement.ReadFile(w.path)
	if err != nil {
		return err
	}
	s, err := w.session.Suggest(in)
	if err != nil {
		return fmt.Errorf("%s: %w", w.path, err)
	}
	if w.handler != nil {
		w.handler(in, s)
	}
	return nil
}

// Run watches the file's directory until ctx is cancelled. The directory is
// watched rather than the file so that editors and capture tools replacing
// the file are still seen.
func (w *Watcher) Run(ctx context.Context) (err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	log.Info().Msgf("watching %s", w.path)

	var (
		timer *time.Timer
		fire  <-chan time.Time
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
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := w.Process(); err != nil {
				log.Warn().Err(err).Msg("placement skipped")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("file watcher error")
		}
	}
}
