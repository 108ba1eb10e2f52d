package posts

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch calls fn with the base name of the last changed file whenever the
// content directory changes. Bursts of events within the debounce window
// collapse into one call. Watch blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, fn func(name string)) error {
	if s.dir == "" {
		return errors.New("posts: watch needs a directory-backed store")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(s.dir); err != nil {
		return unavailable(s.dir, err)
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
		last  string
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
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			last = filepath.Base(ev.Name)
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("content watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			fn(last)
		}
	}
}
