package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/macropower/hop/pkg/log"
)

// Watch loads the configuration and calls fn with the result, then again
// each time the file is written, created, renamed or removed. It blocks until
// ctx is done or the watcher fails.
//
// The parent directory is watched rather than the file itself, since saves
// replace the file.
func (s *Store) Watch(ctx context.Context, fn func(*Config, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	defer func() {
		err := watcher.Close()
		if err != nil {
			slog.DebugContext(ctx, "close watcher", slog.Any("err", err))
		}
	}()

	path := filepath.Clean(s.path)

	err = watcher.Add(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	fn(s.Load(ctx))

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(evt.Name) != path || evt.Has(fsnotify.Chmod) {
				continue
			}

			log.WithContext(ctx).DebugContext(ctx, "config changed", slog.String("event", evt.String()))

			fn(s.Load(ctx))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
}
