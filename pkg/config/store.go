package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/macropower/hop/api"
	"github.com/macropower/hop/pkg/log"
)

// DefaultFileName is the configuration file name inside hop's config
// directory.
const DefaultFileName = "rules.yaml"

// ErrPersistenceWriteFailed is returned when the configuration cannot be
// written back to disk.
var ErrPersistenceWriteFailed = errors.New("write configuration")

// Store reads and writes the configuration file at a fixed path.
type Store struct {
	path       string
	loaderOpts []LoaderOpt
}

// NewStore creates a [Store] for path. An empty path selects the default
// location from [api.GetConfigPath]. The options are passed to the [Loader]
// used by [Store.Load].
func NewStore(path string, opts ...LoaderOpt) *Store {
	if path == "" {
		path = api.GetConfigPath(DefaultFileName)
	}

	return &Store{path: path, loaderOpts: opts}
}

// Path returns the location of the configuration file.
func (s *Store) Path() string {
	return s.path
}

// Load reads and validates the configuration file.
func (s *Store) Load(ctx context.Context) (*Config, error) {
	log.WithContext(ctx).DebugContext(ctx, "load config", slog.String("path", s.path))

	l, err := NewLoaderFromFile(s.path, s.loaderOpts...)
	if err != nil {
		return nil, err
	}

	return l.Load()
}

// Save replaces the configuration file with cfg.
func (s *Store) Save(ctx context.Context, cfg *Config) error {
	log.WithContext(ctx).DebugContext(ctx, "save config", slog.String("path", s.path))

	data, err := cfg.MarshalYAML()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceWriteFailed, err)
	}

	err = api.WriteFile(s.path, data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPersistenceWriteFailed, s.path, err)
	}

	return nil
}

// WriteDefault writes the default configuration unless a file exists.
// With force, an existing file is backed up and replaced.
func (s *Store) WriteDefault(force bool) (bool, error) {
	written, err := api.WriteDefaultFile(s.path, DefaultYAML(), force)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrPersistenceWriteFailed, err)
	}

	return written, nil
}
