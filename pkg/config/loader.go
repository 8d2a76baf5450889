package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/macropower/hop/api"
	"github.com/macropower/hop/pkg/yaml"
)

var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration not found")
	// ErrConfigMalformed is returned when the configuration cannot be parsed
	// or does not match the schema.
	ErrConfigMalformed = errors.New("configuration malformed")
	// ErrConfigUnreadable is returned when the configuration file exists but
	// cannot be read, e.g. it is a directory or access is denied.
	ErrConfigUnreadable = errors.New("configuration unreadable")
)

// Validator validates decoded configuration data.
type Validator interface {
	Validate(data any) error
}

// LoaderOpt configures a [Loader].
type LoaderOpt func(l *Loader)

// WithValidator replaces the schema validator.
func WithValidator(v Validator) LoaderOpt {
	return func(l *Loader) {
		l.validator = v
	}
}

// WithColor enables colored source annotations in returned errors.
func WithColor(colored bool) LoaderOpt {
	return func(l *Loader) {
		l.colored = colored
	}
}

// Loader parses and validates configuration data.
type Loader struct {
	validator Validator
	data      []byte
	colored   bool
}

// NewLoaderFromBytes creates a [Loader] for data.
func NewLoaderFromBytes(data []byte, opts ...LoaderOpt) *Loader {
	l := &Loader{data: data}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// NewLoaderFromFile creates a [Loader] for the file at path.
// A missing file produces [ErrConfigNotFound]; any other read failure
// produces [ErrConfigUnreadable].
func NewLoaderFromFile(path string, opts ...LoaderOpt) (*Loader, error) {
	data, err := api.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigUnreadable, err)
	}

	return NewLoaderFromBytes(data, opts...), nil
}

// Validate checks the data against the configuration schema.
func (l *Loader) Validate() error {
	if len(bytes.TrimSpace(l.data)) == 0 {
		return fmt.Errorf("%w: empty file", ErrConfigMalformed)
	}

	var anyConfig any

	err := yaml.NewBytesDecoder(l.data).Decode(&anyConfig)
	if err != nil {
		return l.malformed(err)
	}

	validator := l.validator
	if validator == nil {
		validator, err = defaultValidator()
		if err != nil {
			return fmt.Errorf("create validator: %w", err)
		}
	}

	err = validator.Validate(anyConfig)
	if err != nil {
		return l.malformed(err)
	}

	return nil
}

// Load validates and decodes the configuration.
func (l *Loader) Load() (*Config, error) {
	err := l.Validate()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}

	err = yaml.NewBytesDecoder(l.data).Decode(cfg)
	if err != nil {
		return nil, l.malformed(err)
	}

	cfg.EnsureDefaults()

	err = cfg.Validate()
	if err != nil {
		return nil, l.malformed(err)
	}

	return cfg, nil
}

func (l *Loader) malformed(err error) error {
	return fmt.Errorf("%w: %w", ErrConfigMalformed, yaml.Annotate(err, l.data, l.colored))
}
