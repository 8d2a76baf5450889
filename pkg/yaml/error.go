package yaml

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/printer"
	"github.com/goccy/go-yaml/token"
)

// NewPathBuilder returns an empty [yaml.PathBuilder].
func NewPathBuilder() *yaml.PathBuilder {
	return &yaml.PathBuilder{}
}

// Error is a YAML error. It holds the underlying error and, when known, the
// path or token where it occurred, plus the source it came from.
type Error struct {
	Err     error
	Path    *yaml.Path
	Token   *token.Token
	Source  []byte
	Colored bool
}

// ErrorOpt configures an [Error].
type ErrorOpt func(e *Error)

// NewError creates a new [Error] wrapping err.
func NewError(err error, opts ...ErrorOpt) *Error {
	e := &Error{Err: err}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

func WithPath(path *yaml.Path) ErrorOpt {
	return func(e *Error) {
		e.Path = path
	}
}

func WithToken(tk *token.Token) ErrorOpt {
	return func(e *Error) {
		e.Token = tk
	}
}

func WithSource(source []byte) ErrorOpt {
	return func(e *Error) {
		e.Source = source
	}
}

// WithColor enables ANSI colors in annotated source.
func WithColor(colored bool) ErrorOpt {
	return func(e *Error) {
		e.Colored = colored
	}
}

// Annotate sets source and color on err if it is an [*Error], and returns it.
// Other errors are returned unmodified.
func Annotate(err error, source []byte, colored bool) error {
	var yamlErr *Error
	if !errors.As(err, &yamlErr) {
		return err
	}

	if yamlErr.Source == nil {
		yamlErr.Source = source
	}

	yamlErr.Colored = colored

	return err
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	if e.Err == nil {
		return ""
	}

	switch {
	case e.Token != nil:
		var pp printer.Printer

		pos := e.Token.Position

		return fmt.Sprintf("[%d:%d] %v\n%s", pos.Line, pos.Column, e.Err,
			pp.PrintErrorToken(e.Token, e.Colored))

	case e.Path != nil && len(e.Source) > 0:
		src, err := e.Path.AnnotateSource(e.Source, e.Colored)
		if err != nil {
			return fmt.Sprintf("error at %s: %v", e.Path, e.Err)
		}

		return fmt.Sprintf("error at %s: %v\n%s", e.Path, e.Err, src)

	case e.Path != nil:
		return fmt.Sprintf("error at %s: %v", e.Path, e.Err)
	}

	return e.Err.Error()
}
