// Package open hands a selected file path to the user: printed, opened in
// an editor, or copied to the clipboard.
package open

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Method names an [Opener] implementation.
type Method string

const (
	MethodPrint     Method = "print"
	MethodEditor    Method = "editor"
	MethodClipboard Method = "clipboard"
)

var (
	// ErrUnknownMethod is returned by [New] for an unsupported [Method].
	ErrUnknownMethod = errors.New("unknown open method")

	// AllMethods lists every supported [Method].
	AllMethods = []string{string(MethodPrint), string(MethodEditor), string(MethodClipboard)}
)

// Opener delivers a path to the user.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// New returns the [Opener] for method. Printed paths and editor output go to
// w.
func New(method string, w io.Writer) (Opener, error) {
	m := Method(strings.ToLower(method))
	if !slices.Contains(AllMethods, string(m)) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	switch m {
	case MethodEditor:
		return NewEditor(WithOutput(w)), nil
	case MethodClipboard:
		return NewClipboard(), nil
	}

	return NewPrinter(w), nil
}

// Printer writes the path followed by a newline.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a [Printer] writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Open implements [Opener].
func (p *Printer) Open(_ context.Context, path string) error {
	_, err := fmt.Fprintln(p.w, path)
	if err != nil {
		return fmt.Errorf("print path: %w", err)
	}

	return nil
}
