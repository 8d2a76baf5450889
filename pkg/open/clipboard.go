package open

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable is returned when no clipboard utility is found.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard copies the path to the system clipboard.
type Clipboard struct {
	write       func(string) error
	unsupported bool
}

// NewClipboard creates a [Clipboard] backed by the system clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{
		write:       clipboard.WriteAll,
		unsupported: clipboard.Unsupported,
	}
}

// NewClipboardWithWriter creates a [Clipboard] that copies with write.
func NewClipboardWithWriter(write func(string) error) *Clipboard {
	return &Clipboard{write: write}
}

// Open implements [Opener].
func (c *Clipboard) Open(_ context.Context, path string) error {
	if c.unsupported {
		return ErrClipboardUnavailable
	}

	err := c.write(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrClipboardUnavailable, err)
	}

	return nil
}
