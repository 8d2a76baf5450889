package open

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/mattn/go-shellwords"

	"github.com/macropower/hop/pkg/log"
)

// ErrNoEditor is returned when neither $VISUAL nor $EDITOR is set.
var ErrNoEditor = errors.New("no editor configured, set $VISUAL or $EDITOR")

// Editor opens paths with the user's editor, attached to the terminal.
type Editor struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	getenv  func(string) string
	command string
}

// EditorOpt configures an [Editor].
type EditorOpt func(e *Editor)

// WithCommand sets the editor command line, overriding the environment.
func WithCommand(command string) EditorOpt {
	return func(e *Editor) {
		e.command = command
	}
}

// WithOutput sets the editor's stdout.
func WithOutput(w io.Writer) EditorOpt {
	return func(e *Editor) {
		e.stdout = w
	}
}

// WithGetenv sets the environment lookup used to find the editor.
func WithGetenv(getenv func(string) string) EditorOpt {
	return func(e *Editor) {
		e.getenv = getenv
	}
}

// NewEditor creates a new [Editor].
func NewEditor(opts ...EditorOpt) *Editor {
	e := &Editor{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		getenv: os.Getenv,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Args returns the command line that opens path.
func (e *Editor) Args(path string) ([]string, error) {
	command := e.command
	if command == "" {
		command = e.getenv("VISUAL")
	}

	if command == "" {
		command = e.getenv("EDITOR")
	}

	if command == "" {
		return nil, ErrNoEditor
	}

	args, err := shellwords.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse editor command %q: %w", command, err)
	}

	if len(args) == 0 {
		return nil, ErrNoEditor
	}

	return append(args, path), nil
}

// Open implements [Opener].
func (e *Editor) Open(ctx context.Context, path string) error {
	args, err := e.Args(path)
	if err != nil {
		return err
	}

	log.WithContext(ctx).DebugContext(ctx, "open editor",
		slog.Any("args", args),
	)

	//nolint:gosec // G204: Subprocess launched with a potential tainted input or cmd arguments.
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	err = cmd.Run()
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	return nil
}
