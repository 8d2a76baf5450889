package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/macropower/hop/pkg/execs"
	"github.com/macropower/hop/pkg/log"
)

// CommandLister is a [Lister] that runs the git binary.
type CommandLister struct {
	baseEnv []string
	binary  string
}

// ListerOpt configures a [CommandLister].
type ListerOpt func(l *CommandLister)

// WithBinary sets the git executable. The default is "git" from $PATH.
func WithBinary(binary string) ListerOpt {
	return func(l *CommandLister) {
		l.binary = binary
	}
}

// WithBaseEnv sets the environment git inherits essential variables from.
// The default is [os.Environ].
func WithBaseEnv(env []string) ListerOpt {
	return func(l *CommandLister) {
		l.baseEnv = env
	}
}

// NewCommandLister creates a new [CommandLister].
func NewCommandLister(opts ...ListerOpt) *CommandLister {
	l := &CommandLister{
		binary:  "git",
		baseEnv: os.Environ(),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// List finds the repository containing dir and lists its tracked files.
func (l *CommandLister) List(ctx context.Context, dir string) (*Index, error) {
	logger := log.WithContext(ctx)

	res, err := l.run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRepositoryUnavailable, dir, err)
	}

	root := filepath.Clean(strings.TrimSpace(res.Stdout))
	if root == "." || root == "" {
		return nil, fmt.Errorf("%w: %s: empty repository root", ErrRepositoryUnavailable, dir)
	}

	res, err = l.run(ctx, root, "ls-files", "-z")
	if err != nil {
		return nil, fmt.Errorf("%w: list files in %s: %w", ErrRepositoryUnavailable, root, err)
	}

	idx := &Index{
		Root:  root,
		Files: splitNUL(res.Stdout),
	}

	logger.DebugContext(ctx, "listed tracked files",
		slog.String("root", root),
		slog.Int("count", len(idx.Files)),
	)

	return idx, nil
}

func (l *CommandLister) run(ctx context.Context, dir string, args ...string) (*execs.Result, error) {
	cmd := execs.NewCommand(l.baseEnv, l.binary, args...)
	cmd.AddEnvVar(execs.EnvVar{Name: "GIT_TERMINAL_PROMPT", Value: "0"})
	cmd.AddEnvVar(execs.EnvVar{Name: "LC_ALL", Value: "C"})

	res, err := execs.NewExecutor(cmd).Exec(ctx, dir)
	if err != nil {
		if res != nil && res.Stderr != "" {
			err = fmt.Errorf("%w: %s", err, strings.TrimSpace(res.Stderr))
		}

		return nil, err
	}

	return res, nil
}

func splitNUL(s string) []string {
	files := []string{}

	for f := range strings.SplitSeq(s, "\x00") {
		if f != "" {
			files = append(files, f)
		}
	}

	return files
}

var _ Lister = (*CommandLister)(nil)
