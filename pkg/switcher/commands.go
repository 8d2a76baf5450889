package switcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/macropower/hop/pkg/log"
	"github.com/macropower/hop/pkg/open"
	"github.com/macropower/hop/pkg/rule"
	"github.com/macropower/hop/pkg/ui/picker"
)

// Commands are the user-facing operations, combining an [Engine] with an
// [open.Opener] and a [picker.Picker].
type Commands struct {
	engine  *Engine
	opener  open.Opener
	picker  picker.Picker
	workDir string
	filter  string
}

// CommandsOpt configures [Commands].
type CommandsOpt func(c *Commands)

// WithOpener sets how the chosen file is delivered.
func WithOpener(o open.Opener) CommandsOpt {
	return func(c *Commands) {
		c.opener = o
	}
}

// WithPicker sets the selection UI.
func WithPicker(p picker.Picker) CommandsOpt {
	return func(c *Commands) {
		c.picker = p
	}
}

// WithWorkDir sets where git rules look up the repository.
func WithWorkDir(dir string) CommandsOpt {
	return func(c *Commands) {
		c.workDir = dir
	}
}

// WithFilter narrows the entries handed to the picker with a fuzzy query.
func WithFilter(query string) CommandsOpt {
	return func(c *Commands) {
		c.filter = query
	}
}

// NewCommands creates [Commands] for engine.
func NewCommands(engine *Engine, opts ...CommandsOpt) *Commands {
	c := &Commands{engine: engine}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SwitchByRule opens the file after file in the cycle of the matched rule.
// It reports whether a file was opened; failures are logged.
func (c *Commands) SwitchByRule(ctx context.Context, file string, kind rule.Kind, project string) bool {
	logger := log.WithContext(ctx)

	res, err := c.engine.Next(ctx, Request{
		File:    file,
		Kind:    kind,
		Project: project,
		WorkDir: c.workDir,
	})
	if err != nil {
		logger.ErrorContext(ctx, "switch failed",
			slog.String("file", file),
			slog.String("kind", string(kind)),
			slog.String("project", project),
			slog.Any("err", err),
		)

		return false
	}

	if c.opener == nil {
		logger.ErrorContext(ctx, "no opener configured")

		return false
	}

	err = c.opener.Open(ctx, res.Path)
	if err != nil {
		logger.ErrorContext(ctx, "open failed",
			slog.String("path", res.Path),
			slog.Any("err", err),
		)

		return false
	}

	return true
}

// SelectSwitchRule hands the matched file rule's entries to the picker and
// opens the picked path, if any. It returns the entries that were offered.
func (c *Commands) SelectSwitchRule(ctx context.Context, file, project string) ([]rule.Entry, error) {
	matched, entries, err := c.engine.Candidates(ctx, file, project)
	if err != nil {
		return nil, err
	}

	entries = picker.Filter(entries, c.filter)
	if c.picker == nil || len(entries) == 0 {
		return entries, nil
	}

	title := "Related files"
	if matched.Project != "" {
		title = fmt.Sprintf("Related files (%s)", matched.Project)
	}

	choice, ok, err := c.picker.Pick(ctx, title, entries)
	if err != nil {
		return entries, fmt.Errorf("pick file: %w", err)
	}

	if !ok || c.opener == nil {
		return entries, nil
	}

	err = c.opener.Open(ctx, choice.Path)
	if err != nil {
		return entries, fmt.Errorf("open %s: %w", choice.Path, err)
	}

	return entries, nil
}

// SaveSwitchRule records file under project and persists the configuration.
func (c *Commands) SaveSwitchRule(ctx context.Context, file, project string) error {
	_, err := c.engine.Save(ctx, file, project)
	if err != nil {
		return fmt.Errorf("save %s to project %q: %w", file, project, err)
	}

	log.WithContext(ctx).InfoContext(ctx, "saved rule",
		slog.String("file", file),
		slog.String("project", project),
		slog.String("config", c.engine.ConfigPath()),
	)

	return nil
}

// OpenSwitchRule returns the location of the configuration file.
func (c *Commands) OpenSwitchRule() string {
	return c.engine.ConfigPath()
}
