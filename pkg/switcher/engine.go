// Package switcher answers navigation requests: given the current file, it
// finds the applicable rule and the next related file.
//
// Every request loads the configuration afresh, expands the rules for the
// current file, matches one rule, and steps through its cycle. For git rules
// the chosen name is then looked up in the repository's tracked files.
package switcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/hop/pkg/config"
	"github.com/macropower/hop/pkg/git"
	"github.com/macropower/hop/pkg/log"
	"github.com/macropower/hop/pkg/rule"
	"github.com/macropower/hop/pkg/template"
)

// Store loads and saves the rule configuration.
type Store interface {
	Load(ctx context.Context) (*config.Config, error)
	Save(ctx context.Context, cfg *config.Config) error
	Path() string
}

// Request describes one navigation request.
type Request struct {
	// File is the current file. Relative paths are resolved against the
	// working directory of the process.
	File string
	// Kind selects file or git rules. Empty means [rule.KindFile].
	Kind rule.Kind
	// Project optionally names the project whose rule should be used.
	Project string
	// WorkDir is where the repository is looked up for git rules. Empty
	// means the directory containing File.
	WorkDir string
}

// Result is the outcome of a navigation request.
type Result struct {
	// Rule is the matched rule.
	Rule *rule.Resolved
	// Path is the file to switch to.
	Path string
	// Template is the cycle entry Path was derived from. For file rules it
	// equals Path.
	Template string
}

// Engine runs navigation and save requests.
type Engine struct {
	store  Store
	lister git.Lister
	tracer trace.Tracer
	home   string
}

// EngineOpt configures an [Engine].
type EngineOpt func(e *Engine)

// WithStore sets the configuration store.
func WithStore(s Store) EngineOpt {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLister sets the tracked-file lister used by git rules.
func WithLister(l git.Lister) EngineOpt {
	return func(e *Engine) {
		e.lister = l
	}
}

// WithHome sets the directory substituted for `~` in templates.
func WithHome(home string) EngineOpt {
	return func(e *Engine) {
		e.home = home
	}
}

// NewEngine creates a new [Engine]. By default it uses the configuration at
// the standard location, the git binary, and the user's home directory.
func NewEngine(opts ...EngineOpt) *Engine {
	e := &Engine{
		tracer: otel.Tracer("switcher"),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.store == nil {
		e.store = config.NewStore("")
	}

	if e.lister == nil {
		e.lister = git.NewCommandLister()
	}

	if e.home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Debug("could not determine home directory", slog.Any("err", err))
		}

		e.home = home
	}

	return e
}

// ConfigPath returns the location of the configuration file.
func (e *Engine) ConfigPath() string {
	return e.store.Path()
}

// Next returns the file following req.File in the matched rule's cycle.
func (e *Engine) Next(ctx context.Context, req Request) (*Result, error) {
	kind, err := rule.ParseKind(string(req.Kind))
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped.
	}

	ctx, span := e.tracer.Start(ctx, "next", trace.WithAttributes(
		attribute.String("file", req.File),
		attribute.String("kind", string(kind)),
		attribute.String("project", req.Project),
	))
	defer span.End()

	res, err := e.next(ctx, req, kind)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "no next file")

		return nil, err
	}

	span.SetAttributes(attribute.String("next", res.Path))

	return res, nil
}

func (e *Engine) next(ctx context.Context, req Request, kind rule.Kind) (*Result, error) {
	logger := log.WithContext(ctx)

	tctx, resolved, err := e.resolve(ctx, req.File)
	if err != nil {
		return nil, err
	}

	current := tctx.RealPath
	if kind == rule.KindGit {
		current = tctx.FileName
	}

	matched, err := rule.Match(resolved, current, kind, req.Project)
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped.
	}

	next, err := matched.Next(current)
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped.
	}

	logger.DebugContext(ctx, "matched rule",
		slog.String("project", matched.Project),
		slog.String("rule", matched.Rule.String()),
		slog.String("next", next),
	)

	if kind == rule.KindFile {
		return &Result{Rule: matched, Path: next, Template: next}, nil
	}

	dir := req.WorkDir
	if dir == "" {
		dir = filepath.Dir(tctx.RealPath)
	}

	idx, err := e.lister.List(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("list tracked files: %w", err)
	}

	path, err := git.Resolve(next, idx)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", next, err)
	}

	return &Result{Rule: matched, Path: path, Template: next}, nil
}

// Candidates returns the file rule matched for file and project, with its
// resolved paths as selectable entries.
func (e *Engine) Candidates(ctx context.Context, file, project string) (*rule.Resolved, []rule.Entry, error) {
	tctx, resolved, err := e.resolve(ctx, file)
	if err != nil {
		return nil, nil, err
	}

	matched, err := rule.Match(resolved, tctx.RealPath, rule.KindFile, project)
	if err != nil {
		return nil, nil, err //nolint:wrapcheck // Already wrapped.
	}

	if len(matched.Paths) == 0 {
		return nil, nil, fmt.Errorf("%w: project %q has an empty path list", rule.ErrInvalidRule, matched.Project)
	}

	return matched, matched.Entries(tctx.RealPath), nil
}

// Plan loads the configuration and returns it together with a copy that has
// file recorded under project, without saving anything. A missing
// configuration is treated as empty.
func (e *Engine) Plan(ctx context.Context, file, project string) (before, after *config.Config, err error) {
	tctx, err := template.NewContext(file, e.home)
	if err != nil {
		return nil, nil, fmt.Errorf("current file: %w", err)
	}

	before, err = e.store.Load(ctx)
	if errors.Is(err, config.ErrConfigNotFound) {
		log.WithContext(ctx).InfoContext(ctx, "no configuration found, creating one",
			slog.String("path", e.store.Path()),
		)

		before = config.NewConfig()
	} else if err != nil {
		return nil, nil, err //nolint:wrapcheck // Already wrapped.
	}

	return before, config.AddRuleEntry(before.Clone(), project, tctx.RealPath), nil
}

// Save records file under project and persists the configuration.
func (e *Engine) Save(ctx context.Context, file, project string) (*config.Config, error) {
	_, cfg, err := e.Plan(ctx, file, project)
	if err != nil {
		return nil, err
	}

	err = e.store.Save(ctx, cfg)
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped.
	}

	return cfg, nil
}

func (e *Engine) resolve(ctx context.Context, file string) (template.Context, []*rule.Resolved, error) {
	tctx, err := template.NewContext(file, e.home)
	if err != nil {
		return template.Context{}, nil, fmt.Errorf("current file: %w", err)
	}

	cfg, err := e.store.Load(ctx)
	if err != nil {
		return template.Context{}, nil, err //nolint:wrapcheck // Already wrapped.
	}

	return tctx, cfg.Resolve(tctx), nil
}
