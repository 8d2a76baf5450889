package rule

import (
	"fmt"
	"path/filepath"

	"github.com/macropower/hop/pkg/cycle"
	"github.com/macropower/hop/pkg/expr"
	"github.com/macropower/hop/pkg/template"
)

// Resolved is a [Rule] whose templates were expanded for one request.
// It is never persisted.
type Resolved struct {
	// Rule is the rule the paths were resolved from.
	Rule *Rule
	// Project is the name of the project declaring the rule.
	Project string
	// Kind is the kind of the rule.
	Kind Kind
	// Paths holds the expanded templates, in declaration order.
	Paths []string
}

// Entry is a single resolved path, as shown by a selection UI.
type Entry struct {
	Label   string `json:"label"`
	Path    string `json:"path"`
	Index   int    `json:"index"`
	Current bool   `json:"current,omitempty"`
}

// Resolve expands every template of r for ctx. Each template is expanded
// exactly once.
func Resolve(project string, r *Rule, ctx template.Context) *Resolved {
	paths := make([]string, 0, len(r.Path))
	for _, tmpl := range r.Path {
		paths = append(paths, template.Resolve(tmpl, ctx, r.Prefix, r.Postfix))
	}

	return &Resolved{
		Rule:    r,
		Project: project,
		Kind:    r.Kind,
		Paths:   paths,
	}
}

// GuardVariables returns the guard inputs for a rule declared by project.
func GuardVariables(project string, ctx template.Context) expr.Variables {
	return expr.Variables{
		File:    ctx.RealPath,
		Name:    ctx.FileName,
		Stem:    ctx.FileStem,
		Project: project,
	}
}

// Next returns the path following current in the rule's cycle.
// See [cycle.Next] for the behavior when current is not part of the cycle.
func (r *Resolved) Next(current string) (string, error) {
	next, err := cycle.Next(r.Paths, current)
	if err != nil {
		return "", fmt.Errorf("%w: project %q: %w", ErrInvalidRule, r.Project, err)
	}

	return next, nil
}

// Entries lists the resolved paths, marking the one that matches current.
func (r *Resolved) Entries(current string) []Entry {
	currentIdx := cycle.Index(r.Paths, current)

	entries := make([]Entry, 0, len(r.Paths))
	for i, p := range r.Paths {
		entries = append(entries, Entry{
			Index:   i,
			Label:   filepath.Base(p),
			Path:    p,
			Current: i == currentIdx,
		})
	}

	return entries
}
