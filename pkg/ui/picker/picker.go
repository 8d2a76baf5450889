// Package picker lets the user choose one of a rule's resolved paths.
package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/macropower/hop/pkg/rule"
)

// ErrNotInteractive is returned by [Form] when stdin is not a terminal.
var ErrNotInteractive = errors.New("not an interactive terminal")

// Picker presents entries and returns the chosen one. ok is false when the
// user made no choice.
type Picker interface {
	Pick(ctx context.Context, title string, entries []rule.Entry) (choice rule.Entry, ok bool, err error)
}

// Filter returns the entries whose paths fuzzy-match query, best match
// first. An empty query returns entries unchanged.
func Filter(entries []rule.Entry, query string) []rule.Entry {
	if query == "" {
		return entries
	}

	targets := make([]string, 0, len(entries))
	for _, e := range entries {
		targets = append(targets, e.Path)
	}

	ranks := fuzzy.Find(query, targets)
	sort.Stable(ranks)

	filtered := make([]rule.Entry, 0, len(ranks))
	for _, r := range ranks {
		filtered = append(filtered, entries[r.Index])
	}

	return filtered
}

// Printer lists entries as `index<TAB>label<TAB>path` lines and never
// returns a choice.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a [Printer] writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Pick implements [Picker].
func (p *Printer) Pick(_ context.Context, _ string, entries []rule.Entry) (rule.Entry, bool, error) {
	for _, e := range entries {
		_, err := fmt.Fprintf(p.w, "%d\t%s\t%s\n", e.Index, e.Label, e.Path)
		if err != nil {
			return rule.Entry{}, false, fmt.Errorf("print entry: %w", err)
		}
	}

	return rule.Entry{}, false, nil
}
