package rule

import (
	"errors"
	"fmt"
	"slices"

	"github.com/macropower/hop/pkg/cycle"
)

var (
	// ErrNoMatchingRule is returned when no rule applies to a request.
	ErrNoMatchingRule = errors.New("no matching rule")

	// ErrInvalidRule is returned when a matched rule cannot be used, e.g.
	// because its path list is empty.
	ErrInvalidRule = errors.New("invalid rule")
)

// Match selects the rule that applies to currentFile.
//
// For [KindFile], a rule declared by the project called name wins. Names are
// compared exactly, so an empty name selects rules of unnamed projects.
// Otherwise the first rule with a path overlapping currentFile is used.
//
// For [KindGit], the first rule of that kind is used and name is ignored.
//
// Rules are scanned in declaration order and the first match wins.
func Match(resolved []*Resolved, currentFile string, kind Kind, name string) (*Resolved, error) {
	var found *Resolved

	switch kind {
	case KindFile:
		found = matchFile(resolved, currentFile, name)
	case KindGit:
		found = firstOfKind(resolved, KindGit)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	if found == nil {
		return nil, fmt.Errorf("%w: kind %q, project %q, file %q", ErrNoMatchingRule, kind, name, currentFile)
	}

	return found, nil
}

func matchFile(resolved []*Resolved, currentFile, name string) *Resolved {
	for _, r := range resolved {
		if r.Kind == KindFile && r.Project == name {
			return r
		}
	}

	for _, r := range resolved {
		if r.Kind != KindFile {
			continue
		}

		if slices.ContainsFunc(r.Paths, func(p string) bool {
			return cycle.Overlaps(p, currentFile)
		}) {
			return r
		}
	}

	return nil
}

func firstOfKind(resolved []*Resolved, kind Kind) *Resolved {
	for _, r := range resolved {
		if r.Kind == kind {
			return r
		}
	}

	return nil
}
