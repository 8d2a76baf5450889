// Package git resolves file names against the files tracked by a git
// repository.
package git

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTrackedFileNotFound is returned when no tracked file contains the
	// requested name.
	ErrTrackedFileNotFound = errors.New("tracked file not found")
	// ErrRepositoryUnavailable is returned when the tracked files cannot be
	// listed, e.g. outside a repository or without a git binary.
	ErrRepositoryUnavailable = errors.New("repository unavailable")
)

// Index is a snapshot of a repository's tracked files.
type Index struct {
	// Root is the absolute path of the repository's working tree.
	Root string
	// Files are tracked paths relative to Root, in listing order.
	Files []string
}

// Lister lists the files tracked by the repository containing dir.
type Lister interface {
	List(ctx context.Context, dir string) (*Index, error)
}

// Resolve returns the absolute path of the first tracked file whose
// relative path contains name.
func Resolve(name string, idx *Index) (string, error) {
	if idx == nil {
		return "", fmt.Errorf("%w: %q: no index", ErrTrackedFileNotFound, name)
	}

	for _, f := range idx.Files {
		if strings.Contains(f, name) {
			return idx.Root + "/" + f, nil
		}
	}

	return "", fmt.Errorf("%w: %q under %s", ErrTrackedFileNotFound, name, idx.Root)
}
