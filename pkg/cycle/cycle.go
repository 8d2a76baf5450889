// Package cycle selects the entry that follows the current file in an ordered
// list of related paths, wrapping around at the end.
package cycle

import (
	"errors"
	"strings"
)

// ErrEmpty is returned when selecting from an empty list.
var ErrEmpty = errors.New("empty path list")

// Overlaps reports whether a contains b or b contains a.
//
// Containment rather than equality lets relative templates match absolute
// paths and vice versa.
func Overlaps(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// Index returns the position of the first entry in paths that overlaps
// current, or -1 if there is none.
func Index(paths []string, current string) int {
	for i, p := range paths {
		if Overlaps(p, current) {
			return i
		}
	}

	return -1
}

// Next returns the entry following current in paths.
//
// When current is not found, Index yields -1 and the result is paths[0].
// That fallback comes from feeding the not-found sentinel straight into the
// modulo arithmetic; callers rely on it, so it is kept as-is.
// TODO: Return an explicit not-found outcome once callers can surface it.
func Next(paths []string, current string) (string, error) {
	if len(paths) == 0 {
		return "", ErrEmpty
	}

	i := Index(paths, current)

	return paths[(i+1)%len(paths)], nil
}
