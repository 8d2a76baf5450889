// Package template expands rule path templates for the file currently being
// edited.
//
// Two substitutions are supported:
//   - `%` is replaced by the "common part" of the current file's stem, which is
//     the stem with the rule's postfix and prefix removed.
//   - A leading [HomeToken] is replaced by the home directory.
package template

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// Placeholder is replaced by the common part of the current file's stem.
	Placeholder = "%"
	// HomeToken is replaced by the home directory when it leads a template.
	HomeToken = "~"
)

// ErrEmptyFile is returned when a [Context] is requested for an empty path.
var ErrEmptyFile = errors.New("empty file path")

// Context describes the file a request was issued for.
// It is built once per request and passed explicitly to every resolver.
type Context struct {
	// FileName is the base name of the file, e.g. "fooTest.ts".
	FileName string
	// FileStem is the base name without its final extension, e.g. "fooTest".
	FileStem string
	// RealPath is the absolute path of the file, with symlinks evaluated when
	// the file exists.
	RealPath string
	// HomeDir replaces [HomeToken].
	HomeDir string
}

// NewContext creates a [Context] for the given file and home directory.
func NewContext(file, home string) (Context, error) {
	if file == "" {
		return Context{}, ErrEmptyFile
	}

	absPath, err := filepath.Abs(file)
	if err != nil {
		return Context{}, fmt.Errorf("resolve absolute path: %w", err)
	}

	realPath := absPath

	evalPath, err := filepath.EvalSymlinks(absPath)
	if err == nil {
		realPath = evalPath
	} else if !errors.Is(err, os.ErrNotExist) {
		return Context{}, fmt.Errorf("evaluate symlinks: %w", err)
	}

	name := filepath.Base(realPath)

	return Context{
		FileName: name,
		FileStem: strings.TrimSuffix(name, filepath.Ext(name)),
		RealPath: realPath,
		HomeDir:  home,
	}, nil
}

// CommonPart strips postfix from the end of stem, then prefix from the start.
// Each affix is stripped at most once, and an empty affix is ignored.
func CommonPart(stem, prefix, postfix string) string {
	common := stem
	if postfix != "" {
		common = strings.TrimSuffix(common, postfix)
	}
	if prefix != "" {
		common = strings.TrimPrefix(common, prefix)
	}

	return common
}

// Resolve expands tmpl for ctx, using prefix and postfix to compute the
// common part of the stem.
//
// Only the first [Placeholder] is replaced. The substitution must be applied
// to the template, never to a previously resolved value.
//
// A leading [HomeToken] is expanded from the template itself, so a stem that
// begins with the token is inserted literally.
func Resolve(tmpl string, ctx Context, prefix, postfix string) string {
	out := ExpandHome(tmpl, ctx.HomeDir)
	if strings.Contains(out, Placeholder) {
		out = strings.Replace(out, Placeholder, CommonPart(ctx.FileStem, prefix, postfix), 1)
	}

	return out
}

// ExpandHome replaces a leading [HomeToken] with home. The token only counts
// when it is the entire path or is followed by a path separator, so "~user"
// and "a/~" are left alone. An empty home leaves the path unchanged.
func ExpandHome(path, home string) string {
	if home == "" || !strings.HasPrefix(path, HomeToken) {
		return path
	}

	rest := path[len(HomeToken):]
	if rest == "" {
		return home
	}
	if rest[0] != '/' && rest[0] != filepath.Separator {
		return path
	}

	return strings.TrimRight(home, "/"+string(filepath.Separator)) + rest
}
