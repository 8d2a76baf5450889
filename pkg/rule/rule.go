package rule

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/macropower/hop/pkg/expr"
)

// Kind selects how a rule's templates are turned into file paths.
type Kind string

const (
	// KindFile rules list paths directly.
	KindFile Kind = "file"
	// KindGit rules list name templates that are resolved against the files
	// tracked by the repository.
	KindGit Kind = "git"
)

var (
	// ErrUnknownKind is returned for a kind other than [KindFile] or [KindGit].
	ErrUnknownKind = errors.New("unknown rule kind")

	// AllKinds lists every valid [Kind].
	AllKinds = []string{string(KindFile), string(KindGit)}

	guardEnv = sync.OnceValues(func() (*expr.Environment, error) {
		return expr.NewEnvironment()
	})
)

// ParseKind parses a [Kind]. An empty string is parsed as [KindFile].
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "", KindFile:
		return KindFile, nil
	case KindGit:
		return KindGit, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Rule is an ordered list of path templates.
//
// Templates may contain `%`, replaced by the current file's stem with Prefix
// and Postfix removed, and a leading `~`, replaced by the home directory.
//
// When is an optional CEL guard; a rule whose guard is false is ignored for
// that request. Guards have access to variables:
//   - `file` (string): The real path of the current file
//   - `name` (string): The base name of the current file
//   - `stem` (string): The base name without its extension
//   - `project` (string): The name of the project declaring the rule
type Rule struct {
	whenProgram cel.Program // Compiled guard, nil when When is empty.

	// Kind is the kind of rule, either "file" or "git".
	Kind Kind `json:"rule" jsonschema:"title=Rule Kind,enum=file,enum=git"`
	// Path is the ordered list of templates to cycle through.
	Path []string `json:"path" jsonschema:"title=Path Templates"`
	// Prefix is stripped from the start of the file stem.
	Prefix string `json:"prefix,omitempty" jsonschema:"title=Prefix"`
	// Postfix is stripped from the end of the file stem.
	Postfix string `json:"postfix,omitempty" jsonschema:"title=Postfix"`
	// When is a CEL expression that must be true for the rule to apply.
	When string `json:"when,omitempty" jsonschema:"title=When Expression"`
}

// New creates a new [Rule] with the given kind and path templates.
func New(kind Kind, paths ...string) *Rule {
	return &Rule{
		Kind: kind,
		Path: paths,
	}
}

// Validate checks the rule kind and compiles its guard.
func (r *Rule) Validate() error {
	if _, err := ParseKind(string(r.Kind)); err != nil {
		return err
	}

	return r.CompileWhen()
}

// CompileWhen compiles the rule's guard into a CEL program.
func (r *Rule) CompileWhen() error {
	if r.When == "" || r.whenProgram != nil {
		return nil
	}

	env, err := guardEnv()
	if err != nil {
		return fmt.Errorf("create CEL environment: %w", err)
	}

	program, err := env.Compile(r.When)
	if err != nil {
		return fmt.Errorf("when %q: %w", r.When, err)
	}

	r.whenProgram = program

	return nil
}

// Applies reports whether the rule's guard allows it for vars.
// Rules without a guard always apply. Evaluation errors count as false.
func (r *Rule) Applies(vars expr.Variables) bool {
	if r.When == "" {
		return true
	}

	err := r.CompileWhen()
	if err != nil {
		slog.Debug("rule guard does not compile, skipping rule",
			slog.String("when", r.When),
			slog.Any("err", err),
		)

		return false
	}

	ok, err := expr.Eval(r.whenProgram, vars)
	if err != nil {
		slog.Debug("rule guard failed, skipping rule",
			slog.String("when", r.When),
			slog.Any("err", err),
		)

		return false
	}

	return ok
}

// Contains reports whether path is already one of the rule's templates.
func (r *Rule) Contains(path string) bool {
	return slices.Contains(r.Path, path)
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s: %v", r.Kind, r.Path)
}
