package expr

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// Protect CEL environment creation and compilation from concurrent access.
var celMutex sync.Mutex

// ErrNotBool is returned when an expression does not evaluate to a boolean.
var ErrNotBool = errors.New("expression did not return a boolean")

// Variables are the inputs made available to guard expressions.
type Variables struct {
	File    string
	Name    string
	Stem    string
	Project string
}

func (v Variables) activation() map[string]any {
	return map[string]any{
		"file":    v.File,
		"name":    v.Name,
		"stem":    v.Stem,
		"project": v.Project,
	}
}

// Environment provides a thread-safe wrapper around a [*cel.Env].
type Environment struct {
	env *cel.Env
}

// NewEnvironment creates a new [Environment].
func NewEnvironment(opts ...cel.EnvOption) (*Environment, error) {
	env, err := createEnvironment(opts...)
	if err != nil {
		return nil, err
	}

	return &Environment{env: env}, nil
}

// MustNewEnvironment creates a new [Environment] and panics on error.
func MustNewEnvironment(opts ...cel.EnvOption) *Environment {
	env, err := NewEnvironment(opts...)
	if err != nil {
		panic(err)
	}

	return env
}

func createEnvironment(opts ...cel.EnvOption) (*cel.Env, error) {
	celMutex.Lock()
	defer celMutex.Unlock()

	opts = append(opts,
		cel.Variable("file", cel.StringType),
		cel.Variable("name", cel.StringType),
		cel.Variable("stem", cel.StringType),
		cel.Variable("project", cel.StringType),
		cel.Lib(&lib{}),
	)

	celEnv, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	return celEnv, nil
}

// Compile compiles a CEL expression and returns a program.
// The expression must have a boolean output type.
//
//nolint:ireturn // Following CEL's function signature.
func (e *Environment) Compile(expression string) (cel.Program, error) {
	celMutex.Lock()
	defer celMutex.Unlock()

	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile expression: %w", issues.Err())
	}

	if !ast.OutputType().IsExactType(cel.BoolType) && !ast.OutputType().IsExactType(cel.DynType) {
		return nil, fmt.Errorf("%w: got %s", ErrNotBool, ast.OutputType())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}

	return program, nil
}

// Eval evaluates a compiled program against vars.
func Eval(program cel.Program, vars Variables) (bool, error) {
	result, _, err := program.Eval(vars.activation())
	if err != nil {
		return false, fmt.Errorf("evaluate expression: %w", err)
	}

	b, ok := result.Value().(bool)
	if !ok {
		return false, ErrNotBool
	}

	return b, nil
}
