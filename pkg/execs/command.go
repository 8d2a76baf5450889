package execs

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrCommandExecution is returned when command execution fails.
	ErrCommandExecution = errors.New("run")

	// ErrEmptyCommand is returned when a command is empty.
	ErrEmptyCommand = errors.New("empty command")
)

// Essential environment variables are inherited from the base environment.
var essentialVars = []string{"PATH", "HOME", "USER", "TERM", "XDG_CONFIG_HOME", "GIT_DIR", "GIT_WORK_TREE", "GIT_CEILING_DIRECTORIES"}

// Result represents the result of a command execution.
type Result struct {
	Stdout string
	Stderr string
}

// EnvVar represents an environment variable definition.
type EnvVar struct {
	// Name is the environment variable name.
	Name string
	// Value is the environment variable value.
	Value string
}

// Command describes an external command and its environment.
type Command struct {
	baseEnv map[string]string
	// Command is the command to execute.
	Command string
	// Args contains the command line arguments.
	Args []string
	// Env contains environment variables set on top of the essential ones.
	Env []EnvVar
}

// NewCommand creates a new [Command].
// It accepts a base environment, which usually will be from [os.Environ].
func NewCommand(baseEnv []string, command string, args ...string) Command {
	c := Command{
		Command: command,
		Args:    args,
		Env:     []EnvVar{},
	}
	c.SetBaseEnv(baseEnv)

	return c
}

// SetBaseEnv replaces the environment essential variables are taken from.
func (c *Command) SetBaseEnv(baseEnv []string) {
	c.baseEnv = make(map[string]string)
	for _, envVar := range baseEnv {
		key, value, ok := strings.Cut(envVar, "=")
		if ok {
			c.baseEnv[key] = value
		}
	}
}

// AddEnvVar adds a single environment variable.
func (c *Command) AddEnvVar(envVar EnvVar) {
	c.Env = append(c.Env, envVar)
}

// GetEnv constructs environment variables for command execution.
// The result is sorted so it is stable across calls.
func (c *Command) GetEnv() []string {
	envMap := make(map[string]string)

	for key, value := range c.baseEnv {
		if slices.Contains(essentialVars, key) {
			envMap[key] = value
		}
	}

	for _, envVar := range c.Env {
		if envVar.Name == "" {
			continue
		}

		envMap[envVar.Name] = envVar.Value
	}

	env := make([]string, 0, len(envMap))
	for key, value := range envMap {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}

	slices.Sort(env)

	return env
}

func (c *Command) String() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", c.Command, strings.Join(c.Args, " ")))
}
