package config

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	_ "embed"

	"github.com/macropower/hop/pkg/rule"
	"github.com/macropower/hop/pkg/schema"
	"github.com/macropower/hop/pkg/template"
	"github.com/macropower/hop/pkg/yaml"
)

// SchemaID is the $id of the generated configuration schema.
const SchemaID = "https://github.com/macropower/hop/rules.schema.json"

var (
	//go:embed rules.yaml
	defaultConfigYAML []byte

	schemaJSON = sync.OnceValues(func() ([]byte, error) {
		return schema.NewGenerator(&Config{},
			schema.WithID(SchemaID),
			schema.WithTitle("hop rules"),
		).Generate()
	})

	defaultValidator = sync.OnceValues(func() (*yaml.Validator, error) {
		data, err := schemaJSON()
		if err != nil {
			return nil, err
		}

		return yaml.NewValidator(SchemaID, data)
	})
)

// Config is the rule configuration: an ordered list of projects.
type Config struct {
	// Projects are matched in declaration order.
	Projects []*Project `json:"projects" jsonschema:"title=Projects"`
}

// Project is a named group of rules. Names need not be unique; lookups use
// the first project with a given name.
type Project struct {
	// Name identifies the project. It may be empty.
	Name string `json:"name,omitempty" jsonschema:"title=Name"`
	// Rules are matched in declaration order.
	Rules []*rule.Rule `json:"rules" jsonschema:"title=Rules"`
}

// NewConfig returns an empty [Config].
func NewConfig() *Config {
	c := &Config{}
	c.EnsureDefaults()

	return c
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return slices.Clone(defaultConfigYAML)
}

// Schema returns the JSON schema for [Config].
func Schema() ([]byte, error) {
	data, err := schemaJSON()
	if err != nil {
		return nil, fmt.Errorf("generate schema: %w", err)
	}

	return data, nil
}

// EnsureDefaults replaces nil collections and defaults empty rule kinds to
// [rule.KindFile].
func (c *Config) EnsureDefaults() {
	if c.Projects == nil {
		c.Projects = []*Project{}
	}

	c.Projects = slices.DeleteFunc(c.Projects, func(p *Project) bool { return p == nil })

	for _, p := range c.Projects {
		if p.Rules == nil {
			p.Rules = []*rule.Rule{}
		}

		p.Rules = slices.DeleteFunc(p.Rules, func(r *rule.Rule) bool { return r == nil })

		for _, r := range p.Rules {
			if r.Kind == "" {
				r.Kind = rule.KindFile
			}

			if r.Path == nil {
				r.Path = []string{}
			}
		}
	}
}

// Validate checks what the schema cannot: rule kinds and guard expressions.
func (c *Config) Validate() error {
	for i, p := range c.Projects {
		for j, r := range p.Rules {
			err := r.Validate()
			if err != nil {
				return yaml.NewError(err, yaml.WithPath(
					yaml.NewPathBuilder().Root().
						Child("projects").Index(uint(i)).
						Child("rules").Index(uint(j)).
						Build(),
				))
			}
		}
	}

	return nil
}

// Project returns the first project named name, or nil.
func (c *Config) Project(name string) *Project {
	for _, p := range c.Projects {
		if p.Name == name {
			return p
		}
	}

	return nil
}

// Resolve expands every rule's templates for ctx, in declaration order.
// Rules whose guard is false for ctx are left out.
func (c *Config) Resolve(ctx template.Context) []*rule.Resolved {
	var resolved []*rule.Resolved

	for _, p := range c.Projects {
		vars := rule.GuardVariables(p.Name, ctx)

		for _, r := range p.Rules {
			if !r.Applies(vars) {
				slog.Debug("skip rule",
					slog.String("project", p.Name),
					slog.String("rule", r.String()),
				)

				continue
			}

			resolved = append(resolved, rule.Resolve(p.Name, r, ctx))
		}
	}

	return resolved
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := &Config{Projects: make([]*Project, 0, len(c.Projects))}

	for _, p := range c.Projects {
		cp := &Project{Name: p.Name, Rules: make([]*rule.Rule, 0, len(p.Rules))}

		for _, r := range p.Rules {
			cr := *r
			cr.Path = slices.Clone(r.Path)
			cp.Rules = append(cp.Rules, &cr)
		}

		out.Projects = append(out.Projects, cp)
	}

	return out
}

// AddRuleEntry records filePath under projectName and returns cfg.
//
// The path is appended to the first rule of the first project with that
// name, unless already present. A project without rules gets a new file
// rule. When no project has that name, a new project with a single file rule
// is inserted at the front.
func AddRuleEntry(cfg *Config, projectName, filePath string) *Config {
	if p := cfg.Project(projectName); p != nil {
		if len(p.Rules) == 0 {
			p.Rules = append(p.Rules, rule.New(rule.KindFile, filePath))

			return cfg
		}

		first := p.Rules[0]
		if !first.Contains(filePath) {
			first.Path = append(first.Path, filePath)
		}

		return cfg
	}

	cfg.Projects = slices.Insert(cfg.Projects, 0, &Project{
		Name:  projectName,
		Rules: []*rule.Rule{rule.New(rule.KindFile, filePath)},
	})

	return cfg
}

// MarshalYAML encodes the configuration as YAML.
func (c *Config) MarshalYAML() ([]byte, error) {
	b, err := yaml.Marshal(*c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return b, nil
}
