package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/hop/pkg/config"
	"github.com/macropower/hop/pkg/rule"
	"github.com/macropower/hop/pkg/template"
	"github.com/macropower/hop/pkg/yaml"
)

func TestAddRuleEntry(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		cfg  *config.Config
		want *config.Config
	}{
		"new project is inserted first": {
			cfg: &config.Config{Projects: []*config.Project{
				{Name: "web", Rules: []*rule.Rule{rule.New(rule.KindFile, "/w/a.ts")}},
			}},
			want: &config.Config{Projects: []*config.Project{
				{Name: "proj", Rules: []*rule.Rule{rule.New(rule.KindFile, "/a/b.ts")}},
				{Name: "web", Rules: []*rule.Rule{rule.New(rule.KindFile, "/w/a.ts")}},
			}},
		},
		"existing project gets path appended": {
			cfg: &config.Config{Projects: []*config.Project{
				{Name: "proj", Rules: []*rule.Rule{
					rule.New(rule.KindFile, "/a/a.ts"),
					rule.New(rule.KindFile, "/z/z.ts"),
				}},
			}},
			want: &config.Config{Projects: []*config.Project{
				{Name: "proj", Rules: []*rule.Rule{
					rule.New(rule.KindFile, "/a/a.ts", "/a/b.ts"),
					rule.New(rule.KindFile, "/z/z.ts"),
				}},
			}},
		},
		"duplicate path is not added": {
			cfg: &config.Config{Projects: []*config.Project{
				{Name: "proj", Rules: []*rule.Rule{rule.New(rule.KindFile, "/a/b.ts")}},
			}},
			want: &config.Config{Projects: []*config.Project{
				{Name: "proj", Rules: []*rule.Rule{rule.New(rule.KindFile, "/a/b.ts")}},
			}},
		},
		"first project with the name wins": {
			cfg: &config.Config{Projects: []*config.Project{
				{Name: "proj", Rules: []*rule.Rule{rule.New(rule.KindFile, "/1.ts")}},
				{Name: "proj", Rules: []*rule.Rule{rule.New(rule.KindFile, "/2.ts")}},
			}},
			want: &config.Config{Projects: []*config.Project{
				{Name: "proj", Rules: []*rule.Rule{rule.New(rule.KindFile, "/1.ts", "/a/b.ts")}},
				{Name: "proj", Rules: []*rule.Rule{rule.New(rule.KindFile, "/2.ts")}},
			}},
		},
		"project without rules gets a file rule": {
			cfg: &config.Config{Projects: []*config.Project{
				{Name: "proj", Rules: []*rule.Rule{}},
			}},
			want: &config.Config{Projects: []*config.Project{
				{Name: "proj", Rules: []*rule.Rule{rule.New(rule.KindFile, "/a/b.ts")}},
			}},
		},
		"empty config": {
			cfg: config.NewConfig(),
			want: &config.Config{Projects: []*config.Project{
				{Name: "proj", Rules: []*rule.Rule{rule.New(rule.KindFile, "/a/b.ts")}},
			}},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := config.AddRuleEntry(tc.cfg, "proj", "/a/b.ts")
			assert.Same(t, tc.cfg, got)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAddRuleEntry_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Projects: []*config.Project{
		{Name: "other", Rules: []*rule.Rule{rule.New(rule.KindFile, "/o/x.ts")}},
	}}
	cfg = config.AddRuleEntry(cfg, "proj", "/a/b.ts")

	ctx := template.Context{FileName: "b.ts", FileStem: "b", RealPath: "/a/b.ts", HomeDir: "/home/me"}

	got, err := rule.Match(cfg.Resolve(ctx), ctx.RealPath, rule.KindFile, "proj")
	require.NoError(t, err)
	assert.Equal(t, []string{"/a/b.ts"}, got.Paths)
	assert.Equal(t, "proj", got.Project)
}

func TestConfig_Resolve(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Projects: []*config.Project{
		{Name: "web", Rules: []*rule.Rule{
			{Kind: rule.KindGit, Path: []string{"%.ts", "%Test.ts"}, Postfix: "Test", When: `pathExt(file) == ".ts"`},
			{Kind: rule.KindGit, Path: []string{"%.go", "%_test.go"}, When: `pathExt(file) == ".go"`},
		}},
		{Name: "notes", Rules: []*rule.Rule{
			rule.New(rule.KindFile, "~/notes/%.md"),
		}},
	}}

	ctx := template.Context{
		FileName: "mainTest.ts",
		FileStem: "mainTest",
		RealPath: "/repo/src/mainTest.ts",
		HomeDir:  "/home/me",
	}

	got := cfg.Resolve(ctx)
	require.Len(t, got, 2)

	assert.Equal(t, "web", got[0].Project)
	assert.Equal(t, []string{"main.ts", "mainTest.ts"}, got[0].Paths)
	assert.Equal(t, "notes", got[1].Project)
	assert.Equal(t, []string{"/home/me/notes/mainTest.md"}, got[1].Paths)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Projects: []*config.Project{
		{Name: "ok", Rules: []*rule.Rule{rule.New(rule.KindFile, "/a")}},
		{Name: "bad", Rules: []*rule.Rule{
			rule.New(rule.KindFile, "/b"),
			{Kind: rule.KindFile, Path: []string{"/c"}, When: "nope("},
		}},
	}}

	err := cfg.Validate()

	var yamlErr *yaml.Error
	require.ErrorAs(t, err, &yamlErr)
	assert.Equal(t, "$.projects[1].rules[1]", yamlErr.Path.String())

	require.NoError(t, config.NewConfig().Validate())
}

func TestConfig_EnsureDefaults(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Projects: []*config.Project{
		nil,
		{Name: "p", Rules: []*rule.Rule{nil, {Path: []string{"/a"}}}},
		{Name: "q"},
	}}
	cfg.EnsureDefaults()

	require.Len(t, cfg.Projects, 2)
	require.Len(t, cfg.Projects[0].Rules, 1)
	assert.Equal(t, rule.KindFile, cfg.Projects[0].Rules[0].Kind)
	assert.NotNil(t, cfg.Projects[1].Rules)
}

func TestConfig_Project(t *testing.T) {
	t.Parallel()

	first := &config.Project{Name: "a"}
	cfg := &config.Config{Projects: []*config.Project{first, {Name: "a"}, {Name: ""}}}

	assert.Same(t, first, cfg.Project("a"))
	assert.Same(t, cfg.Projects[2], cfg.Project(""))
	assert.Nil(t, cfg.Project("missing"))
}

func TestSchema(t *testing.T) {
	t.Parallel()

	data, err := config.Schema()
	require.NoError(t, err)
	assert.Contains(t, string(data), config.SchemaID)
	assert.Contains(t, string(data), `"projects"`)
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Projects: []*config.Project{
		{Name: "p", Rules: []*rule.Rule{rule.New(rule.KindFile, "/a")}},
	}}

	c := cfg.Clone()
	assert.Equal(t, cfg, c)

	config.AddRuleEntry(c, "p", "/b")
	config.AddRuleEntry(c, "q", "/c")

	assert.Len(t, cfg.Projects, 1)
	assert.Equal(t, []string{"/a"}, cfg.Projects[0].Rules[0].Path)
}
