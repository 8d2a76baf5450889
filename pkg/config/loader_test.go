package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/hop/pkg/config"
	"github.com/macropower/hop/pkg/rule"
	"github.com/macropower/hop/pkg/yaml"
)

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		data     string
		want     *config.Config
		wantPath string
		wantErr  error
	}{
		"valid": {
			data: `projects:
  - name: web
    rules:
      - rule: file
        path: ["/a/foo.ts", "/a/fooTest.ts"]
      - rule: git
        path: ["%.ts", "%Test.ts"]
        postfix: Test
`,
			want: &config.Config{Projects: []*config.Project{
				{Name: "web", Rules: []*rule.Rule{
					rule.New(rule.KindFile, "/a/foo.ts", "/a/fooTest.ts"),
					{Kind: rule.KindGit, Path: []string{"%.ts", "%Test.ts"}, Postfix: "Test"},
				}},
			}},
		},
		"json": {
			data: `{"projects": [{"rules": [{"rule": "file", "path": ["/x"]}]}]}`,
			want: &config.Config{Projects: []*config.Project{
				{Rules: []*rule.Rule{rule.New(rule.KindFile, "/x")}},
			}},
		},
		"no projects": {
			data: "projects: []\n",
			want: &config.Config{Projects: []*config.Project{}},
		},
		"empty file": {
			data:    "  \n",
			wantErr: config.ErrConfigMalformed,
		},
		"invalid yaml": {
			data:    "projects: [\n",
			wantErr: config.ErrConfigMalformed,
		},
		"unknown rule kind": {
			data: `projects:
  - rules:
      - rule: svn
        path: [x]
`,
			wantErr:  config.ErrConfigMalformed,
			wantPath: "$.projects[0].rules[0].rule",
		},
		"missing path": {
			data: `projects:
  - rules:
      - rule: file
`,
			wantErr:  config.ErrConfigMalformed,
			wantPath: "$.projects[0].rules[0]",
		},
		"unknown key": {
			data:     "rules: []\n",
			wantErr:  config.ErrConfigMalformed,
			wantPath: "$",
		},
		"invalid guard": {
			data: `projects:
  - rules:
      - rule: file
        path: [x]
        when: "nope("
`,
			wantErr:  config.ErrConfigMalformed,
			wantPath: "$.projects[0].rules[0]",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := config.NewLoaderFromBytes([]byte(tc.data)).Load()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, got)

				if tc.wantPath != "" {
					var yamlErr *yaml.Error
					require.ErrorAs(t, err, &yamlErr)
					require.NotNil(t, yamlErr.Path)
					assert.Equal(t, tc.wantPath, yamlErr.Path.String())
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewLoaderFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := config.NewLoaderFromFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, config.ErrConfigNotFound)

	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("projects: []\n"), 0o600))

	l, err := config.NewLoaderFromFile(path)
	require.NoError(t, err)
	require.NoError(t, l.Validate())

	_, err = config.NewLoaderFromFile(dir)
	require.ErrorIs(t, err, config.ErrConfigUnreadable)
	assert.NotErrorIs(t, err, config.ErrConfigNotFound)
}

func TestDefaultYAML(t *testing.T) {
	t.Parallel()

	cfg, err := config.NewLoaderFromBytes(config.DefaultYAML()).Load()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Projects)
}

type rejectAll struct{}

func (rejectAll) Validate(any) error {
	return os.ErrInvalid
}

func TestWithValidator(t *testing.T) {
	t.Parallel()

	err := config.NewLoaderFromBytes([]byte("projects: []\n"), config.WithValidator(rejectAll{})).Validate()
	require.ErrorIs(t, err, config.ErrConfigMalformed)
	require.ErrorIs(t, err, os.ErrInvalid)
}
