package api_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/hop/api"
)

//nolint:paralleltest // We need to set environment variables, so run tests sequentially.
func TestGetConfigPath(t *testing.T) {
	tcs := map[string]struct {
		xdg  string
		home string
		want string
	}{
		"XDG_CONFIG_HOME is set": {
			xdg:  "/custom/config",
			home: "/test/home",
			want: "/custom/config/hop/rules.yaml",
		},
		"XDG_CONFIG_HOME is empty and HOME is set": {
			home: "/test/home",
			want: "/test/home/.config/hop/rules.yaml",
		},
		"XDG_CONFIG_HOME and HOME are empty": {
			want: filepath.Join(os.TempDir(), "hop", "rules.yaml"), //nolint:usetesting // Needs to equal host.
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tc.xdg)
			t.Setenv("HOME", tc.home)

			assert.Equal(t, tc.want, api.GetConfigPath("rules.yaml"))
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(file, []byte("projects: []\n"), 0o600))

	tcs := map[string]struct {
		path    string
		want    string
		wantErr error
	}{
		"regular file": {path: file, want: "projects: []\n"},
		"missing file": {path: filepath.Join(dir, "missing.yaml"), wantErr: os.ErrNotExist},
		"directory":    {path: dir, wantErr: api.ErrIsDirectory},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := api.ReadFile(tc.path)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "rules.yaml")

	require.NoError(t, api.WriteFile(path, []byte("one")))
	require.NoError(t, api.WriteFile(path, []byte("two")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteDefaultFile(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		existing    *string
		force       bool
		wantWritten bool
		wantContent string
		wantBackups int
	}{
		"new file": {
			wantWritten: true,
			wantContent: "default",
		},
		"existing file kept": {
			existing:    ptr("custom"),
			wantContent: "custom",
		},
		"existing file forced": {
			existing:    ptr("custom"),
			force:       true,
			wantWritten: true,
			wantContent: "default",
			wantBackups: 1,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "rules.yaml")

			if tc.existing != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tc.existing), 0o600))
			}

			written, err := api.WriteDefaultFile(path, []byte("default"), tc.force)
			require.NoError(t, err)
			assert.Equal(t, tc.wantWritten, written)

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.wantContent, string(got))

			backups, err := filepath.Glob(filepath.Join(dir, "rules.yaml.*.old"))
			require.NoError(t, err)
			assert.Len(t, backups, tc.wantBackups)
		})
	}
}

func TestWriteDefaultFile_Directory(t *testing.T) {
	t.Parallel()

	_, err := api.WriteDefaultFile(t.TempDir(), []byte("default"), true)
	require.ErrorIs(t, err, api.ErrIsDirectory)
}

func ptr(s string) *string {
	return &s
}
