package template_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/hop/pkg/template"
)

func TestCommonPart(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		stem    string
		prefix  string
		postfix string
		want    string
	}{
		"no affixes": {
			stem: "main",
			want: "main",
		},
		"postfix stripped": {
			stem:    "mainTest",
			postfix: "Test",
			want:    "main",
		},
		"prefix stripped": {
			stem:   "test_main",
			prefix: "test_",
			want:   "main",
		},
		"postfix then prefix": {
			stem:    "test_main_spec",
			prefix:  "test_",
			postfix: "_spec",
			want:    "main",
		},
		"stem without either affix is unchanged": {
			stem:    "main",
			prefix:  "test_",
			postfix: "Test",
			want:    "main",
		},
		"affix stripped only once": {
			stem:    "mainTestTest",
			postfix: "Test",
			want:    "mainTest",
		},
		"postfix in the middle is not stripped": {
			stem:    "mainTestHelper",
			postfix: "Test",
			want:    "mainTestHelper",
		},
		"prefix checked after postfix removal": {
			stem:    "Test",
			prefix:  "Test",
			postfix: "Test",
			want:    "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, template.CommonPart(tc.stem, tc.prefix, tc.postfix))
		})
	}
}

func TestCommonPart_Idempotent(t *testing.T) {
	t.Parallel()

	for _, stem := range []string{"main", "index", "a", "", "service.impl"} {
		once := template.CommonPart(stem, "pre_", "_post")
		assert.Equal(t, stem, once)
		assert.Equal(t, once, template.CommonPart(once, "pre_", "_post"))
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	ctx := template.Context{
		FileName: "mainTest.ts",
		FileStem: "mainTest",
		RealPath: "/home/me/src/mainTest.ts",
		HomeDir:  "/home/me",
	}

	tcs := map[string]struct {
		tmpl    string
		prefix  string
		postfix string
		want    string
	}{
		"placeholder with postfix": {
			tmpl:    "%.ts",
			postfix: "Test",
			want:    "main.ts",
		},
		"placeholder keeps rest of template": {
			tmpl:    "%Test.ts",
			postfix: "Test",
			want:    "mainTest.ts",
		},
		"only first placeholder replaced": {
			tmpl: "%/%.ts",
			want: "mainTest/%.ts",
		},
		"home token": {
			tmpl: "~/notes/todo.md",
			want: "/home/me/notes/todo.md",
		},
		"home token alone": {
			tmpl: "~",
			want: "/home/me",
		},
		"home token with placeholder": {
			tmpl:    "~/src/%.go",
			postfix: "Test",
			want:    "/home/me/src/main.go",
		},
		"tilde user form left alone": {
			tmpl: "~other/file",
			want: "~other/file",
		},
		"tilde not leading": {
			tmpl: "a/~/b",
			want: "a/~/b",
		},
		"plain path": {
			tmpl: "/etc/hosts",
			want: "/etc/hosts",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, template.Resolve(tc.tmpl, ctx, tc.prefix, tc.postfix))
		})
	}
}

func TestResolve_StemWithHomeToken(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		stem string
		tmpl string
		want string
	}{
		"stem is the token": {
			stem: "~",
			tmpl: "%/x.md",
			want: "~/x.md",
		},
		"stem starts with the token": {
			stem: "~notes",
			tmpl: "%/x.md",
			want: "~notes/x.md",
		},
		"template token still expands": {
			stem: "~",
			tmpl: "~/%.md",
			want: "/home/me/~.md",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := template.Context{FileStem: tc.stem, HomeDir: "/home/me"}
			assert.Equal(t, tc.want, template.Resolve(tc.tmpl, ctx, "", ""))
		})
	}
}

func TestResolve_NoPlaceholderIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := template.Context{FileStem: "x", HomeDir: "/h"}

	once := template.Resolve("/a/b.ts", ctx, "", "")
	assert.Equal(t, once, template.Resolve(once, ctx, "", ""))
}

func TestExpandHome(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "~/x", template.ExpandHome("~/x", ""))
	assert.Equal(t, "/h/x", template.ExpandHome("~/x", "/h/"))
}

func TestNewContext(t *testing.T) {
	t.Parallel()

	t.Run("existing file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		file := filepath.Join(dir, "fooTest.ts")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

		ctx, err := template.NewContext(file, "/home/me")
		require.NoError(t, err)

		want, err := filepath.EvalSymlinks(file)
		require.NoError(t, err)

		assert.Equal(t, want, ctx.RealPath)
		assert.Equal(t, "fooTest.ts", ctx.FileName)
		assert.Equal(t, "fooTest", ctx.FileStem)
		assert.Equal(t, "/home/me", ctx.HomeDir)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		ctx, err := template.NewContext("/does/not/exist/archive.tar.gz", "")
		require.NoError(t, err)
		assert.Equal(t, "/does/not/exist/archive.tar.gz", ctx.RealPath)
		assert.Equal(t, "archive.tar", ctx.FileStem)
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		_, err := template.NewContext("", "")
		require.ErrorIs(t, err, template.ErrEmptyFile)
	})
}
