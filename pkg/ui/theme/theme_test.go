package theme_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/hop/pkg/ui/theme"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"named":   {input: "monokai", want: "monokai"},
		"dark":    {input: "dark", want: "github-dark"},
		"light":   {input: "light", want: "github"},
		"unknown": {input: "no-such-style", want: "swapoff"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := theme.New(tc.input)
			require.NotNil(t, got.ChromaStyle)
			assert.Equal(t, tc.want, got.Name)
			assert.NotNil(t, theme.HuhTheme(got))
		})
	}
}

func TestTheme_Highlight(t *testing.T) {
	t.Parallel()

	th := theme.New("github")

	tcs := map[string]struct {
		lang      string
		formatter string
		want      string
	}{
		"plain text": {
			lang:      "yaml",
			formatter: "noop",
			want:      "projects: []\n",
		},
		"ansi": {
			lang: "yaml",
			want: "\x1b[",
		},
		"unknown lexer": {
			lang:      "no-such-lexer",
			formatter: "noop",
			want:      "projects: []\n",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			require.NoError(t, th.Highlight(&buf, "projects: []\n", tc.lang, tc.formatter))
			assert.Contains(t, buf.String(), tc.want)
		})
	}
}
