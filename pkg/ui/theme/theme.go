// Package theme derives terminal styles from a chroma syntax style, so the
// picker, errors and highlighted config share one palette.
package theme

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Theme holds the styles used by hop's terminal output.
type Theme struct {
	ChromaStyle *chroma.Style

	TextStyle           lipgloss.Style
	SelectedStyle       lipgloss.Style
	SelectedSubtleStyle lipgloss.Style
	SubtleStyle         lipgloss.Style
	ErrorStyle          lipgloss.Style
	ErrorTitleStyle     lipgloss.Style
	LogoStyle           lipgloss.Style

	Name string
}

// New creates a [Theme] from a chroma style name. "dark", "light" and
// "auto" select a GitHub style; unknown names fall back to chroma's default.
func New(name string) *Theme {
	cs := newChromaStyle(styleName(name))

	text := lipgloss.NewStyle().Foreground(cs.fg(chroma.Background))
	selected := lipgloss.NewStyle().Foreground(cs.fg(chroma.NameTag))

	return &Theme{
		Name:                cs.style.Name,
		ChromaStyle:         cs.style,
		TextStyle:           text,
		SelectedStyle:       selected,
		SelectedSubtleStyle: lipgloss.NewStyle().Foreground(cs.fgWithFactor(chroma.NameTag, 0.3)),
		SubtleStyle:         lipgloss.NewStyle().Foreground(cs.fg(chroma.Comment)),
		ErrorStyle:          lipgloss.NewStyle().Foreground(cs.fg(chroma.GenericDeleted)),
		ErrorTitleStyle: text.
			Background(cs.fg(chroma.GenericDeleted)).
			Padding(0, 1).
			Bold(true),
		LogoStyle: lipgloss.NewStyle().
			Foreground(cs.bg(chroma.Background)).
			Background(cs.fg(chroma.NameTag)).
			Bold(true),
	}
}

// Highlight writes source highlighted with the theme's chroma style.
// lang is a chroma lexer name such as "yaml"; formatter is a chroma
// formatter name, with "terminal256" used when empty.
func (t *Theme) Highlight(w io.Writer, source, lang, formatter string) error {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	if formatter == "" {
		formatter = "terminal256"
	}

	f := formatters.Get(formatter)
	if f == nil {
		f = formatters.Fallback
	}

	it, err := chroma.Coalesce(lexer).Tokenise(nil, source)
	if err != nil {
		return fmt.Errorf("tokenise: %w", err)
	}

	err = f.Format(w, t.ChromaStyle, it)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}

	return nil
}

type chromaStyle struct {
	style *chroma.Style
}

func newChromaStyle(name string) chromaStyle {
	s := styles.Get(name)
	if s == nil {
		s = styles.Fallback
	}

	return chromaStyle{style: s}
}

func (cs chromaStyle) fg(c chroma.TokenType) lipgloss.Color {
	return lipgloss.Color(cs.style.Get(c).Colour.String()) //nolint:misspell // Chroma naming.
}

func (cs chromaStyle) bg(c chroma.TokenType) lipgloss.Color {
	return lipgloss.Color(cs.style.Get(c).Background.String())
}

func (cs chromaStyle) fgWithFactor(c chroma.TokenType, factor float64) lipgloss.Color {
	sc := cs.style.Get(c).Colour.BrightenOrDarken(factor) //nolint:misspell // Chroma naming.

	return lipgloss.Color(sc.String())
}

func styleName(name string) string {
	switch name {
	case "dark":
		return "github-dark"
	case "light":
		return "github"
	case "auto", "":
		return defaultStyleName()
	default:
		return name
	}
}

func defaultStyleName() string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return "github"
	}

	if termenv.HasDarkBackground() {
		return "github-dark"
	}

	return "github"
}
