package picker

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/macropower/hop/pkg/rule"
	"github.com/macropower/hop/pkg/ui/theme"
)

// CurrentMarker is appended to the label of the current file's entry.
const CurrentMarker = " (current)"

// Form is an interactive [Picker] built on a select form.
type Form struct {
	theme       *theme.Theme
	interactive func() bool
	height      int
}

// FormOpt configures a [Form].
type FormOpt func(f *Form)

// WithTheme sets the form's theme.
func WithTheme(t *theme.Theme) FormOpt {
	return func(f *Form) {
		f.theme = t
	}
}

// WithHeight limits the number of visible options.
func WithHeight(h int) FormOpt {
	return func(f *Form) {
		f.height = h
	}
}

// NewForm creates a new [Form].
func NewForm(opts ...FormOpt) *Form {
	f := &Form{
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Options builds the select options for entries. The cursor starts on the
// entry after the current one.
func Options(entries []rule.Entry) ([]huh.Option[int], int) {
	options := make([]huh.Option[int], 0, len(entries))
	start := 0

	for i, e := range entries {
		label := e.Label
		if e.Current {
			label += CurrentMarker
			start = (i + 1) % len(entries)
		}

		options = append(options, huh.NewOption(fmt.Sprintf("%s  %s", label, e.Path), i))
	}

	return options, start
}

// Pick implements [Picker].
func (f *Form) Pick(ctx context.Context, title string, entries []rule.Entry) (rule.Entry, bool, error) {
	if len(entries) == 0 {
		return rule.Entry{}, false, nil
	}

	if !f.interactive() {
		return rule.Entry{}, false, ErrNotInteractive
	}

	options, selected := Options(entries)

	sel := huh.NewSelect[int]().
		Title(title).
		Options(options...).
		Value(&selected)

	if f.height > 0 {
		sel = sel.Height(f.height)
	}

	form := huh.NewForm(huh.NewGroup(sel)).WithShowHelp(false)
	if f.theme != nil {
		form = form.WithTheme(theme.HuhTheme(f.theme))
	}

	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return rule.Entry{}, false, nil
	}

	if err != nil {
		return rule.Entry{}, false, fmt.Errorf("run picker: %w", err)
	}

	return entries[selected], true, nil
}
