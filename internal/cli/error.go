package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"

	"github.com/macropower/hop/pkg/config"
	"github.com/macropower/hop/pkg/git"
	"github.com/macropower/hop/pkg/rule"
)

// ErrorHandler renders err for fang, followed by a hint on how to fix it
// when one is known.
func ErrorHandler(w io.Writer, styles fang.Styles, err error) {
	mustN(fmt.Fprintln(w, styles.ErrorHeader.String()))
	mustN(fmt.Fprintln(w, lipgloss.NewStyle().MarginLeft(2).Render(err.Error())))
	mustN(fmt.Fprintln(w))

	if isUsageError(err) {
		mustN(fmt.Fprintln(w, lipgloss.JoinHorizontal(
			lipgloss.Left,
			styles.ErrorText.UnsetWidth().Render("Try"),
			styles.Program.Flag.Render("--help"),
			styles.ErrorText.UnsetWidth().UnsetMargins().UnsetTransform().PaddingLeft(1).Render("for usage."),
		)))
		mustN(fmt.Fprintln(w))

		return
	}

	if hint := errorHint(err); hint != "" {
		mustN(fmt.Fprintln(w, styles.ErrorText.UnsetWidth().Render(hint)))
		mustN(fmt.Fprintln(w))
	}
}

func errorHint(err error) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return "Run `hop config init` to create a rules file."
	case errors.Is(err, config.ErrConfigUnreadable):
		return "Check that the configuration path is a readable file."
	case errors.Is(err, config.ErrConfigMalformed):
		return "Run `hop config check` to validate the rules file."
	case errors.Is(err, rule.ErrNoMatchingRule):
		return "Add the file to a project with `hop save FILE --project NAME`."
	case errors.Is(err, git.ErrRepositoryUnavailable):
		return "Git rules need the file to be inside a git work tree."
	}

	return ""
}

// XXX: this is a hack to detect usage errors.
// See: https://github.com/spf13/cobra/pull/2266
func isUsageError(err error) bool {
	s := err.Error()
	for _, prefix := range []string{
		"flag needs an argument:",
		"unknown flag:",
		"unknown shorthand flag:",
		"unknown command",
		"invalid argument",
		"accepts ",
		"required flag",
	} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func mustN(_ int, err error) {
	must(err)
}
