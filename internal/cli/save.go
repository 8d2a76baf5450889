package cli

import (
	"fmt"
	"io"

	"github.com/aymanbagabas/go-udiff"
	"github.com/spf13/cobra"

	"github.com/macropower/hop/pkg/switcher"
	"github.com/macropower/hop/pkg/ui/theme"
)

type SaveArgs struct {
	*RootArgs

	Project string
	DryRun  bool
}

func (sa *SaveArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&sa.Project, "project", "p", "", "Project to add the file to, created if missing")
	cmd.Flags().BoolVar(&sa.DryRun, "dry-run", false, "Print the change as a diff instead of saving it")

	must(cmd.MarkFlagRequired("project"))
	must(cmd.RegisterFlagCompletionFunc("project", projectCompletion(sa.RootArgs)))
}

func NewSaveCmd(ra *RootArgs) *cobra.Command {
	sa := &SaveArgs{RootArgs: ra}

	cmd := &cobra.Command{
		Use:   "save FILE",
		Short: "Add FILE to a project's file rule",
		Long: `Add FILE to the first file rule of a project and save the rules file.

The project and the rule are created when they do not exist. A file that is
already listed is not added again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := sa.Engine(cmd.ErrOrStderr())

			if sa.DryRun {
				return printPlan(cmd, sa, engine, args[0])
			}

			commands := switcher.NewCommands(engine)

			err := commands.SaveSwitchRule(cmd.Context(), args[0], sa.Project)
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped.
			}

			return nil
		},
	}

	sa.AddFlags(cmd)

	return cmd
}

func printPlan(cmd *cobra.Command, sa *SaveArgs, engine *switcher.Engine, file string) error {
	before, after, err := engine.Plan(cmd.Context(), file, sa.Project)
	if err != nil {
		return fmt.Errorf("plan: %w", err)
	}

	oldYAML, err := before.MarshalYAML()
	if err != nil {
		return fmt.Errorf("marshal current config: %w", err)
	}

	newYAML, err := after.MarshalYAML()
	if err != nil {
		return fmt.Errorf("marshal new config: %w", err)
	}

	diff := Diff(engine.ConfigPath(), string(oldYAML), string(newYAML))
	if diff == "" {
		_, err = fmt.Fprintln(cmd.ErrOrStderr(), "No changes.")

		return err //nolint:wrapcheck // Terminal output.
	}

	return render(cmd.OutOrStdout(), sa.GetTheme(), diff, "diff")
}

// Diff returns a unified diff between two versions of the file at path, or
// an empty string when they are equal.
func Diff(path, before, after string) string {
	if before == after {
		return ""
	}

	return udiff.Unified("a"+path, "b"+path, before, after)
}

// render writes source to w, highlighted as lang when w is a terminal.
func render(w io.Writer, t *theme.Theme, source, lang string) error {
	if !isTerminal(w) {
		_, err := io.WriteString(w, source)
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		return nil
	}

	err := t.Highlight(w, source, lang, "")
	if err != nil {
		return fmt.Errorf("highlight: %w", err)
	}

	return nil
}
