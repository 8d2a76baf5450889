package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/hop/pkg/open"
	"github.com/macropower/hop/pkg/rule"
	"github.com/macropower/hop/pkg/switcher"
)

// ErrSwitchFailed is returned when no file could be switched to. The cause
// has already been logged.
var ErrSwitchFailed = errors.New("no file to switch to")

type SwitchArgs struct {
	*RootArgs

	Kind    string
	Project string
	Open    string
	Dir     string
}

func (sa *SwitchArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&sa.Kind, "kind", "k", string(rule.KindFile),
		fmt.Sprintf("Kind of rule to use, one of: %s", rule.AllKinds))
	cmd.Flags().StringVarP(&sa.Project, "project", "p", "", "Use the rule of this project instead of matching by path")
	addOpenFlag(cmd, &sa.Open)
	cmd.Flags().StringVar(&sa.Dir, "dir", "", "Directory used to find the repository for git rules")

	must(cmd.MarkFlagDirname("dir"))
	must(cmd.RegisterFlagCompletionFunc("kind",
		cobra.FixedCompletions(rule.AllKinds, cobra.ShellCompDirectiveNoFileComp),
	))
	must(cmd.RegisterFlagCompletionFunc("project", projectCompletion(sa.RootArgs)))
}

func NewSwitchCmd(ra *RootArgs) *cobra.Command {
	sa := &SwitchArgs{RootArgs: ra}

	cmd := &cobra.Command{
		Use:   "switch FILE",
		Short: "Go to the next file related to FILE",
		Long: `Go to the next file related to FILE.

The rule is chosen by --project, or else by the first file rule listing FILE.
Git rules look the resolved name up in the repository's tracked files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opener, err := open.New(sa.Open, cmd.OutOrStdout())
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped.
			}

			commands := switcher.NewCommands(sa.Engine(cmd.ErrOrStderr()),
				switcher.WithOpener(opener),
				switcher.WithWorkDir(sa.Dir),
			)

			if !commands.SwitchByRule(cmd.Context(), args[0], rule.Kind(sa.Kind), sa.Project) {
				return ErrSwitchFailed
			}

			return nil
		},
	}

	sa.AddFlags(cmd)

	return cmd
}

func addOpenFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "open", "o", string(open.MethodPrint),
		fmt.Sprintf("How to open the file, one of: %s", open.AllMethods))

	must(cmd.RegisterFlagCompletionFunc("open",
		cobra.FixedCompletions(open.AllMethods, cobra.ShellCompDirectiveNoFileComp),
	))
}

func projectCompletion(ra *RootArgs) cobra.CompletionFunc {
	return func(cmd *cobra.Command, _ []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
		cfg, err := ra.Store(cmd.ErrOrStderr()).Load(cmd.Context())
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		completions := make([]cobra.Completion, 0, len(cfg.Projects))
		for _, p := range cfg.Projects {
			if p.Name == "" {
				continue
			}

			completions = append(completions,
				cobra.CompletionWithDesc(p.Name, fmt.Sprintf("%d rules", len(p.Rules))))
		}

		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}
