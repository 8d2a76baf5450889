package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macropower/hop/pkg/log"
	"github.com/macropower/hop/pkg/open"
	"github.com/macropower/hop/pkg/switcher"
	"github.com/macropower/hop/pkg/ui/picker"
)

type SelectArgs struct {
	*RootArgs

	Project string
	Filter  string
	Open    string
	Height  int
}

func (sa *SelectArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&sa.Project, "project", "p", "", "Use the rule of this project instead of matching by path")
	cmd.Flags().StringVarP(&sa.Filter, "filter", "f", "", "Only offer files fuzzy-matching this query")
	cmd.Flags().IntVar(&sa.Height, "height", 0, "Maximum number of visible entries, 0 for no limit")
	addOpenFlag(cmd, &sa.Open)

	must(cmd.RegisterFlagCompletionFunc("project", projectCompletion(sa.RootArgs)))
}

func NewSelectCmd(ra *RootArgs) *cobra.Command {
	sa := &SelectArgs{RootArgs: ra}

	cmd := &cobra.Command{
		Use:   "select FILE",
		Short: "Pick one of the files related to FILE",
		Long: `Pick one of the files related to FILE from its file rule.

On a terminal an interactive list is shown. Otherwise every related file is
printed as "index<TAB>name<TAB>path".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(cmd, sa, args[0])
		},
	}

	sa.AddFlags(cmd)

	return cmd
}

func runSelect(cmd *cobra.Command, sa *SelectArgs, file string) error {
	ctx := cmd.Context()
	engine := sa.Engine(cmd.ErrOrStderr())

	if !isTerminal(cmd.InOrStdin()) {
		commands := switcher.NewCommands(engine,
			switcher.WithPicker(picker.NewPrinter(cmd.OutOrStdout())),
			switcher.WithFilter(sa.Filter),
		)

		_, err := commands.SelectSwitchRule(ctx, file, sa.Project)
		if err != nil {
			return fmt.Errorf("select: %w", err)
		}

		return nil
	}

	opener, err := open.New(sa.Open, cmd.OutOrStdout())
	if err != nil {
		return err //nolint:wrapcheck // Already wrapped.
	}

	// Logs would tear the form, so hold them until it is closed.
	logBuf := log.NewBuffer(log.DefaultBufferSize)

	logHandler, err := log.NewHandler(logBuf, sa.LogLevel, sa.LogFormat)
	if err != nil {
		return fmt.Errorf("create log handler: %w", err)
	}

	prev := slog.Default()
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	commands := switcher.NewCommands(engine,
		switcher.WithPicker(picker.NewForm(
			picker.WithTheme(sa.GetTheme()),
			picker.WithHeight(sa.Height),
		)),
		switcher.WithOpener(opener),
		switcher.WithFilter(sa.Filter),
	)

	entries, err := commands.SelectSwitchRule(log.NewContext(ctx, logger), file, sa.Project)

	slog.SetDefault(prev)
	flushLogs(cmd, logBuf)

	if err != nil {
		return fmt.Errorf("select: %w", err)
	}

	if len(entries) == 0 {
		log.WithContext(ctx).WarnContext(ctx, "no related files match the filter", slog.String("filter", sa.Filter))
	}

	return nil
}

func flushLogs(cmd *cobra.Command, buf *log.Buffer) {
	if buf.Dropped() > 0 {
		slog.Debug("log records dropped while picking", slog.Int("count", buf.Dropped()))
	}

	_, err := buf.WriteTo(cmd.ErrOrStderr())
	if err != nil {
		slog.Error("flush logs", slog.Any("err", err))
	}
}
