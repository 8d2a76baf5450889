// Package cli implements the hop command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/macropower/hop/pkg/config"
	"github.com/macropower/hop/pkg/log"
	"github.com/macropower/hop/pkg/switcher"
	"github.com/macropower/hop/pkg/telemetry"
	"github.com/macropower/hop/pkg/ui/theme"
)

const (
	cmdName = "hop"
	cmdDesc = `Rule-driven switching between related files.`

	cmdExamples = `  # Switch from an implementation to its test (or back):
  hop switch ./pkg/foo/foo.go --kind git

  # Open the next file of the "web" project in $EDITOR:
  hop switch ~/src/web/foo.ts --project web --open editor

  # Pick from every related file:
  hop select ~/src/web/foo.ts

  # Add a file to a project:
  hop save ~/src/web/fooStyles.css --project web`
)

type RootArgs struct {
	shutdown  telemetry.ShutdownFunc
	LogLevel  string
	LogFormat string
	Config    string
	Home      string
	Theme     string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "warn", fmt.Sprintf("Log level, one of: %s", log.AllLevels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.AllFormats))
	cmd.PersistentFlags().
		StringVar(&ra.Config, "config", "", "Path to the hop rules file")
	cmd.PersistentFlags().
		StringVar(&ra.Home, "home", "", "Directory substituted for ~ in rule templates")
	cmd.PersistentFlags().
		StringVar(&ra.Theme, "theme", "auto", "Theme: dark, light, auto, or a chroma style name")

	must(cmd.MarkPersistentFlagFilename("config", "yaml", "yml", "json"))
	must(cmd.MarkPersistentFlagDirname("home"))

	must(cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	))
	must(cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	))
	must(cmd.RegisterFlagCompletionFunc("theme",
		cobra.FixedCompletions([]string{"auto", "dark", "light"}, cobra.ShellCompDirectiveNoFileComp),
	))
}

// Store returns the rules store selected by the flags. Validation errors are
// colored when w is a terminal.
func (ra *RootArgs) Store(w io.Writer) *config.Store {
	return config.NewStore(ra.Config, config.WithColor(isTerminal(w)))
}

// Engine returns a navigation engine for the selected store.
func (ra *RootArgs) Engine(w io.Writer) *switcher.Engine {
	return switcher.NewEngine(
		switcher.WithStore(ra.Store(w)),
		switcher.WithHome(ra.Home),
	)
}

// GetTheme returns the theme selected by the flags.
func (ra *RootArgs) GetTheme() *theme.Theme {
	return theme.New(ra.Theme)
}

// Shutdown flushes pending traces. It is a no-op before setup has run.
func (ra *RootArgs) Shutdown(ctx context.Context) {
	if ra.shutdown == nil {
		return
	}

	err := ra.shutdown(context.WithoutCancel(ctx))
	if err != nil {
		slog.WarnContext(ctx, "flush traces", slog.Any("err", err))
	}
}

// Execute runs the hop command line with fang and flushes traces afterwards,
// including when the command fails.
func Execute(ctx context.Context, opts ...fang.Option) error {
	args := NewRootArgs()

	return execute(ctx, args, newRootCmd(args), func(ctx context.Context, cmd *cobra.Command) error {
		return fang.Execute(ctx, cmd, opts...) //nolint:wrapcheck // Reported by the error handler.
	})
}

func execute(
	ctx context.Context,
	ra *RootArgs,
	cmd *cobra.Command,
	run func(context.Context, *cobra.Command) error,
) error {
	defer ra.Shutdown(ctx)

	return run(ctx, cmd)
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(NewRootArgs())
}

func newRootCmd(args *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               cmdName,
		Short:             cmdDesc,
		Example:           cmdExamples,
		SilenceUsage:      true,
		PersistentPreRunE: setup(args),
	}

	args.AddFlags(cmd)

	cmd.AddCommand(
		NewSwitchCmd(args),
		NewSelectCmd(args),
		NewSaveCmd(args),
		NewConfigCmd(args),
		NewServeMCPCmd(args),
	)

	bindEnvVars(cmd)

	return cmd
}

func setup(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		logHandler, err := log.NewHandler(cmd.ErrOrStderr(), ra.LogLevel, ra.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		logger := slog.New(logHandler)
		slog.SetDefault(logger)
		cmd.SetContext(log.NewContext(cmd.Context(), logger))

		ra.shutdown, err = telemetry.Setup(cmd.Context(), os.Getenv)
		if err != nil {
			slog.WarnContext(cmd.Context(), "tracing disabled", slog.Any("err", err))
		}

		return nil
	}
}

// isTerminal reports whether v is a terminal file, such as stdin or stdout.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}
