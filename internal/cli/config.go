package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/macropower/hop/pkg/config"
	"github.com/macropower/hop/pkg/switcher"
)

func NewConfigCmd(ra *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage the rules file",
	}

	cmd.AddCommand(
		newConfigPathCmd(ra),
		newConfigShowCmd(ra),
		newConfigCheckCmd(ra),
		newConfigInitCmd(ra),
		newConfigSchemaCmd(ra),
	)

	return cmd
}

func newConfigPathCmd(ra *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the location of the rules file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			commands := switcher.NewCommands(ra.Engine(cmd.ErrOrStderr()))

			_, err := fmt.Fprintln(cmd.OutOrStdout(), commands.OpenSwitchRule())

			return err //nolint:wrapcheck // Terminal output.
		},
	}
}

func newConfigShowCmd(ra *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := ra.Store(cmd.ErrOrStderr())

			cfg, err := store.Load(cmd.Context())
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped.
			}

			slog.InfoContext(cmd.Context(), "active configuration", slog.String("path", store.Path()))

			data, err := cfg.MarshalYAML()
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}

			return render(cmd.OutOrStdout(), ra.GetTheme(), string(data), "yaml")
		},
	}
}

type ConfigCheckArgs struct {
	*RootArgs

	Watch bool
}

func newConfigCheckCmd(ra *RootArgs) *cobra.Command {
	ca := &ConfigCheckArgs{RootArgs: ra}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the rules file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := ca.Store(cmd.ErrOrStderr())

			if !ca.Watch {
				cfg, err := store.Load(cmd.Context())
				if err != nil {
					return err //nolint:wrapcheck // Already wrapped.
				}

				return printCheck(cmd, store.Path(), cfg)
			}

			err := store.Watch(cmd.Context(), checkReporter(cmd, store.Path()))
			if err != nil {
				return fmt.Errorf("watch config: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&ca.Watch, "watch", "w", false, "Validate again whenever the file changes")

	return cmd
}

// checkReporter returns a watch callback that prints each validation result.
// Errors are written to stderr and never stop the watch.
func checkReporter(cmd *cobra.Command, path string) func(*config.Config, error) {
	report := func(err error) {
		_, werr := fmt.Fprintf(cmd.ErrOrStderr(), "%s\n\n", err)
		if werr != nil {
			slog.WarnContext(cmd.Context(), "report check result",
				slog.Any("err", err),
				slog.Any("write_err", werr),
			)
		}
	}

	return func(cfg *config.Config, err error) {
		if err != nil {
			report(err)

			return
		}

		err = printCheck(cmd, path, cfg)
		if err != nil {
			report(fmt.Errorf("print result: %w", err))
		}
	}
}

func printCheck(cmd *cobra.Command, path string, cfg *config.Config) error {
	size := "unknown size"

	info, err := os.Stat(path)
	if err == nil {
		size = strings.Replace(humanize.Bytes(uint64(max(0, info.Size()))), " ", "", 1) //nolint:gosec // Uses max.
	}

	rules := 0
	for _, p := range cfg.Projects {
		rules += len(p.Rules)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (%s, %s, %s)\n",
		path, size,
		pluralize(len(cfg.Projects), "project"),
		pluralize(rules, "rule"),
	)

	return err //nolint:wrapcheck // Terminal output.
}

func pluralize(n int, word string) string {
	return humanize.Comma(int64(n)) + " " + english.PluralWord(n, word, "")
}

type ConfigInitArgs struct {
	*RootArgs

	Force bool
}

func newConfigInitCmd(ra *RootArgs) *cobra.Command {
	ia := &ConfigInitArgs{RootArgs: ra}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default rules file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := ia.Store(cmd.ErrOrStderr())

			written, err := store.WriteDefault(ia.Force)
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped.
			}

			if !written {
				_, err = fmt.Fprintf(cmd.ErrOrStderr(), "%s already exists, use --force to replace it\n", store.Path())

				return err //nolint:wrapcheck // Terminal output.
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", store.Path())

			return err //nolint:wrapcheck // Terminal output.
		},
	}

	cmd.Flags().BoolVar(&ia.Force, "force", false, "Replace an existing file, keeping a backup")

	return cmd
}

func newConfigSchemaCmd(ra *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the rules file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Schema()
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped.
			}

			return render(cmd.OutOrStdout(), ra.GetTheme(), string(data), "json")
		},
	}
}
