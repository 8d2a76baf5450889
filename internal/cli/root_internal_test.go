package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/hop/pkg/config"
)

var errWrite = errors.New("write failed")

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

func TestExecute_FlushesTraces(t *testing.T) {
	t.Parallel()

	errRun := errors.New("run failed")

	tcs := map[string]struct {
		runErr   error
		flushErr error
	}{
		"command succeeds": {},
		"command fails": {
			runErr: errRun,
		},
		"flush fails": {
			runErr:   errRun,
			flushErr: errors.New("exporter unavailable"),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flushed := 0
			ra := &RootArgs{shutdown: func(context.Context) error {
				flushed++

				return tc.flushErr
			}}

			cmd := &cobra.Command{
				Use:           cmdName,
				SilenceUsage:  true,
				SilenceErrors: true,
				RunE: func(*cobra.Command, []string) error {
					return tc.runErr
				},
			}
			cmd.SetArgs([]string{})

			err := execute(t.Context(), ra, cmd, func(ctx context.Context, c *cobra.Command) error {
				return c.ExecuteContext(ctx)
			})
			if tc.runErr != nil {
				require.ErrorIs(t, err, tc.runErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, 1, flushed)
		})
	}
}

func TestRootArgs_Shutdown_BeforeSetup(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		NewRootArgs().Shutdown(t.Context())
	})
}

func TestCheckReporter(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		stdout  *bytes.Buffer
		cfg     *config.Config
		err     error
		wantOut string
		wantErr string
	}{
		"valid config": {
			stdout:  &bytes.Buffer{},
			cfg:     config.NewConfig(),
			wantOut: "rules.yaml is valid",
		},
		"invalid config": {
			stdout:  &bytes.Buffer{},
			err:     config.ErrConfigMalformed,
			wantErr: config.ErrConfigMalformed.Error(),
		},
		"stdout write fails": {
			cfg:     config.NewConfig(),
			wantErr: errWrite.Error(),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stderr := &bytes.Buffer{}
			cmd := &cobra.Command{Use: "check"}
			cmd.SetContext(t.Context())
			cmd.SetErr(stderr)
			if tc.stdout != nil {
				cmd.SetOut(tc.stdout)
			} else {
				cmd.SetOut(errWriter{})
			}

			report := checkReporter(cmd, "rules.yaml")

			require.NotPanics(t, func() {
				report(tc.cfg, tc.err)
			})

			if tc.wantOut != "" {
				assert.Contains(t, tc.stdout.String(), tc.wantOut)
			}
			if tc.wantErr != "" {
				assert.Contains(t, stderr.String(), tc.wantErr)
			} else {
				assert.Empty(t, stderr.String())
			}

			// A failed report leaves the callback usable for the next change.
			require.NotPanics(t, func() {
				report(config.NewConfig(), nil)
			})
		})
	}
}
