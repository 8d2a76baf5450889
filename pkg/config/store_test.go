package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/hop/pkg/config"
	"github.com/macropower/hop/pkg/rule"
)

func TestStore_SaveLoad(t *testing.T) {
	t.Parallel()

	store := config.NewStore(filepath.Join(t.TempDir(), "hop", "rules.yaml"))

	_, err := store.Load(t.Context())
	require.ErrorIs(t, err, config.ErrConfigNotFound)

	cfg := config.AddRuleEntry(config.NewConfig(), "proj", "/a/b.ts")
	require.NoError(t, store.Save(t.Context(), cfg))

	got, err := store.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	got = config.AddRuleEntry(got, "proj", "/a/bTest.ts")
	require.NoError(t, store.Save(t.Context(), got))

	again, err := store.Load(t.Context())
	require.NoError(t, err)
	require.Len(t, again.Projects, 1)
	assert.Equal(t, rule.New(rule.KindFile, "/a/b.ts", "/a/bTest.ts"), again.Projects[0].Rules[0])
}

func TestStore_SaveFailure(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	store := config.NewStore(filepath.Join(blocker, "rules.yaml"))

	err := store.Save(t.Context(), config.NewConfig())
	require.ErrorIs(t, err, config.ErrPersistenceWriteFailed)
}

func TestStore_WriteDefault(t *testing.T) {
	t.Parallel()

	store := config.NewStore(filepath.Join(t.TempDir(), "rules.yaml"))

	written, err := store.WriteDefault(false)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = store.WriteDefault(false)
	require.NoError(t, err)
	assert.False(t, written)

	cfg, err := store.Load(t.Context())
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Projects)
}

//nolint:paralleltest // Sets environment variables.
func TestNewStore_DefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")

	assert.Equal(t, "/cfg/hop/rules.yaml", config.NewStore("").Path())
}

func TestStore_Watch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), config.DefaultFileName)
	store := config.NewStore(path)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	type loadResult struct {
		cfg *config.Config
		err error
	}

	results := make(chan loadResult, 10)
	done := make(chan error, 1)

	go func() {
		done <- store.Watch(ctx, func(cfg *config.Config, err error) {
			results <- loadResult{cfg: cfg, err: err}
		})
	}()

	select {
	case r := <-results:
		require.ErrorIs(t, r.err, config.ErrConfigNotFound)
	case <-time.After(5 * time.Second):
		t.Fatal("no initial load")
	}

	cfg := config.AddRuleEntry(config.NewConfig(), "notes", "/x/a.md")
	require.NoError(t, store.Save(ctx, cfg))

	timeout := time.After(5 * time.Second)

	for {
		select {
		case r := <-results:
			if r.err != nil {
				// Intermediate events may observe a partial write.
				continue
			}

			require.NotNil(t, r.cfg.Project("notes"))
			cancel()
			require.NoError(t, <-done)

			return

		case <-timeout:
			t.Fatal("no reload after save")
		}
	}
}
