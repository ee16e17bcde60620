package script_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/diary/pkg/adapters/script"
)

type loadResult struct {
	steps []script.Step
	err   error
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "play.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- op: create\n  content: one\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan loadResult, 10)
	done := make(chan error, 1)
	go func() {
		done <- script.Watch(ctx, path, script.WatchConfig{}, func(steps []script.Step, err error) {
			results <- loadResult{steps, err}
		})
	}()

	first := waitResult(t, results)
	require.NoError(t, first.err)
	require.Len(t, first.steps, 1)

	// Let the watcher settle before modifying the file.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("- op: create\n  content: one\n- op: delete\n  id: 1\n"), 0644))

	second := waitResult(t, results)
	require.NoError(t, second.err)
	assert.Len(t, second.steps, 2)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_ReportsParseErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "play.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- op: explode\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan loadResult, 10)
	go func() {
		_ = script.Watch(ctx, path, script.WatchConfig{}, func(steps []script.Step, err error) {
			results <- loadResult{steps, err}
		})
	}()

	first := waitResult(t, results)
	assert.ErrorIs(t, first.err, script.ErrUnknownOp)
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := script.Watch(context.Background(), filepath.Join(t.TempDir(), "missing", "play.yaml"), script.WatchConfig{}, func([]script.Step, error) {})
	assert.Error(t, err)
}

func waitResult(t *testing.T, ch <-chan loadResult) loadResult {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for script load")
	}
	return loadResult{}
}
