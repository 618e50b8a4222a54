package main

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(out)
}

// Below ten ops the tenth-sized warmup would run zero operations, so
// runBackend skips it instead of announcing an empty pass.
func TestRunBackend_SkipsEmptyWarmup(t *testing.T) {
	cfg := testConfig()
	cfg.ops = 5
	cfg.warmup = true

	var err error
	out := captureStdout(t, func() {
		err = runBackend(cfg, "std", zap.NewNop().Sugar())
	})

	require.NoError(t, err)
	assert.NotContains(t, out, "Warmed up")
	assert.Contains(t, out, "Run 1/1")
}

func TestRunBackend_WarmupRuns(t *testing.T) {
	cfg := testConfig()
	cfg.ops = 40
	cfg.warmup = true

	var err error
	out := captureStdout(t, func() {
		err = runBackend(cfg, "std", zap.NewNop().Sugar())
	})

	require.NoError(t, err)
	assert.Contains(t, out, "Warmed up with 4 operations per phase")
}
