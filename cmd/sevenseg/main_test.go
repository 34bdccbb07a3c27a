package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpi-sevenseg/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sevenseg.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, ctx context.Context, args ...string) error {
	t.Helper()
	t.Setenv(config.EnvBackend, "")
	t.Setenv(config.EnvLogLevel, "")
	cmd := newRootCmd()
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	return cmd.ExecuteContext(ctx)
}

func TestSelftestOnSimulatedDisplay(t *testing.T) {
	path := writeConfig(t, `
[display]
dwell = "1ms"
[log]
level = "error"
`)
	err := execute(t, context.Background(), "selftest", "--config", path, "--backend", "sim", "--step", "30ms")
	require.NoError(t, err)
}

func TestSelftestCommonAnode(t *testing.T) {
	path := writeConfig(t, `
[display]
polarity = "common-anode"
dwell = "1ms"
[log]
level = "error"
`)
	err := execute(t, context.Background(), "selftest", "--config", path, "--backend", "sim", "--step", "30ms")
	require.NoError(t, err)
}

func TestCounterStopsOnCancel(t *testing.T) {
	path := writeConfig(t, `
[display]
dwell = "1ms"
[counter]
period = "10ms"
[log]
level = "error"
`)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := execute(t, ctx, "--config", path, "--backend", "sim", "--start", "9990")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestInvalidConfigRejected(t *testing.T) {
	path := writeConfig(t, `
[display]
digits = [13, 14, 15]
`)
	err := execute(t, context.Background(), "--config", path, "--backend", "sim")
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestUnknownBackendRejected(t *testing.T) {
	err := execute(t, context.Background(), "--backend", "spi")
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestCounterWithTinyPeriod(t *testing.T) {
	path := writeConfig(t, `
[display]
dwell = "1ms"
[counter]
period = "1ns"
[log]
level = "error"
`)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, execute(t, ctx, "--config", path, "--backend", "sim"))
}

func TestSelftestRejectsNonPositiveStep(t *testing.T) {
	for _, step := range []string{"0s", "-1s"} {
		err := execute(t, context.Background(), "selftest", "--backend", "sim", "--step", step)
		require.ErrorIs(t, err, config.ErrInvalid, "step %s", step)
	}
}
