package task

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test drives unix shell tools")
	}
}

func TestRunner_Run(t *testing.T) {
	skipOnWindows(t)

	r := NewRunner("echo")
	result, err := r.Run(context.Background(), t.TempDir(), "build")
	require.NoError(t, err)

	assert.True(t, result.Succeeded())
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Output, "install")
	assert.Contains(t, result.Output, "run build")
	assert.Contains(t, result.Output, "[INFO] Dependencies installed successfully")
}

func TestRunner_Run_TaskFails(t *testing.T) {
	skipOnWindows(t)

	// `false` exits 1 for both the install and the task itself; install
	// failure is advisory, the task's exit code is the result.
	r := NewRunner("false")
	result, err := r.Run(context.Background(), t.TempDir(), "build")
	require.NoError(t, err)

	assert.False(t, result.Succeeded())
	assert.NotEqual(t, 0, result.ExitCode)
}

func TestRunner_Run_ToolMissing(t *testing.T) {
	r := NewRunner("definitely-not-an-installed-tool")
	result, err := r.Run(context.Background(), t.TempDir(), "build")
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestRunner_Run_CapturesStderr(t *testing.T) {
	skipOnWindows(t)

	r := NewRunner("sh")
	// sh install fails (advisory); "sh run build" fails too, but the
	// stderr lines land in the output either way.
	result, err := r.Run(context.Background(), t.TempDir(), "build")
	require.NoError(t, err)

	assert.False(t, result.Succeeded())
	var sawStderr bool
	for _, line := range result.Output {
		if len(line) >= 9 && line[:9] == "[STDERR] " {
			sawStderr = true
		}
	}
	assert.True(t, sawStderr, "stderr lines should be captured: %v", result.Output)
}

func TestRunner_Run_Cancelled(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner("sleep")
	result, err := r.Run(ctx, t.TempDir(), "5")
	// The cancelled context kills the subprocess; either a start error or
	// a non-zero exit is acceptable, but it must not hang or succeed.
	if err == nil {
		assert.False(t, result.Succeeded())
	}
}
