package scan

import (
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLintCommand(t *testing.T) {
	cmd := LintCommand()
	assert.Contains(t, cmd, "eslint . --quiet --format=json")
	if runtime.GOOS == "windows" {
		assert.True(t, strings.HasPrefix(cmd, "npx.cmd "))
	} else {
		assert.True(t, strings.HasPrefix(cmd, "npx "))
	}
}

func TestRunner_CapturesExitCodeAndStreams(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exercises sh")
	}
	r := &Runner{Command: "echo out; echo err 1>&2; exit 3", Timeout: time.Minute}

	res, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
}

func TestRunner_ZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exercises sh")
	}
	r := &Runner{Command: "true", Timeout: time.Minute}

	res, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Empty(t, res.Stdout)
}

func TestRunner_TimeoutKillsProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exercises sh")
	}
	// The compound command makes sh fork: the kill hits the shell while
	// the sleep child keeps the inherited pipes open.
	r := &Runner{Command: "sleep 5; echo late", Timeout: 100 * time.Millisecond}

	start := time.Now()
	res, err := r.Run()
	elapsed := time.Since(start)

	require.NoError(t, err)
	// Killed by the deadline, which surfaces as the -1 pseudo code.
	assert.Equal(t, -1, res.ExitCode)
	assert.Empty(t, res.Stdout)
	assert.Less(t, elapsed, 3*time.Second)
}

func TestRunner_DetachedChildDoesNotStall(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exercises sh")
	}
	// The backgrounded sleep outlives the shell with the pipes still
	// open; the captured output must come back long before it exits.
	r := &Runner{Command: "sleep 5 & echo done", Timeout: time.Minute}

	start := time.Now()
	res, err := r.Run()
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "done\n", res.Stdout)
	assert.Less(t, elapsed, 3*time.Second)
}
