package scan

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"codemap/internal/model"
)

// DefaultTimeout bounds the lint run. ESLint over a big tree takes tens
// of seconds; anything past two minutes is a hung npx.
const DefaultTimeout = 2 * time.Minute

// waitDelay bounds how long the captured pipes may stay open once the
// shell has exited or been killed. npx hands the real work to a child
// process that inherits the pipes; an abandoned child would otherwise
// hold Run open until it exits on its own.
const waitDelay = time.Second

// Runner executes the lint command through the platform shell and
// captures both streams.
type Runner struct {
	Command string
	Timeout time.Duration
}

func NewRunner() *Runner {
	return &Runner{Command: LintCommand(), Timeout: DefaultTimeout}
}

// LintCommand returns the ESLint invocation for this platform. npx
// resolves the project-local install; --quiet keeps warnings out so the
// report carries errors only.
func LintCommand() string {
	if runtime.GOOS == "windows" {
		return "npx.cmd eslint . --quiet --format=json"
	}
	return "npx eslint . --quiet --format=json"
}

// Run executes the command and returns its streams and exit code. A
// nonzero exit is data, not an error: ESLint exits 1 whenever it finds
// problems, and the problems are the whole point of the scan. Only a
// failure to launch at all comes back as an error. A timeout kills the
// shell, forces the pipes shut and surfaces as exit code -1.
func (r *Runner) Run() (model.CommandResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.Timeout)
	defer cancel()

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", r.Command)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", r.Command)
	}
	// The context kill reaches only the shell itself; WaitDelay closes
	// the inherited pipes so a surviving child cannot keep the run
	// alive past the deadline.
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	// Both streams are decoded as UTF-8, invalid sequences replaced.
	res := model.CommandResult{
		Stdout: strings.ToValidUTF8(stdout.String(), "�"),
		Stderr: strings.ToValidUTF8(stderr.String(), "�"),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		// The shell exited cleanly but something it spawned still held
		// the pipes when waitDelay expired. Use what was captured.
		if errors.Is(err, exec.ErrWaitDelay) {
			res.ExitCode = cmd.ProcessState.ExitCode()
			return res, nil
		}
		return res, err
	}
	res.ExitCode = cmd.ProcessState.ExitCode()
	return res, nil
}
