// Package task runs project build tasks as subprocesses, capturing their
// output for the launch step log. Tasks are delegated to the project's
// configured tool ("bun run <task>" by default); dependency installation
// runs first and is advisory - a failed install is logged, not fatal.
package task

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"

	"github.com/pagelift/pagelift-cli/internal/core/ports/driven"
	"github.com/pagelift/pagelift-cli/internal/logger"
)

// Ensure Runner implements the interface.
var _ driven.TaskRunner = (*Runner)(nil)

// Runner executes named tasks with an external tool.
type Runner struct {
	tool string
}

// NewRunner creates a task runner for the given tool command.
func NewRunner(tool string) *Runner {
	return &Runner{tool: tool}
}

// Run installs dependencies and then executes the task in dir, blocking
// until it exits. The returned result carries the task's exit code and
// captured output lines; a non-nil error means the task never ran.
func (r *Runner) Run(ctx context.Context, dir, taskName string) (*driven.TaskResult, error) {
	output := []string{fmt.Sprintf("[INFO] Running %s install...", r.tool)}

	installOut, installCode, err := r.capture(ctx, dir, "install")
	output = append(output, installOut...)
	switch {
	case err != nil:
		output = append(output, fmt.Sprintf("[WARN] Failed to run %s install: %v", r.tool, err))
	case installCode != 0:
		output = append(output, fmt.Sprintf("[WARN] %s install completed with errors, continuing anyway...", r.tool))
	default:
		output = append(output, "[INFO] Dependencies installed successfully")
	}

	output = append(output, fmt.Sprintf("[INFO] Running task %q...", taskName))
	taskOut, exitCode, err := r.capture(ctx, dir, "run", taskName)
	output = append(output, taskOut...)
	if err != nil {
		return nil, fmt.Errorf("start task %q: %w", taskName, err)
	}

	return &driven.TaskResult{ExitCode: exitCode, Output: output}, nil
}

// capture runs one subprocess and collects its stdout and stderr lines.
// The returned error covers start failures only; an exited process is
// reported through the exit code.
func (r *Runner) capture(ctx context.Context, dir string, args ...string) ([]string, int, error) {
	cmd := exec.CommandContext(ctx, r.tool, args...)
	cmd.Dir = dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, 0, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, 0, err
	}

	var mu sync.Mutex
	var lines []string
	var wg sync.WaitGroup
	collect := func(prefix string, s *bufio.Scanner) {
		defer wg.Done()
		for s.Scan() {
			mu.Lock()
			lines = append(lines, prefix+s.Text())
			mu.Unlock()
		}
	}

	if err := cmd.Start(); err != nil {
		return nil, 0, err
	}
	wg.Add(2)
	go collect("", bufio.NewScanner(stdout))
	go collect("[STDERR] ", bufio.NewScanner(stderr))
	wg.Wait()

	err = cmd.Wait()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return lines, 0, nil
	case errors.As(err, &exitErr):
		logger.Debug("Task %v exited with code %d", args, exitErr.ExitCode())
		return lines, exitErr.ExitCode(), nil
	default:
		return lines, 0, err
	}
}
