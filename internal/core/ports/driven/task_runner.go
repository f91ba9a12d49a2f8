package driven

import "context"

// TaskResult is the outcome of running a project task to completion.
type TaskResult struct {
	// ExitCode is the task process exit code.
	ExitCode int

	// Output holds captured stdout and stderr lines in arrival order.
	Output []string
}

// Succeeded reports whether the task exited zero.
func (r *TaskResult) Succeeded() bool {
	return r.ExitCode == 0
}

// TaskRunner starts a named task for a project directory and waits for it.
// The runner owns the subprocess lifecycle; the launcher only consumes the
// completion result.
type TaskRunner interface {
	// Run executes the task in dir and blocks until it exits or ctx is
	// cancelled. A non-nil error means the task could not be run at all;
	// a task that ran and exited non-zero is reported via the result.
	Run(ctx context.Context, dir, task string) (*TaskResult, error)
}
