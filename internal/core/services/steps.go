package services

import (
	"fmt"
	"time"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
)

// stepLog tracks the ordered launch steps of one publish attempt and
// emits a snapshot on every mutation. Steps are append-or-replace by
// title: beginning a title that already exists replaces the most recent
// step with that title, so consumers see one row per logical phase.
type stepLog struct {
	steps []domain.LaunchStep
	// current is the index of the step most recently begun. A restarted
	// title keeps its original position, so the active step is not
	// necessarily the last element.
	current int
	events  chan<- domain.LaunchStep
}

// begin starts (or restarts) the step with the given title and makes it
// the active step.
func (l *stepLog) begin(title string) {
	step := domain.LaunchStep{
		Title:     title,
		Status:    domain.StepRunning,
		StartedAt: time.Now(),
	}
	for i := len(l.steps) - 1; i >= 0; i-- {
		if l.steps[i].Title == title {
			l.steps[i] = step
			l.current = i
			l.emit(i)
			return
		}
	}
	l.steps = append(l.steps, step)
	l.current = len(l.steps) - 1
	l.emit(l.current)
}

// active returns the step currently in progress.
func (l *stepLog) active() *domain.LaunchStep {
	return &l.steps[l.current]
}

// logf appends a formatted line to the active step's log.
func (l *stepLog) logf(format string, args ...any) {
	step := l.active()
	step.Log = append(step.Log, fmt.Sprintf(format, args...))
	l.emit(l.current)
}

// lines appends raw output lines to the active step's log.
func (l *stepLog) lines(out []string) {
	if len(out) == 0 {
		return
	}
	step := l.active()
	step.Log = append(step.Log, out...)
	l.emit(l.current)
}

// pause suspends the active step while waiting on user input.
func (l *stepLog) pause(message string) {
	step := l.active()
	step.Status = domain.StepPaused
	step.Message = message
	l.emit(l.current)
}

// resume puts a paused step back into the running state.
func (l *stepLog) resume() {
	step := l.active()
	step.Status = domain.StepRunning
	step.Message = ""
	l.emit(l.current)
}

// complete marks the active step as finished.
func (l *stepLog) complete() {
	step := l.active()
	step.Status = domain.StepCompleted
	step.EndedAt = time.Now()
	l.emit(l.current)
}

// fail marks the active step as failed with a message.
func (l *stepLog) fail(message string) {
	if len(l.steps) == 0 {
		return
	}
	step := l.active()
	step.Status = domain.StepFailed
	step.Message = message
	step.EndedAt = time.Now()
	l.emit(l.current)
}

// snapshot returns a deep copy of all steps so far.
func (l *stepLog) snapshot() []domain.LaunchStep {
	out := make([]domain.LaunchStep, len(l.steps))
	for i, step := range l.steps {
		out[i] = step.Clone()
	}
	return out
}

// emit sends a snapshot of one step on the event channel.
func (l *stepLog) emit(i int) {
	if l.events == nil {
		return
	}
	l.events <- l.steps[i].Clone()
}
