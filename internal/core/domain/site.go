package domain

import (
	"fmt"
	"time"
)

// SiteStatus tracks the publication state of a site.
type SiteStatus string

const (
	// SiteIdle means no publish attempt is in flight.
	SiteIdle SiteStatus = "idle"
	// SiteRunning means a publish attempt is in progress.
	SiteRunning SiteStatus = "running"
	// SiteSucceeded means the last publish attempt completed.
	SiteSucceeded SiteStatus = "succeeded"
	// SiteFailed means the last publish attempt failed.
	SiteFailed SiteStatus = "failed"
)

// Site is a named publication target belonging to a project: a domain on a
// hosting service, published via the content-addressed protocol.
type Site struct {
	// Name identifies the site within its project (e.g. "production").
	Name string

	// Domain is the target domain the bundle is published under.
	Domain string

	// Service is the hosting-service identity, used to look up credentials.
	Service string

	// TeamID is an optional pre-configured team scope. When empty and the
	// service demands one, the interactive team flow resolves it.
	TeamID string

	// Status is the current publication state.
	Status SiteStatus

	// Steps is the ordered sequence of launch steps from the most recent
	// publish attempt.
	Steps []LaunchStep
}

// LaunchKey derives the identity under which a publish attempt is tracked
// for cancellation. Attempts for distinct project/site pairs are independent.
func LaunchKey(projectPath, siteName string) string {
	return fmt.Sprintf("%s::%s", projectPath, siteName)
}

// StepStatus tracks the state of a single launch step.
type StepStatus string

const (
	// StepPending means the step has not started yet.
	StepPending StepStatus = "pending"
	// StepRunning means the step is in progress.
	StepRunning StepStatus = "running"
	// StepPaused means the step is suspended waiting on user input.
	StepPaused StepStatus = "paused"
	// StepCompleted means the step finished successfully.
	StepCompleted StepStatus = "completed"
	// StepFailed means the step failed and stopped the attempt.
	StepFailed StepStatus = "failed"
)

// LaunchStep is one logical phase of a publish attempt. Steps are
// append-or-replace by title: the launcher either appends a new step or
// replaces the most recent step sharing the title, so a consumer always
// sees one row per phase even though a step mutates many times while
// running.
type LaunchStep struct {
	// Title is the phase name (e.g. "Discover", "Upload").
	Title string

	// Status is the current step state.
	Status StepStatus

	// Message is an optional human-readable summary, set on pause or failure.
	Message string

	// Log holds the step's output lines in order.
	Log []string

	// StartedAt is when the step began.
	StartedAt time.Time

	// EndedAt is when the step completed or failed. Zero while running.
	EndedAt time.Time
}

// Clone returns a deep copy of the step. Emitted snapshots must not share
// the launcher's log slice.
func (s LaunchStep) Clone() LaunchStep {
	out := s
	out.Log = make([]string, len(s.Log))
	copy(out.Log, s.Log)
	return out
}

// ResultKind classifies the outcome of a publish attempt.
type ResultKind string

const (
	// ResultSucceeded means the bundle was finalized as the live snapshot.
	ResultSucceeded ResultKind = "succeeded"
	// ResultFailed means the attempt stopped on an error.
	ResultFailed ResultKind = "failed"
	// ResultCancelled means the attempt was aborted by the user. Consumers
	// should not present this as an error.
	ResultCancelled ResultKind = "cancelled"
)

// LaunchResult is the final outcome of one publish attempt.
type LaunchResult struct {
	// Kind classifies the outcome.
	Kind ResultKind

	// Message is a human-readable outcome summary.
	Message string

	// Err holds the terminal error for failed attempts. Nil on success
	// and cancellation.
	Err error
}

// Succeeded reports whether the attempt finalized a new snapshot.
func (r LaunchResult) Succeeded() bool {
	return r.Kind == ResultSucceeded
}
