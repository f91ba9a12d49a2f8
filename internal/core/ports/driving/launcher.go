package driving

import (
	"context"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
)

// LaunchRequest describes one publish attempt for one site.
type LaunchRequest struct {
	// Project is the project being published.
	Project *domain.Project

	// Site is the publication target.
	Site domain.Site

	// Credential is the bearer token for the site's hosting service.
	Credential string

	// Events receives an ordered stream of step snapshots: one send per
	// step mutation, append-or-replace by title. The launcher closes the
	// channel when the attempt completes. Nil disables progress events.
	Events chan<- domain.LaunchStep
}

// Launcher drives the publish state machine for a site: optional build,
// protocol discovery, bundle assembly, the suggest/upload/finalize
// exchange, and the interactive team sub-flow.
type Launcher interface {
	// Launch runs one publish attempt to completion. The returned result
	// distinguishes success, failure and user cancellation; Launch does
	// not return an error because every failure is part of the result.
	Launch(ctx context.Context, req LaunchRequest) domain.LaunchResult

	// Cancel aborts the in-flight attempt identified by the launch key
	// (domain.LaunchKey). It returns false when no such attempt exists.
	Cancel(key string) bool
}
