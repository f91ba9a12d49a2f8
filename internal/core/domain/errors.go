package domain

import "errors"

// Domain errors represent publish failures the launcher distinguishes.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfig indicates the project configuration is malformed,
	// e.g. a declared publish directory that does not exist.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrCancelled indicates the publish attempt was aborted by the user.
	// Consumers must not present this as a failure.
	ErrCancelled = errors.New("cancelled")

	// ErrDiscovery indicates the hosting service's well-known protocol
	// document was unreachable, unparsable or incompatible.
	ErrDiscovery = errors.New("protocol discovery failed")

	// ErrTransport indicates a network-level failure: a non-200 status,
	// timeout or connection abort. Always fatal for the current attempt.
	ErrTransport = errors.New("transport error")

	// ErrTeamRequired indicates the destination demands a team scope.
	// Intercepted during Suggest; a logic error anywhere later.
	ErrTeamRequired = errors.New("destination requires a team scope")

	// ErrTeamUnresolved indicates the team scope could not be resolved:
	// no interactive resolver is available or the user declined.
	ErrTeamUnresolved = errors.New(
		"this destination requires a team id; configure one or provide an interactive resolver")

	// ErrMissingContent indicates the server asked for a hash absent from
	// the content table. A bundling bug, never recoverable.
	ErrMissingContent = errors.New("content missing from bundle table")

	// ErrBuildFailed indicates the project's build task exited non-zero.
	ErrBuildFailed = errors.New("build task failed")
)
