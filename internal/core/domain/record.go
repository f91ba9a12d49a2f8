package domain

import "time"

// LaunchRecord is the persisted summary of one publish attempt, kept so
// past launches can be listed after the fact.
type LaunchRecord struct {
	// ID is the unique launch identifier (UUID).
	ID string

	// Project is the project name.
	Project string

	// Site is the site name within the project.
	Site string

	// Domain is the target domain published to.
	Domain string

	// Result classifies the outcome.
	Result ResultKind

	// Message is the final outcome summary.
	Message string

	// BundleHash is the hex-encoded bundle identifier, when one was
	// computed before the attempt ended.
	BundleHash string

	// StartedAt is when the attempt began.
	StartedAt time.Time

	// EndedAt is when the attempt finished.
	EndedAt time.Time
}
