package driven

import (
	"context"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
)

// RequestScope carries the fields present on every protocol request:
// the bearer credential, the optional team scope, and the target domain.
type RequestScope struct {
	// Credential is the bearer token, always sent as field 1.
	Credential string

	// TeamID is the team scope, sent as field 2 when non-empty.
	TeamID string

	// Domain is the destination domain.
	Domain string
}

// SuggestResponse is the server's verdict on a proposed bundle.
type SuggestResponse struct {
	// Present reports whether the server already knows the whole bundle.
	Present bool

	// Missing lists hex-encoded content hashes the server lacks.
	Missing []string

	// Errors, Warnings and Messages are protocol-reported diagnostics.
	// Only the team-required marker in Errors changes control flow.
	Errors   []string
	Warnings []string
	Messages []string
}

// BundleUploadResponse is the result of uploading a whole serialized bundle.
type BundleUploadResponse struct {
	// BundleID is the server-assigned identifier to finalize with.
	BundleID []byte

	// Missing lists hex-encoded content hashes still needed.
	Missing []string

	// Errors, Warnings and Messages are protocol-reported diagnostics.
	Errors   []string
	Warnings []string
	Messages []string
}

// FinalizeResponse is the result of committing a bundle as the live snapshot.
type FinalizeResponse struct {
	// Committed reports whether the bundle is now the live snapshot.
	Committed bool

	// Errors, Warnings and Messages are protocol-reported diagnostics.
	Errors   []string
	Warnings []string
	Messages []string
}

// PublishAPI is the wire protocol against one discovered endpoint.
// Implementations return domain.ErrTransport-classified errors for any
// non-200 response; protocol-reported errors travel in the response
// structs instead.
type PublishAPI interface {
	// Suggest proposes a bundle identifier to the destination.
	Suggest(ctx context.Context, scope RequestScope, bundleHash []byte) (*SuggestResponse, error)

	// UploadBundle uploads the whole serialized bundle tree.
	UploadBundle(ctx context.Context, scope RequestScope, encoded []byte) (*BundleUploadResponse, error)

	// UploadMissing uploads one chunk of raw content blobs.
	UploadMissing(ctx context.Context, scope RequestScope, blobs [][]byte) error

	// Finalize commits the bundle as the live snapshot for the domain.
	Finalize(ctx context.Context, scope RequestScope, bundleID []byte) (*FinalizeResponse, error)

	// Teams fetches the team scopes available to the credential.
	Teams(ctx context.Context, scope RequestScope) (*domain.TeamList, error)
}

// ClientFactory builds a PublishAPI bound to a discovered base URL.
type ClientFactory interface {
	// New returns a client for the endpoint.
	New(endpoint *domain.Endpoint) PublishAPI
}

// Discoverer resolves a hosting-service domain to a protocol endpoint by
// fetching its well-known metadata document.
type Discoverer interface {
	// Discover fetches and validates the well-known document for a domain.
	// Failures are classified under domain.ErrDiscovery.
	Discover(ctx context.Context, siteDomain string) (*domain.Endpoint, error)
}
