package domain

// ProtocolVersion is the publication protocol version this client speaks.
// Discovery fails when the service does not list it.
const ProtocolVersion = "0"

// Endpoint is the result of protocol discovery against a hosting service:
// the base API URL all publish calls are made against, plus the metadata
// the well-known document exposes.
type Endpoint struct {
	// Protocols lists the protocol versions the service supports.
	Protocols []string

	// BaseURL is the base API URL for publish calls.
	BaseURL string

	// KeyManagementURL points at the service's API-key management page.
	KeyManagementURL string
}
