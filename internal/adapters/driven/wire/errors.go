package wire

import (
	"fmt"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
)

// APIError is a transport failure: the service answered with a non-200
// status. The body is not consulted; a failed request carries no usable
// protocol envelope.
type APIError struct {
	// StatusCode is the HTTP status returned.
	StatusCode int

	// URL is the request URL.
	URL string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("transport error: status %d from %s", e.StatusCode, e.URL)
}

// Is classifies APIError under domain.ErrTransport for errors.Is checks.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrTransport
}
