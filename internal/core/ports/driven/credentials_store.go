package driven

import (
	"context"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
)

// CredentialsStore persists bearer tokens keyed by hosting-service identity.
type CredentialsStore interface {
	// Save stores credentials. Creates if new, updates if exists.
	Save(ctx context.Context, creds domain.Credentials) error

	// Get retrieves credentials for a hosting service.
	// Returns domain.ErrNotFound if none are stored.
	Get(ctx context.Context, service string) (*domain.Credentials, error)

	// Delete removes credentials for a hosting service.
	Delete(ctx context.Context, service string) error

	// List returns all stored credentials.
	List(ctx context.Context) ([]domain.Credentials, error)
}
