package driven

import (
	"context"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
)

// HistoryStore persists the outcome of publish attempts.
type HistoryStore interface {
	// Record stores one launch record.
	Record(ctx context.Context, record domain.LaunchRecord) error

	// List returns the most recent records, newest first.
	List(ctx context.Context, limit int) ([]domain.LaunchRecord, error)
}
