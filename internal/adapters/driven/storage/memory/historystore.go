// Package memory provides in-memory implementations of driven port
// interfaces, used in tests and as a fallback when persistent storage is
// unavailable.
package memory

import (
	"context"
	"sync"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
	"github.com/pagelift/pagelift-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu      sync.RWMutex
	records []domain.LaunchRecord
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Record stores one launch record, replacing any record with the same ID.
func (s *HistoryStore) Record(_ context.Context, record domain.LaunchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.records {
		if existing.ID == record.ID {
			s.records[i] = record
			return nil
		}
	}
	s.records = append(s.records, record)
	return nil
}

// List returns the most recent records, newest first.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.LaunchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.records) {
		limit = len(s.records)
	}

	out := make([]domain.LaunchRecord, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}
