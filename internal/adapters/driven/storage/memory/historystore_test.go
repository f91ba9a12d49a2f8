package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
)

func TestNewHistoryStore(t *testing.T) {
	store := NewHistoryStore()
	require.NotNil(t, store)
}

func TestHistoryStore_RecordAndList(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := store.Record(ctx, domain.LaunchRecord{
			ID:        fmt.Sprintf("rec-%d", i),
			Project:   "demo",
			Site:      "prod",
			Result:    domain.ResultSucceeded,
			StartedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	records, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "rec-2", records[0].ID, "newest first")
	assert.Equal(t, "rec-0", records[2].ID)
}

func TestHistoryStore_ListLimit(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, domain.LaunchRecord{ID: fmt.Sprintf("rec-%d", i)}))
	}

	records, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "rec-4", records[0].ID)

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5, "non-positive limit returns everything")
}

func TestHistoryStore_RecordReplacesByID(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, domain.LaunchRecord{ID: "rec-1", Result: domain.ResultFailed}))
	require.NoError(t, store.Record(ctx, domain.LaunchRecord{ID: "rec-1", Result: domain.ResultSucceeded}))

	records, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.ResultSucceeded, records[0].Result)
}

func TestHistoryStore_Empty(t *testing.T) {
	store := NewHistoryStore()
	records, err := store.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
