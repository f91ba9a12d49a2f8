package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testRecord(id string, started time.Time) domain.LaunchRecord {
	return domain.LaunchRecord{
		ID:         id,
		Project:    "demo",
		Site:       "prod",
		Domain:     "demo.example.com",
		Result:     domain.ResultSucceeded,
		Message:    "published to demo.example.com",
		BundleHash: "ab12",
		StartedAt:  started,
		EndedAt:    started.Add(3 * time.Second),
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store := newTestStore(t)
	assert.NotEmpty(t, store.Path())
}

func TestStore_RecordAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("rec-1", time.Now().UTC().Truncate(time.Second))
	require.NoError(t, store.Record(ctx, rec))

	records, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Project, got.Project)
	assert.Equal(t, rec.Site, got.Site)
	assert.Equal(t, rec.Domain, got.Domain)
	assert.Equal(t, domain.ResultSucceeded, got.Result)
	assert.Equal(t, rec.Message, got.Message)
	assert.Equal(t, rec.BundleHash, got.BundleHash)
}

func TestStore_ListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		rec := testRecord(fmt.Sprintf("rec-%d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.Record(ctx, rec))
	}

	records, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "rec-2", records[0].ID)
	assert.Equal(t, "rec-0", records[2].ID)
}

func TestStore_ListLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, testRecord(fmt.Sprintf("rec-%d", i), base.Add(time.Duration(i)*time.Minute))))
	}

	records, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5, "non-positive limit uses the default")
}

func TestStore_RecordUpsertsByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("rec-1", time.Now().UTC())
	rec.Result = domain.ResultFailed
	require.NoError(t, store.Record(ctx, rec))

	rec.Result = domain.ResultSucceeded
	rec.Message = "second attempt"
	require.NoError(t, store.Record(ctx, rec))

	records, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.ResultSucceeded, records[0].Result)
	assert.Equal(t, "second attempt", records[0].Message)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, testRecord("rec-1", time.Now().UTC())))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "rec-1", records[0].ID)
}
