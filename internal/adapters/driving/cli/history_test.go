package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelift/pagelift-cli/internal/adapters/driven/storage/memory"
	"github.com/pagelift/pagelift-cli/internal/core/domain"
)

func configureHistory(t *testing.T, records ...domain.LaunchRecord) {
	t.Helper()
	store := memory.NewHistoryStore()
	for _, rec := range records {
		require.NoError(t, store.Record(context.Background(), rec))
	}
	historyStore = store
	t.Cleanup(func() { historyStore = nil })
}

func TestHistoryCommand_Empty(t *testing.T) {
	configureHistory(t)

	out, err := executeCommand(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No publish attempts recorded.")
}

func TestHistoryCommand_ListsRecords(t *testing.T) {
	configureHistory(t, domain.LaunchRecord{
		ID:        "rec-1",
		Project:   "demo",
		Site:      "prod",
		Domain:    "demo.example.com",
		Result:    domain.ResultSucceeded,
		Message:   "published to demo.example.com",
		StartedAt: time.Now(),
	})

	out, err := executeCommand(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "demo/prod -> demo.example.com")
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "published to demo.example.com")
}

func TestHistoryCommand_NotConfigured(t *testing.T) {
	historyStore = nil

	_, err := executeCommand(t, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history store not configured")
}
