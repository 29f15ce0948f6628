//go:build integration

package service

import (
	"context"
	"testing"
	"time"

	"github.com/milestonetrucks/voice-agent/internal/circuitbreaker"
	"github.com/milestonetrucks/voice-agent/internal/domain/model"
	"github.com/milestonetrucks/voice-agent/internal/repository"
	"github.com/milestonetrucks/voice-agent/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingService_Integration(t *testing.T) {
	ctx := context.Background()

	mongoContainer, err := testutil.SetupMongoDB(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, mongoContainer.Cleanup(ctx))
	}()

	db, err := repository.NewMongoDB(mongoContainer.URI, "test_voice_agent")
	require.NoError(t, err)
	defer func() {
		_ = db.Close(ctx)
	}()
	require.NoError(t, db.SetLogsTTL(ctx, 30))

	cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
	svc := NewLoggingService(repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), cb))

	t.Run("tool calls for one phone call", func(t *testing.T) {
		now := time.Now()
		require.NoError(t, svc.CreateLogs(ctx, []*model.LogEntry{
			{Timestamp: now.Add(-2 * time.Minute), Level: "info", Message: "Tool call", CallID: "call-1", Tool: "check-service-area", Outcome: "success"},
			{Timestamp: now.Add(-time.Minute), Level: "info", Message: "Tool call", CallID: "call-1", Tool: "calculate-materials", Outcome: "success"},
			{Timestamp: now, Level: "warn", Message: "Tool call", CallID: "call-2", Tool: "add-to-cart", Outcome: "validation_error"},
		}))

		entries, err := svc.QueryLogs(ctx, model.LogQueryOptions{CallID: "call-1"})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "calculate-materials", entries[0].Tool)
		assert.Equal(t, "check-service-area", entries[1].Tool)
	})

	t.Run("single entry with fields", func(t *testing.T) {
		entry := (&model.LogEntry{Level: "info", Message: "Tool call", RequestID: "req-fields", Tool: "prefill-checkout"}).
			WithField("prefilled_fields", 4)
		require.NoError(t, svc.CreateLog(ctx, entry))
		assert.False(t, entry.ID.IsZero())

		entries, err := svc.QueryLogs(ctx, model.LogQueryOptions{RequestID: "req-fields"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.EqualValues(t, 4, entries[0].Fields["prefilled_fields"])
	})

	t.Run("count", func(t *testing.T) {
		n, err := svc.CountLogs(ctx, model.LogQueryOptions{Level: "warn"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}
