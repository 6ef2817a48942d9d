package ledger_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/sophie/internal/domain"
	"github.com/davidbz/sophie/internal/ledger"
)

func TestUsageLog_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "usage.csv")
	log := ledger.NewUsageLog(path)

	records := []domain.UsageRecord{
		{Time: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), User: "alice", Model: "model-a", Cost: 0.0032},
		{Time: time.Date(2025, 3, 1, 10, 5, 0, 0, time.UTC), User: "bob", Model: "model-b", Cost: 0},
		{Time: time.Date(2025, 3, 1, 10, 9, 0, 0, time.UTC), User: "alice", Model: "model-a", Cost: 0.015},
	}
	for _, rec := range records {
		require.NoError(t, log.Record(ctx, rec))
	}

	loaded, err := log.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, records, loaded)
}

func TestUsageLog_HeaderWrittenOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "usage.csv")
	log := ledger.NewUsageLog(path)

	rec := domain.UsageRecord{Time: time.Now().UTC().Truncate(time.Second), User: "alice", Model: "model-a", Cost: 0.01}
	require.NoError(t, log.Record(ctx, rec))
	require.NoError(t, log.Record(ctx, rec))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "time,user,model,cost", lines[0])
}

func TestUsageLog_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "usage.csv")

	rec := domain.UsageRecord{Time: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), User: "alice", Model: "model-a", Cost: 0.5}
	require.NoError(t, ledger.NewUsageLog(path).Record(ctx, rec))

	// A fresh handle on the same file appends, not truncates.
	reopened := ledger.NewUsageLog(path)
	require.NoError(t, reopened.Record(ctx, rec))

	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
}

func TestUsageLog_MissingFileReadsEmpty(t *testing.T) {
	log := ledger.NewUsageLog(filepath.Join(t.TempDir(), "never-written.csv"))

	loaded, err := log.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestUsageLog_Validation(t *testing.T) {
	ctx := context.Background()
	log := ledger.NewUsageLog(filepath.Join(t.TempDir(), "usage.csv"))

	now := time.Now()
	require.Error(t, log.Record(ctx, domain.UsageRecord{Time: now, Model: "model-a", Cost: 0.1}))
	require.Error(t, log.Record(ctx, domain.UsageRecord{Time: now, User: "alice", Cost: 0.1}))
	require.Error(t, log.Record(ctx, domain.UsageRecord{Time: now, User: "alice", Model: "model-a", Cost: -0.1}))

	loaded, err := log.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestFeedbackLog_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "feedback.csv")
	log := ledger.NewFeedbackLog(path)

	records := []domain.FeedbackRecord{
		{Time: time.Date(2025, 3, 1, 10, 1, 0, 0, time.UTC), User: "alice", Model: "model-a", Rating: 4, Comment: "helpful"},
		{Time: time.Date(2025, 3, 1, 10, 6, 0, 0, time.UTC), User: "bob", Model: "model-a", Rating: 2, Comment: ""},
		{Time: time.Date(2025, 3, 1, 10, 8, 0, 0, time.UTC), User: "bob", Model: "model-b", Rating: 5, Comment: "with, a comma"},
	}
	for _, rec := range records {
		require.NoError(t, log.Record(ctx, rec))
	}

	loaded, err := log.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, records, loaded)
}

func TestFeedbackLog_RatingRange(t *testing.T) {
	ctx := context.Background()
	log := ledger.NewFeedbackLog(filepath.Join(t.TempDir(), "feedback.csv"))

	now := time.Now()
	require.Error(t, log.Record(ctx, domain.FeedbackRecord{Time: now, User: "alice", Model: "model-a", Rating: 0}))
	require.Error(t, log.Record(ctx, domain.FeedbackRecord{Time: now, User: "alice", Model: "model-a", Rating: 6}))
	require.NoError(t, log.Record(ctx, domain.FeedbackRecord{Time: now, User: "alice", Model: "model-a", Rating: 1}))
	require.NoError(t, log.Record(ctx, domain.FeedbackRecord{Time: now, User: "alice", Model: "model-a", Rating: 5}))
}
