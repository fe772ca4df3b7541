package service

import (
	"context"
	"testing"
	"time"

	"bid-leveler/internal/preprocess"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestUsageService_RecordAttribution(t *testing.T) {
	store := &memUsageStore{}
	svc := NewUsageService(store, zaptest.NewLogger(t))
	user, project, explicit := uuid.New(), uuid.New(), uuid.New()

	svc.Record(WithUsageScope(context.Background(), user, project), preprocess.UsageEvent{
		Operation:      preprocess.OperationPreprocess,
		Documents:      3,
		OriginalTokens: 900,
	})
	svc.Record(WithUsageScope(context.Background(), user, uuid.Nil), preprocess.UsageEvent{
		Operation: OperationCompare,
		UserID:    explicit.String(),
	})
	svc.Record(context.Background(), preprocess.UsageEvent{Operation: "cli"})

	events := store.snapshot()
	require.Len(t, events, 3)

	require.NotNil(t, events[0].UserID)
	require.NotNil(t, events[0].ProjectID)
	assert.Equal(t, user, *events[0].UserID)
	assert.Equal(t, project, *events[0].ProjectID)
	assert.False(t, events[0].OccurredAt.IsZero())

	require.NotNil(t, events[1].UserID)
	assert.Equal(t, explicit, *events[1].UserID)
	assert.Nil(t, events[1].ProjectID)

	assert.Nil(t, events[2].UserID)
}

func TestUsageService_RecordSurvivesStoreFailure(t *testing.T) {
	store := &memUsageStore{err: errStoreDown}
	svc := NewUsageService(store, zaptest.NewLogger(t))

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), preprocess.UsageEvent{Operation: OperationCompare})
	})
	assert.Empty(t, store.snapshot())
}

func TestUsageService_RecordAfterCancel(t *testing.T) {
	store := &memUsageStore{}
	svc := NewUsageService(store, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Record(ctx, preprocess.UsageEvent{Operation: OperationCompare})

	assert.Len(t, store.snapshot(), 1)
}

func TestUsageService_Summary(t *testing.T) {
	store := &memUsageStore{}
	svc := NewUsageService(store, zaptest.NewLogger(t))
	user := uuid.New()
	ctx := WithUsageScope(context.Background(), user, uuid.Nil)

	svc.Record(ctx, preprocess.UsageEvent{Operation: OperationCompare, Documents: 2, PromptTokens: 1000, CompletionTokens: 250})
	svc.Record(ctx, preprocess.UsageEvent{Operation: OperationCompare, Documents: 3, PromptTokens: 500, CompletionTokens: 100})
	svc.Record(ctx, preprocess.UsageEvent{Operation: preprocess.OperationPreprocess, Documents: 5, OriginalTokens: 4000, ProcessedTokens: 1500})

	summary, err := svc.Summary(context.Background(), user, time.Time{})
	require.NoError(t, err)

	require.Len(t, summary.Operations, 2)
	assert.Empty(t, summary.Since)
	assert.Equal(t, OperationCompare, summary.Operations[0].Operation)
	assert.Equal(t, 2, summary.Operations[0].Events)
	assert.Equal(t, 5, summary.Operations[0].Documents)
	assert.Equal(t, 1850, summary.TotalTokens)

	other, err := svc.Summary(context.Background(), uuid.New(), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, other.Operations)
	assert.NotEmpty(t, other.Since)
}
