package service

import (
	"context"
	"encoding/json"
	"testing"

	"bid-leveler/internal/dto"
	"bid-leveler/internal/preprocess"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestPreprocessService_Budget(t *testing.T) {
	svc := NewPreprocessService(preprocess.New(), 6000, zaptest.NewLogger(t))

	b := svc.budget(nil)
	assert.Equal(t, 6000, b.MaxContentLength)
	assert.True(t, b.RemoveBoilerplate)
	assert.False(t, b.KeepLegal)

	maxLen, off, on := 800, false, true
	b = svc.budget(&dto.PreprocessBudget{MaxContentLength: &maxLen, RemoveBoilerplate: &off, KeepLegal: &on})
	assert.Equal(t, 800, b.MaxContentLength)
	assert.False(t, b.RemoveBoilerplate)
	assert.True(t, b.ExtractKeyInfo)
	assert.True(t, b.SummarizeLongSections)
	assert.True(t, b.KeepLegal)
}

func TestPreprocessService_Preprocess(t *testing.T) {
	store := &memUsageStore{}
	usage := NewUsageService(store, zaptest.NewLogger(t))
	svc := NewPreprocessService(preprocess.New(preprocess.WithRecorder(usage)), 0, zaptest.NewLogger(t))
	user := uuid.New()

	var req dto.PreprocessRequest
	require.NoError(t, json.Unmarshal([]byte(`{"documents":[
		{"name":"a","content":"Total Project Estimated Cost: $82,300,000"},
		{"name":"b","content":42},
		{"name":"c"}
	]}`), &req))

	results := svc.Preprocess(context.Background(), user, &req)
	require.Len(t, results, 3)
	assert.Equal(t, "Total Project Estimated Cost: $82,300,000", results[0].Content)
	assert.Empty(t, results[0].Error)
	assert.Equal(t, preprocess.ErrMissingContent.Error(), results[1].Error)
	assert.Equal(t, preprocess.ErrMissingContent.Error(), results[2].Error)

	events := store.snapshot()
	require.Len(t, events, 1)
	require.NotNil(t, events[0].UserID)
	assert.Equal(t, user, *events[0].UserID)
	assert.Nil(t, events[0].ProjectID)
	assert.Equal(t, 3, events[0].Documents)
}
