package service

import (
	"context"
	"fmt"
	"time"

	"bid-leveler/internal/dto"
	"bid-leveler/internal/models"
	"bid-leveler/internal/preprocess"
	"bid-leveler/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UsageService records token usage. It is the preprocess.UsageRecorder of the running service.
type UsageService struct {
	usageRepo UsageStore
	logger    *zap.Logger
}

var _ preprocess.UsageRecorder = (*UsageService)(nil)

func NewUsageService(usageRepo UsageStore, logger *zap.Logger) *UsageService {
	return &UsageService{
		usageRepo: usageRepo,
		logger:    logger,
	}
}

// Record updates the counters and stores the event. Storage failures are logged and
// never reach the caller.
func (s *UsageService) Record(ctx context.Context, event preprocess.UsageEvent) {
	metrics.ObserveUsage(metrics.Usage{
		Operation:        event.Operation,
		Documents:        event.Documents,
		OriginalTokens:   event.OriginalTokens,
		ProcessedTokens:  event.ProcessedTokens,
		PromptTokens:     event.PromptTokens,
		CompletionTokens: event.CompletionTokens,
	})

	row := &models.UsageEvent{
		ID:               uuid.New(),
		Operation:        event.Operation,
		Model:            event.Model,
		Documents:        event.Documents,
		OriginalTokens:   event.OriginalTokens,
		ProcessedTokens:  event.ProcessedTokens,
		PromptTokens:     event.PromptTokens,
		CompletionTokens: event.CompletionTokens,
		OccurredAt:       event.OccurredAt,
	}
	if row.OccurredAt.IsZero() {
		row.OccurredAt = time.Now()
	}

	userID, projectID := parseOptionalID(event.UserID), parseOptionalID(event.ProjectID)
	if scope, ok := usageScopeFrom(ctx); ok {
		if userID == nil && scope.userID != uuid.Nil {
			userID = &scope.userID
		}
		if projectID == nil && scope.projectID != uuid.Nil {
			projectID = &scope.projectID
		}
	}
	row.UserID, row.ProjectID = userID, projectID

	// The request may already be finished; the event must still be stored.
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.usageRepo.Create(storeCtx, row); err != nil {
		s.logger.Error("Failed to store usage event",
			zap.String("operation", event.Operation),
			zap.Error(err),
		)
	}
}

// Summary returns the user's usage per operation since the given time (zero means all time).
func (s *UsageService) Summary(ctx context.Context, userID uuid.UUID, since time.Time) (*dto.UsageSummaryResponse, error) {
	totals, err := s.usageRepo.TotalsByUser(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage: %w", err)
	}

	resp := &dto.UsageSummaryResponse{Operations: make([]dto.UsageTotalsResponse, 0, len(totals))}
	if !since.IsZero() {
		resp.Since = formatTime(since)
	}
	for _, t := range totals {
		resp.Operations = append(resp.Operations, dto.UsageTotalsResponse{
			Operation:        t.Operation,
			Events:           t.Events,
			Documents:        t.Documents,
			OriginalTokens:   t.OriginalTokens,
			ProcessedTokens:  t.ProcessedTokens,
			PromptTokens:     t.PromptTokens,
			CompletionTokens: t.CompletionTokens,
		})
		resp.TotalTokens += t.PromptTokens + t.CompletionTokens
	}
	return resp, nil
}

func parseOptionalID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
