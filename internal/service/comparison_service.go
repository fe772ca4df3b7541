package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bid-leveler/internal/dto"
	"bid-leveler/internal/models"
	"bid-leveler/internal/preprocess"
	"bid-leveler/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OperationCompare is the usage event operation reported after each LLM comparison.
const OperationCompare = "compare"

type ComparisonService struct {
	projectRepo    ProjectStore
	bidRepo        BidStore
	comparisonRepo ComparisonStore
	preprocessor   *preprocess.Preprocessor
	analyzer       BidAnalyzer
	recorder       preprocess.UsageRecorder
	totalBudget    int
	logger         *zap.Logger
}

func NewComparisonService(
	projectRepo ProjectStore,
	bidRepo BidStore,
	comparisonRepo ComparisonStore,
	preprocessor *preprocess.Preprocessor,
	analyzer BidAnalyzer,
	recorder preprocess.UsageRecorder,
	totalBudget int,
	logger *zap.Logger,
) *ComparisonService {
	return &ComparisonService{
		projectRepo:    projectRepo,
		bidRepo:        bidRepo,
		comparisonRepo: comparisonRepo,
		preprocessor:   preprocessor,
		analyzer:       analyzer,
		recorder:       recorder,
		totalBudget:    totalBudget,
		logger:         logger,
	}
}

// Compare preprocesses every bid of the project under a shared character budget and asks
// the model to level them.
func (s *ComparisonService) Compare(ctx context.Context, ownerID, projectID uuid.UUID, req *dto.CompareRequest) (*dto.ComparisonResponse, error) {
	project, err := ownedProject(ctx, s.projectRepo, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	bids, err := s.bidRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}
	if len(bids) == 0 {
		return nil, ErrNoBids
	}

	total := s.totalBudget
	if req != nil && req.TotalBudget > 0 {
		total = req.TotalBudget
	}
	budget := preprocess.DefaultBudget()
	budget.MaxContentLength = preprocess.SplitBudget(total, len(bids))
	if req != nil {
		budget.KeepLegal = req.KeepLegal
	}

	docs := make([]preprocess.Document, len(bids))
	for i, b := range bids {
		docs[i] = preprocess.NewDocument(b.Contractor, b.ExtractedText)
	}

	ctx = WithUsageScope(ctx, ownerID, projectID)
	results := s.preprocessor.Preprocess(ctx, docs, budget)

	stats := make([]dto.BidPreprocessStats, len(bids))
	promptBids := make([]PromptBid, 0, len(bids))
	var originalTokens, processedTokens int
	for i, r := range results {
		stats[i] = dto.BidPreprocessStats{
			BidID:        bids[i].ID.String(),
			Contractor:   bids[i].Contractor,
			OriginalSize: r.OriginalSize,
			Stats:        r.Stats,
			Error:        r.Error,
		}
		originalTokens += r.Stats.OriginalTokens
		processedTokens += r.Stats.ProcessedTokens

		if r.Error != "" {
			s.logger.Warn("Bid skipped in comparison",
				zap.String("bid_id", bids[i].ID.String()),
				zap.String("error", r.Error),
			)
			continue
		}
		promptBids = append(promptBids, PromptBid{
			Contractor: bids[i].Contractor,
			FileName:   bids[i].FileName,
			Content:    r.Content,
		})
	}
	if len(promptBids) == 0 {
		return nil, ErrNoText
	}

	prompt := BuildComparisonPrompt(project.Name, promptBids)
	analysis, err := s.analyzer.CompareBids(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to compare bids: %w", err)
	}

	comparison := &models.Comparison{
		ID:               uuid.New(),
		ProjectID:        projectID,
		UserID:           ownerID,
		Model:            s.analyzer.Model(),
		Analysis:         analysis,
		BidCount:         len(promptBids),
		OriginalTokens:   originalTokens,
		ProcessedTokens:  processedTokens,
		PromptTokens:     preprocess.EstimateTokens(prompt),
		CompletionTokens: preprocess.EstimateTokens(analysis),
		CreatedAt:        time.Now(),
	}

	s.recorder.Record(ctx, preprocess.UsageEvent{
		Operation:        OperationCompare,
		Model:            comparison.Model,
		Documents:        comparison.BidCount,
		OriginalTokens:   comparison.OriginalTokens,
		ProcessedTokens:  comparison.ProcessedTokens,
		PromptTokens:     comparison.PromptTokens,
		CompletionTokens: comparison.CompletionTokens,
		OccurredAt:       comparison.CreatedAt,
	})

	if err := s.comparisonRepo.Create(ctx, comparison); err != nil {
		return nil, fmt.Errorf("failed to save comparison: %w", err)
	}

	s.logger.Info("Bids compared",
		zap.String("project_id", projectID.String()),
		zap.Int("bids", comparison.BidCount),
		zap.Int("prompt_tokens", comparison.PromptTokens),
		zap.Int("completion_tokens", comparison.CompletionTokens),
	)

	resp := toComparisonResponse(comparison)
	resp.Bids = stats
	resp.Leveling = Level(bids)
	return resp, nil
}

func (s *ComparisonService) List(ctx context.Context, ownerID, projectID uuid.UUID, limit int) ([]*dto.ComparisonResponse, error) {
	if _, err := ownedProject(ctx, s.projectRepo, ownerID, projectID); err != nil {
		return nil, err
	}

	comparisons, err := s.comparisonRepo.ListByProject(ctx, projectID, clampLimit(limit, 10, 50))
	if err != nil {
		return nil, fmt.Errorf("failed to list comparisons: %w", err)
	}

	resp := make([]*dto.ComparisonResponse, 0, len(comparisons))
	for _, c := range comparisons {
		resp = append(resp, toComparisonResponse(c))
	}
	return resp, nil
}

// Latest returns the most recent comparison together with the current leveling table.
func (s *ComparisonService) Latest(ctx context.Context, ownerID, projectID uuid.UUID) (*models.Project, *dto.ComparisonResponse, error) {
	project, err := ownedProject(ctx, s.projectRepo, ownerID, projectID)
	if err != nil {
		return nil, nil, err
	}

	comparison, err := s.comparisonRepo.Latest(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrComparisonNotFound
		}
		return nil, nil, fmt.Errorf("failed to get comparison: %w", err)
	}

	bids, err := s.bidRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list bids: %w", err)
	}

	resp := toComparisonResponse(comparison)
	resp.Leveling = Level(bids)
	return project, resp, nil
}

func toComparisonResponse(c *models.Comparison) *dto.ComparisonResponse {
	return &dto.ComparisonResponse{
		ID:               c.ID.String(),
		ProjectID:        c.ProjectID.String(),
		Model:            c.Model,
		Analysis:         c.Analysis,
		BidCount:         c.BidCount,
		OriginalTokens:   c.OriginalTokens,
		ProcessedTokens:  c.ProcessedTokens,
		PromptTokens:     c.PromptTokens,
		CompletionTokens: c.CompletionTokens,
		CreatedAt:        formatTime(c.CreatedAt),
	}
}
