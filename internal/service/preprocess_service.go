package service

import (
	"context"

	"bid-leveler/internal/dto"
	"bid-leveler/internal/preprocess"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PreprocessService exposes the preprocessor to API callers.
type PreprocessService struct {
	preprocessor     *preprocess.Preprocessor
	maxContentLength int
	logger           *zap.Logger
}

func NewPreprocessService(p *preprocess.Preprocessor, maxContentLength int, logger *zap.Logger) *PreprocessService {
	return &PreprocessService{
		preprocessor:     p,
		maxContentLength: maxContentLength,
		logger:           logger,
	}
}

func (s *PreprocessService) Preprocess(ctx context.Context, userID uuid.UUID, req *dto.PreprocessRequest) []preprocess.Result {
	docs := make([]preprocess.Document, len(req.Documents))
	for i, d := range req.Documents {
		docs[i] = preprocess.Document{Name: d.Name, Content: d.Text()}
	}

	ctx = WithUsageScope(ctx, userID, uuid.Nil)
	results := s.preprocessor.Preprocess(ctx, docs, s.budget(req.Budget))

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	s.logger.Info("Preprocessed documents",
		zap.String("user_id", userID.String()),
		zap.Int("documents", len(results)),
		zap.Int("failed", failed),
	)
	return results
}

// budget applies the request overrides on top of the defaults.
func (s *PreprocessService) budget(b *dto.PreprocessBudget) preprocess.Budget {
	budget := preprocess.DefaultBudget()
	if s.maxContentLength > 0 {
		budget.MaxContentLength = s.maxContentLength
	}
	if b == nil {
		return budget
	}
	if b.MaxContentLength != nil && *b.MaxContentLength > 0 {
		budget.MaxContentLength = *b.MaxContentLength
	}
	if b.RemoveBoilerplate != nil {
		budget.RemoveBoilerplate = *b.RemoveBoilerplate
	}
	if b.ExtractKeyInfo != nil {
		budget.ExtractKeyInfo = *b.ExtractKeyInfo
	}
	if b.SummarizeLongSections != nil {
		budget.SummarizeLongSections = *b.SummarizeLongSections
	}
	if b.KeepLegal != nil {
		budget.KeepLegal = *b.KeepLegal
	}
	return budget
}
