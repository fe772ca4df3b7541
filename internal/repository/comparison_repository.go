package repository

import (
	"context"

	"bid-leveler/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var comparisonColumns = []string{
	"id", "project_id", "user_id", "model", "analysis", "bid_count",
	"original_tokens", "processed_tokens", "prompt_tokens", "completion_tokens", "created_at",
}

type ComparisonRepository struct {
	db     DB
	logger *zap.Logger
}

func NewComparisonRepository(db DB, logger *zap.Logger) *ComparisonRepository {
	return &ComparisonRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ComparisonRepository) Create(ctx context.Context, c *models.Comparison) error {
	query := squirrel.Insert("comparisons").
		Columns(comparisonColumns...).
		Values(c.ID, c.ProjectID, c.UserID, c.Model, c.Analysis, c.BidCount,
			c.OriginalTokens, c.ProcessedTokens, c.PromptTokens, c.CompletionTokens, c.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return translateError(err, "create comparison")
}

// ListByProject returns up to limit comparisons, newest first.
func (r *ComparisonRepository) ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]*models.Comparison, error) {
	query := squirrel.Select(comparisonColumns...).
		From("comparisons").
		Where(squirrel.Eq{"project_id": projectID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translateError(err, "list comparisons")
	}
	defer rows.Close()

	comparisons := make([]*models.Comparison, 0)
	for rows.Next() {
		var c models.Comparison
		if err := rows.Scan(
			&c.ID, &c.ProjectID, &c.UserID, &c.Model, &c.Analysis, &c.BidCount,
			&c.OriginalTokens, &c.ProcessedTokens, &c.PromptTokens, &c.CompletionTokens, &c.CreatedAt,
		); err != nil {
			return nil, translateError(err, "scan comparison")
		}
		comparisons = append(comparisons, &c)
	}

	return comparisons, translateError(rows.Err(), "list comparisons")
}

// Latest returns the newest comparison of the project or ErrNotFound.
func (r *ComparisonRepository) Latest(ctx context.Context, projectID uuid.UUID) (*models.Comparison, error) {
	list, err := r.ListByProject(ctx, projectID, 1)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return list[0], nil
}
