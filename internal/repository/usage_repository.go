package repository

import (
	"context"
	"time"

	"bid-leveler/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UsageRepository struct {
	db     DB
	logger *zap.Logger
}

func NewUsageRepository(db DB, logger *zap.Logger) *UsageRepository {
	return &UsageRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UsageRepository) Create(ctx context.Context, e *models.UsageEvent) error {
	query := squirrel.Insert("usage_events").
		Columns("id", "user_id", "project_id", "operation", "model", "documents",
			"original_tokens", "processed_tokens", "prompt_tokens", "completion_tokens", "occurred_at").
		Values(e.ID, e.UserID, e.ProjectID, e.Operation, e.Model, e.Documents,
			e.OriginalTokens, e.ProcessedTokens, e.PromptTokens, e.CompletionTokens, e.OccurredAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return translateError(err, "create usage event")
}

// TotalsByUser sums the user's events per operation. A zero since means all time.
func (r *UsageRepository) TotalsByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.UsageTotals, error) {
	where := squirrel.And{squirrel.Eq{"user_id": userID}}
	if !since.IsZero() {
		where = append(where, squirrel.GtOrEq{"occurred_at": since})
	}

	query := squirrel.Select(
		"operation",
		"COUNT(*)",
		"COALESCE(SUM(documents), 0)",
		"COALESCE(SUM(original_tokens), 0)",
		"COALESCE(SUM(processed_tokens), 0)",
		"COALESCE(SUM(prompt_tokens), 0)",
		"COALESCE(SUM(completion_tokens), 0)",
	).
		From("usage_events").
		Where(where).
		GroupBy("operation").
		OrderBy("operation").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translateError(err, "sum usage")
	}
	defer rows.Close()

	totals := make([]models.UsageTotals, 0)
	for rows.Next() {
		var t models.UsageTotals
		if err := rows.Scan(&t.Operation, &t.Events, &t.Documents, &t.OriginalTokens,
			&t.ProcessedTokens, &t.PromptTokens, &t.CompletionTokens); err != nil {
			return nil, translateError(err, "scan usage")
		}
		totals = append(totals, t)
	}

	return totals, translateError(rows.Err(), "sum usage")
}
