package repository

import (
	"context"

	"bid-leveler/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var bidColumns = []string{
	"id", "project_id", "contractor", "file_name", "file_size", "file_path",
	"content_type", "extracted_text", "total_cost", "created_at", "updated_at",
}

type BidRepository struct {
	db     DB
	logger *zap.Logger
}

func NewBidRepository(db DB, logger *zap.Logger) *BidRepository {
	return &BidRepository{
		db:     db,
		logger: logger,
	}
}

func (r *BidRepository) Create(ctx context.Context, b *models.Bid) error {
	query := squirrel.Insert("bids").
		Columns(bidColumns...).
		Values(b.ID, b.ProjectID, b.Contractor, b.FileName, b.FileSize, b.FilePath,
			b.ContentType, b.ExtractedText, b.TotalCost, b.CreatedAt, b.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return translateError(err, "create bid")
}

func (r *BidRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	query := squirrel.Select(bidColumns...).
		From("bids").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	b, err := scanBid(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, translateError(err, "get bid")
	}
	return b, nil
}

// ListByProject returns the project's bids in upload order.
func (r *BidRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Bid, error) {
	query := squirrel.Select(bidColumns...).
		From("bids").
		Where(squirrel.Eq{"project_id": projectID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translateError(err, "list bids")
	}
	defer rows.Close()

	bids := make([]*models.Bid, 0)
	for rows.Next() {
		b, err := scanBid(rows)
		if err != nil {
			return nil, translateError(err, "scan bid")
		}
		bids = append(bids, b)
	}

	return bids, translateError(rows.Err(), "list bids")
}

func (r *BidRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("bids").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateError(err, "delete bid")
	}
	return requireAffected(tag)
}

func scanBid(row scanner) (*models.Bid, error) {
	var b models.Bid
	err := row.Scan(
		&b.ID, &b.ProjectID, &b.Contractor, &b.FileName, &b.FileSize, &b.FilePath,
		&b.ContentType, &b.ExtractedText, &b.TotalCost, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
