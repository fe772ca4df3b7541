package repository

import (
	"context"

	"bid-leveler/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var projectColumns = []string{"id", "owner_id", "name", "description", "location", "created_at", "updated_at"}

type ProjectRepository struct {
	db     DB
	logger *zap.Logger
}

func NewProjectRepository(db DB, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, p *models.Project) error {
	query := squirrel.Insert("projects").
		Columns(projectColumns...).
		Values(p.ID, p.OwnerID, p.Name, p.Description, p.Location, p.CreatedAt, p.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return translateError(err, "create project")
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := squirrel.Select(projectColumns...).
		From("projects").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	p, err := scanProject(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, translateError(err, "get project")
	}
	return p, nil
}

// ListByOwner returns the owner's projects, newest first.
func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*models.Project, error) {
	query := squirrel.Select(projectColumns...).
		From("projects").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translateError(err, "list projects")
	}
	defer rows.Close()

	projects := make([]*models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, translateError(err, "scan project")
		}
		projects = append(projects, p)
	}

	return projects, translateError(rows.Err(), "list projects")
}

func (r *ProjectRepository) Update(ctx context.Context, p *models.Project) error {
	query := squirrel.Update("projects").
		Set("name", p.Name).
		Set("description", p.Description).
		Set("location", p.Location).
		Set("updated_at", p.UpdatedAt).
		Where(squirrel.Eq{"id": p.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateError(err, "update project")
	}
	return requireAffected(tag)
}

// Delete removes the project; bids and comparisons go with it through ON DELETE CASCADE.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("projects").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateError(err, "delete project")
	}
	return requireAffected(tag)
}

func scanProject(row scanner) (*models.Project, error) {
	var p models.Project
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Location, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
