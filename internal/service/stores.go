package service

import (
	"context"
	"time"

	"bid-leveler/internal/models"

	"github.com/google/uuid"
)

// The repository package satisfies these; tests substitute in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type ProjectStore interface {
	Create(ctx context.Context, p *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*models.Project, error)
	Update(ctx context.Context, p *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BidStore interface {
	Create(ctx context.Context, b *models.Bid) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Bid, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ComparisonStore interface {
	Create(ctx context.Context, c *models.Comparison) error
	ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]*models.Comparison, error)
	Latest(ctx context.Context, projectID uuid.UUID) (*models.Comparison, error)
}

type UsageStore interface {
	Create(ctx context.Context, e *models.UsageEvent) error
	TotalsByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.UsageTotals, error)
}

// TextExtractor turns a stored bid file into plain text.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// BidAnalyzer sends a comparison prompt to the language model.
type BidAnalyzer interface {
	CompareBids(ctx context.Context, prompt string) (string, error)
	Model() string
}
