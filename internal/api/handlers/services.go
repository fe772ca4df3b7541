package handlers

import (
	"context"
	"io"
	"time"

	"bid-leveler/internal/dto"
	"bid-leveler/internal/preprocess"
	"bid-leveler/internal/service"

	"github.com/google/uuid"
)

// Handlers depend on these method sets; the service package provides the implementations.

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
}

type ProjectService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *dto.ProjectRequest) (*dto.ProjectResponse, error)
	Get(ctx context.Context, ownerID, projectID uuid.UUID) (*dto.ProjectResponse, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*dto.ProjectResponse, error)
	Update(ctx context.Context, ownerID, projectID uuid.UUID, req *dto.ProjectRequest) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, ownerID, projectID uuid.UUID) error
}

type BidService interface {
	Upload(ctx context.Context, ownerID, projectID uuid.UUID, file io.Reader, fileName, contractor string) (*dto.BidResponse, error)
	List(ctx context.Context, ownerID, projectID uuid.UUID) ([]*dto.BidResponse, error)
	Get(ctx context.Context, ownerID, bidID uuid.UUID) (*dto.BidResponse, error)
	Delete(ctx context.Context, ownerID, bidID uuid.UUID) error
}

type ComparisonService interface {
	Compare(ctx context.Context, ownerID, projectID uuid.UUID, req *dto.CompareRequest) (*dto.ComparisonResponse, error)
	List(ctx context.Context, ownerID, projectID uuid.UUID, limit int) ([]*dto.ComparisonResponse, error)
}

type ExportService interface {
	Export(ctx context.Context, ownerID, projectID uuid.UUID, format string) (*service.Report, error)
}

type PreprocessService interface {
	Preprocess(ctx context.Context, userID uuid.UUID, req *dto.PreprocessRequest) []preprocess.Result
}

type UsageService interface {
	Summary(ctx context.Context, userID uuid.UUID, since time.Time) (*dto.UsageSummaryResponse, error)
}

var (
	_ AuthService       = (*service.AuthService)(nil)
	_ ProjectService    = (*service.ProjectService)(nil)
	_ BidService        = (*service.BidService)(nil)
	_ ComparisonService = (*service.ComparisonService)(nil)
	_ ExportService     = (*service.ExportService)(nil)
	_ PreprocessService = (*service.PreprocessService)(nil)
	_ UsageService      = (*service.UsageService)(nil)
)
