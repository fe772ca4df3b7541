package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bid-leveler/internal/dto"
	"bid-leveler/internal/models"
	"bid-leveler/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProjectService struct {
	projectRepo ProjectStore
	logger      *zap.Logger
}

func NewProjectService(projectRepo ProjectStore, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		logger:      logger,
	}
}

func (s *ProjectService) Create(ctx context.Context, ownerID uuid.UUID, req *dto.ProjectRequest) (*dto.ProjectResponse, error) {
	now := time.Now()
	p := &models.Project{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projectRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return toProjectResponse(p), nil
}

func (s *ProjectService) Get(ctx context.Context, ownerID, projectID uuid.UUID) (*dto.ProjectResponse, error) {
	p, err := ownedProject(ctx, s.projectRepo, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

func (s *ProjectService) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*dto.ProjectResponse, error) {
	if offset < 0 {
		offset = 0
	}
	projects, err := s.projectRepo.ListByOwner(ctx, ownerID, clampLimit(limit, 20, 100), offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	resp := make([]*dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toProjectResponse(p))
	}
	return resp, nil
}

func (s *ProjectService) Update(ctx context.Context, ownerID, projectID uuid.UUID, req *dto.ProjectRequest) (*dto.ProjectResponse, error) {
	p, err := ownedProject(ctx, s.projectRepo, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.Description = req.Description
	p.Location = req.Location
	p.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return toProjectResponse(p), nil
}

func (s *ProjectService) Delete(ctx context.Context, ownerID, projectID uuid.UUID) error {
	if _, err := ownedProject(ctx, s.projectRepo, ownerID, projectID); err != nil {
		return err
	}
	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.logger.Info("Project deleted", zap.String("project_id", projectID.String()))
	return nil
}

// ownedProject loads a project and checks that ownerID owns it.
func ownedProject(ctx context.Context, store ProjectStore, ownerID, projectID uuid.UUID) (*models.Project, error) {
	p, err := store.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if p.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return p, nil
}

func toProjectResponse(p *models.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Location:    p.Location,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}
