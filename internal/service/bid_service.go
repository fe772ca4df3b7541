package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bid-leveler/internal/dto"
	"bid-leveler/internal/models"
	"bid-leveler/internal/preprocess"
	"bid-leveler/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BidService struct {
	projectRepo ProjectStore
	bidRepo     BidStore
	extractor   TextExtractor
	costs       preprocess.Extractor
	uploadDir   string
	logger      *zap.Logger
}

func NewBidService(
	projectRepo ProjectStore,
	bidRepo BidStore,
	extractor TextExtractor,
	uploadDir string,
	logger *zap.Logger,
) *BidService {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		logger.Warn("Failed to create upload directory", zap.Error(err))
	}

	return &BidService{
		projectRepo: projectRepo,
		bidRepo:     bidRepo,
		extractor:   extractor,
		costs:       preprocess.NewCostExtractor(),
		uploadDir:   uploadDir,
		logger:      logger,
	}
}

// Upload stores the file, extracts its text and records the verbatim total cost.
func (s *BidService) Upload(ctx context.Context, ownerID, projectID uuid.UUID, file io.Reader, fileName, contractor string) (*dto.BidResponse, error) {
	if _, err := ownedProject(ctx, s.projectRepo, ownerID, projectID); err != nil {
		return nil, err
	}
	if !IsSupportedFile(fileName) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(fileName))
	}

	bidID := uuid.New()
	filePath := filepath.Join(s.uploadDir, bidID.String()+strings.ToLower(filepath.Ext(fileName)))

	fileSize, err := saveFile(filePath, file)
	if err != nil {
		return nil, err
	}

	text, err := s.extractor.ExtractText(ctx, filePath)
	if err != nil {
		os.Remove(filePath)
		return nil, err
	}
	text = sanitizeText(text)

	if strings.TrimSpace(contractor) == "" {
		contractor = strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	}

	now := time.Now()
	bid := &models.Bid{
		ID:            bidID,
		ProjectID:     projectID,
		Contractor:    strings.TrimSpace(contractor),
		FileName:      filepath.Base(fileName),
		FileSize:      fileSize,
		FilePath:      filePath,
		ContentType:   ContentTypeFor(fileName),
		ExtractedText: text,
		TotalCost:     s.costs.Extract(text).TotalCost,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.bidRepo.Create(ctx, bid); err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to create bid record: %w", err)
	}

	s.logger.Info("Bid uploaded",
		zap.String("bid_id", bid.ID.String()),
		zap.String("project_id", projectID.String()),
		zap.Int("text_length", len(text)),
		zap.Bool("total_cost_found", bid.TotalCost != ""),
	)

	return toBidResponse(bid, false), nil
}

func (s *BidService) List(ctx context.Context, ownerID, projectID uuid.UUID) ([]*dto.BidResponse, error) {
	if _, err := ownedProject(ctx, s.projectRepo, ownerID, projectID); err != nil {
		return nil, err
	}

	bids, err := s.bidRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}

	resp := make([]*dto.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, toBidResponse(b, false))
	}
	return resp, nil
}

// Get returns the bid including its extracted text.
func (s *BidService) Get(ctx context.Context, ownerID, bidID uuid.UUID) (*dto.BidResponse, error) {
	bid, err := s.ownedBid(ctx, ownerID, bidID)
	if err != nil {
		return nil, err
	}
	return toBidResponse(bid, true), nil
}

func (s *BidService) Delete(ctx context.Context, ownerID, bidID uuid.UUID) error {
	bid, err := s.ownedBid(ctx, ownerID, bidID)
	if err != nil {
		return err
	}

	if err := s.bidRepo.Delete(ctx, bid.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBidNotFound
		}
		return fmt.Errorf("failed to delete bid: %w", err)
	}

	if err := os.Remove(bid.FilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("Failed to remove bid file", zap.String("path", bid.FilePath), zap.Error(err))
	}
	return nil
}

func (s *BidService) ownedBid(ctx context.Context, ownerID, bidID uuid.UUID) (*models.Bid, error) {
	bid, err := s.bidRepo.GetByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, fmt.Errorf("failed to get bid: %w", err)
	}
	if _, err := ownedProject(ctx, s.projectRepo, ownerID, bid.ProjectID); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, err
	}
	return bid, nil
}

func saveFile(path string, src io.Reader) (int64, error) {
	dst, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("failed to save file: %w", err)
	}
	return n, nil
}

func toBidResponse(b *models.Bid, withText bool) *dto.BidResponse {
	resp := &dto.BidResponse{
		ID:          b.ID.String(),
		ProjectID:   b.ProjectID.String(),
		Contractor:  b.Contractor,
		FileName:    b.FileName,
		FileSize:    b.FileSize,
		ContentType: b.ContentType,
		TotalCost:   b.TotalCost,
		TextLength:  preprocess.CharCount(b.ExtractedText),
		CreatedAt:   formatTime(b.CreatedAt),
	}
	if withText {
		resp.ExtractedText = b.ExtractedText
	}
	return resp
}
