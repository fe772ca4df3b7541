package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bid-leveler/pkg/config"
	"bid-leveler/pkg/metrics"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

var ErrEmptyCompletion = errors.New("no response from LLM")

const systemInstruction = `You are an experienced construction cost estimator who levels bids for project owners.

You receive several contractor bids for the same project. Each bid has been shortened to fit your context window:
boilerplate was removed, long passages were summarized or truncated, and omitted spans are marked as such.

For every bid:
- identify the total price and the main cost components (labor, materials, equipment, general conditions, fees);
- list scope inclusions, exclusions, allowances and alternates;
- note schedule, warranty and payment terms.

Then compare the bids side by side, point out scope gaps that make prices not directly comparable,
flag unusually high or low line items, and recommend which bid offers the best value and why.
Never invent figures that do not appear in the bids. If a figure is missing, say so.`

// LLMService talks to GigaChat through the gigago client.
type LLMService struct {
	client    *gigago.Client
	model     *gigago.GenerativeModel
	modelName string
	logger    *zap.Logger
}

func NewLLMService(cfg *config.GigaChatConfig, logger *zap.Logger) (*LLMService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = systemInstruction
	model.Temperature = 0.2

	return &LLMService{
		client:    client,
		model:     model,
		modelName: cfg.Model,
		logger:    logger,
	}, nil
}

func (s *LLMService) Model() string {
	return s.modelName
}

// CompareBids sends the assembled comparison prompt and returns the model's analysis.
func (s *LLMService) CompareBids(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	analysis, err := s.generate(ctx, prompt)
	metrics.ObserveLLMRequest(time.Since(start), err)
	if err != nil {
		s.logger.Error("Bid comparison request failed",
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return "", err
	}

	s.logger.Info("Bid comparison completed",
		zap.String("model", s.modelName),
		zap.Int("prompt_length", len(prompt)),
		zap.Int("response_length", len(analysis)),
		zap.Duration("duration", time.Since(start)),
	)
	return analysis, nil
}

func (s *LLMService) generate(ctx context.Context, prompt string) (string, error) {
	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
