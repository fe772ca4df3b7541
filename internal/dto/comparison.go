package dto

import "bid-leveler/internal/preprocess"

type CompareRequest struct {
	// TotalBudget overrides the configured combined character budget for this run.
	TotalBudget int  `json:"total_budget" validate:"omitempty,min=500,max=200000"`
	KeepLegal   bool `json:"keep_legal"`
}

type LevelingEntry struct {
	BidID        string  `json:"bid_id"`
	Contractor   string  `json:"contractor"`
	TotalCost    string  `json:"total_cost,omitempty"`
	Amount       string  `json:"amount,omitempty"`
	Rank         int     `json:"rank,omitempty"`
	DeltaFromLow string  `json:"delta_from_low,omitempty"`
	PercentAbove float64 `json:"percent_above_low"`
}

type BidPreprocessStats struct {
	BidID        string           `json:"bid_id"`
	Contractor   string           `json:"contractor"`
	OriginalSize int              `json:"original_size"`
	Stats        preprocess.Stats `json:"stats"`
	Error        string           `json:"error,omitempty"`
}

type ComparisonResponse struct {
	ID               string               `json:"id"`
	ProjectID        string               `json:"project_id"`
	Model            string               `json:"model"`
	Analysis         string               `json:"analysis"`
	BidCount         int                  `json:"bid_count"`
	OriginalTokens   int                  `json:"original_tokens"`
	ProcessedTokens  int                  `json:"processed_tokens"`
	PromptTokens     int                  `json:"prompt_tokens"`
	CompletionTokens int                  `json:"completion_tokens"`
	Bids             []BidPreprocessStats `json:"bids,omitempty"`
	Leveling         []LevelingEntry      `json:"leveling,omitempty"`
	CreatedAt        string               `json:"created_at"`
}
