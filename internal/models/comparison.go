package models

import (
	"time"

	"github.com/google/uuid"
)

// Comparison is one stored LLM analysis of a project's bids.
type Comparison struct {
	ID               uuid.UUID `db:"id"`
	ProjectID        uuid.UUID `db:"project_id"`
	UserID           uuid.UUID `db:"user_id"`
	Model            string    `db:"model"`
	Analysis         string    `db:"analysis"`
	BidCount         int       `db:"bid_count"`
	OriginalTokens   int       `db:"original_tokens"`
	ProcessedTokens  int       `db:"processed_tokens"`
	PromptTokens     int       `db:"prompt_tokens"`
	CompletionTokens int       `db:"completion_tokens"`
	CreatedAt        time.Time `db:"created_at"`
}
