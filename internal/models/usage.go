package models

import (
	"time"

	"github.com/google/uuid"
)

type UsageEvent struct {
	ID               uuid.UUID  `db:"id"`
	UserID           *uuid.UUID `db:"user_id"`
	ProjectID        *uuid.UUID `db:"project_id"`
	Operation        string     `db:"operation"`
	Model            string     `db:"model"`
	Documents        int        `db:"documents"`
	OriginalTokens   int        `db:"original_tokens"`
	ProcessedTokens  int        `db:"processed_tokens"`
	PromptTokens     int        `db:"prompt_tokens"`
	CompletionTokens int        `db:"completion_tokens"`
	OccurredAt       time.Time  `db:"occurred_at"`
}

// UsageTotals aggregates usage events of one operation.
type UsageTotals struct {
	Operation        string `db:"operation"`
	Events           int    `db:"events"`
	Documents        int    `db:"documents"`
	OriginalTokens   int    `db:"original_tokens"`
	ProcessedTokens  int    `db:"processed_tokens"`
	PromptTokens     int    `db:"prompt_tokens"`
	CompletionTokens int    `db:"completion_tokens"`
}
