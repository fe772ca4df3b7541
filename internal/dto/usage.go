package dto

type UsageTotalsResponse struct {
	Operation        string `json:"operation"`
	Events           int    `json:"events"`
	Documents        int    `json:"documents"`
	OriginalTokens   int    `json:"original_tokens"`
	ProcessedTokens  int    `json:"processed_tokens"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
}

type UsageSummaryResponse struct {
	Since       string                `json:"since,omitempty"`
	Operations  []UsageTotalsResponse `json:"operations"`
	TotalTokens int                   `json:"total_tokens"`
}
