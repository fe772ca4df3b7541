// Package preprocess reduces raw bid documents to the text worth sending to a
// context-limited LLM. Boilerplate is stripped, key sections are selected, and
// long documents are summarized and truncated, while every recognizable cost
// figure is carried through to the output.
package preprocess

import (
	"context"
	"time"
)

// DefaultMaxContentLength is the per-document character budget when none is given.
const DefaultMaxContentLength = 10000

// Document is a single named input. A nil Content means the caller had no text for it.
type Document struct {
	Name    string
	Content *string
}

// NewDocument is a convenience constructor for documents with text content.
func NewDocument(name, content string) Document {
	return Document{Name: name, Content: &content}
}

// Budget controls how aggressively a document is reduced.
type Budget struct {
	MaxContentLength      int  `json:"maxContentLength"`
	RemoveBoilerplate     bool `json:"removeBoilerplate"`
	ExtractKeyInfo        bool `json:"extractKeyInfo"`
	SummarizeLongSections bool `json:"summarizeLongSections"`
	// KeepLegal keeps the legal boilerplate set while the standard set is still stripped.
	KeepLegal bool `json:"keepLegal"`
}

// DefaultBudget returns the budget used when the caller does not supply one.
func DefaultBudget() Budget {
	return Budget{
		MaxContentLength:      DefaultMaxContentLength,
		RemoveBoilerplate:     true,
		ExtractKeyInfo:        true,
		SummarizeLongSections: true,
	}
}

func (b Budget) normalized() Budget {
	if b.MaxContentLength <= 0 {
		b.MaxContentLength = DefaultMaxContentLength
	}
	return b
}

// SplitBudget divides a combined character cap evenly across n documents.
func SplitBudget(total, n int) int {
	if n <= 0 {
		return total
	}
	return total / n
}

// CostMention is one currency-like token with the text around it.
type CostMention struct {
	Value   string `json:"value"`
	Context string `json:"context"`
}

// CostFinding holds the cost data recognized in a document.
type CostFinding struct {
	TotalCost     string        `json:"totalCost,omitempty"`
	CostBreakdown []CostMention `json:"costBreakdown"`
}

// Empty reports whether nothing cost-related was found.
func (f *CostFinding) Empty() bool {
	return f == nil || (f.TotalCost == "" && len(f.CostBreakdown) == 0)
}

// Stats describes the size reduction of one document.
type Stats struct {
	OriginalTokens   int     `json:"originalTokens"`
	ProcessedTokens  int     `json:"processedTokens"`
	ReductionPercent float64 `json:"reductionPercent"`
}

// Result is the processed form of one Document.
type Result struct {
	Name         string `json:"name"`
	Content      string `json:"content"`
	OriginalSize int    `json:"originalSize"`
	Stats        Stats  `json:"stats"`
	Error        string `json:"error,omitempty"`
}

// Stripper removes non-substantive text.
type Stripper interface {
	Strip(text string) string
}

// Extractor finds cost figures that must survive reduction.
type Extractor interface {
	Extract(text string) CostFinding
}

// Summarizer keeps the parts of a document that matter for bid comparison.
type Summarizer interface {
	SelectKeySections(text string, pinned ...string) []string
	Summarize(text string, maxLength int, costs *CostFinding) string
}

// Truncator enforces a hard character budget.
type Truncator interface {
	Truncate(text string, maxLength int, costs *CostFinding) string
}

// UsageEvent is reported once per preprocessing batch and once per LLM call.
type UsageEvent struct {
	Operation        string
	Model            string
	UserID           string
	ProjectID        string
	Documents        int
	OriginalTokens   int
	ProcessedTokens  int
	PromptTokens     int
	CompletionTokens int
	OccurredAt       time.Time
}

// UsageRecorder receives usage events. Implementations handle their own failures.
type UsageRecorder interface {
	Record(ctx context.Context, event UsageEvent)
}

// UsageRecorderFunc adapts a function to UsageRecorder.
type UsageRecorderFunc func(ctx context.Context, event UsageEvent)

func (f UsageRecorderFunc) Record(ctx context.Context, event UsageEvent) {
	f(ctx, event)
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, UsageEvent) {}
