package preprocess

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrMissingContent = errors.New("content is missing or not text")
	ErrEmptyContent   = errors.New("content is empty")
)

// OperationPreprocess is the usage event operation reported after each batch.
const OperationPreprocess = "preprocess"

// Preprocessor runs each document through clean, strip, extract, select, summarize and
// truncate, in that order. Documents never affect each other.
type Preprocessor struct {
	stripper    Stripper
	legalKeeper Stripper
	extractor   Extractor
	summarizer  Summarizer
	truncator   Truncator
	recorder    UsageRecorder
	logger      *zap.Logger
	concurrency int
}

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// WithStripper replaces the boilerplate stripper. A custom stripper ignores Budget.KeepLegal.
func WithStripper(s Stripper) Option {
	return func(p *Preprocessor) {
		p.stripper = s
		p.legalKeeper = s
	}
}

// WithExtractor replaces the cost extractor.
func WithExtractor(e Extractor) Option {
	return func(p *Preprocessor) { p.extractor = e }
}

// WithSummarizer replaces the section selector and summarizer.
func WithSummarizer(s Summarizer) Option {
	return func(p *Preprocessor) { p.summarizer = s }
}

// WithTruncator replaces the truncator. The default summarizer falls back to it as well.
func WithTruncator(t Truncator) Option {
	return func(p *Preprocessor) { p.truncator = t }
}

// WithRecorder sets where batch usage events go.
func WithRecorder(r UsageRecorder) Option {
	return func(p *Preprocessor) { p.recorder = r }
}

// WithLogger sets the logger used for failures and per-document debug output.
func WithLogger(l *zap.Logger) Option {
	return func(p *Preprocessor) { p.logger = l }
}

// WithConcurrency processes up to n documents at once. Results keep input order.
func WithConcurrency(n int) Option {
	return func(p *Preprocessor) { p.concurrency = n }
}

// New builds a Preprocessor with the default strategies.
func New(opts ...Option) *Preprocessor {
	truncator := NewCostAwareTruncator()
	p := &Preprocessor{
		stripper:    NewBoilerplateStripper(),
		legalKeeper: NewBoilerplateStripper(WithLegal(false)),
		extractor:   NewCostExtractor(),
		truncator:   truncator,
		recorder:    nopRecorder{},
		logger:      zap.NewNop(),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.summarizer == nil {
		p.summarizer = NewKeywordSummarizer(p.truncator)
	}
	return p
}

// Preprocess processes docs and returns exactly one result per document, in input order.
func (p *Preprocessor) Preprocess(ctx context.Context, docs []Document, budget Budget) []Result {
	budget = budget.normalized()
	results := make([]Result, len(docs))

	if p.concurrency > 1 && len(docs) > 1 {
		// Plain group: a failing document must not cancel its siblings.
		var g errgroup.Group
		g.SetLimit(p.concurrency)
		for i := range docs {
			g.Go(func() error {
				results[i] = p.processInBatch(ctx, docs[i], budget)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range docs {
			results[i] = p.processInBatch(ctx, docs[i], budget)
		}
	}

	p.recordBatch(ctx, results)
	return results
}

func (p *Preprocessor) processInBatch(ctx context.Context, doc Document, budget Budget) Result {
	if err := ctx.Err(); err != nil {
		res := Result{Name: doc.Name, Error: fmt.Sprintf("preprocessing cancelled: %v", err)}
		if doc.Content != nil {
			res.OriginalSize = CharCount(*doc.Content)
		}
		return res
	}
	return p.ProcessDocument(doc, budget)
}

// ProcessDocument runs the pipeline for a single document. It never panics; any failure is
// reported in Result.Error.
func (p *Preprocessor) ProcessDocument(doc Document, budget Budget) (res Result) {
	budget = budget.normalized()
	res.Name = doc.Name

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Document preprocessing failed",
				zap.String("document", doc.Name),
				zap.Any("panic", r),
			)
			res = Result{
				Name:         doc.Name,
				OriginalSize: res.OriginalSize,
				Error:        fmt.Sprintf("preprocessing failed: %v", r),
			}
		}
	}()

	if doc.Content == nil {
		res.Error = ErrMissingContent.Error()
		return res
	}
	original := *doc.Content
	res.OriginalSize = CharCount(original)
	if original == "" {
		res.Error = ErrEmptyContent.Error()
		return res
	}

	maxLength := budget.MaxContentLength
	text := clean(original)

	if budget.RemoveBoilerplate {
		text = p.stripperFor(budget).Strip(text)
	}

	costs := p.extractor.Extract(text)

	if budget.ExtractKeyInfo && CharCount(text) > maxLength {
		if sections := p.summarizer.SelectKeySections(text, costs.TotalCost); len(sections) > 0 {
			text = strings.Join(sections, "\n\n")
		}
	}

	if budget.SummarizeLongSections && CharCount(text) > maxLength {
		text = p.summarizer.Summarize(text, maxLength, &costs)
	}

	if CharCount(text) > maxLength {
		text = p.truncator.Truncate(text, maxLength, &costs)
	}

	res.Content = text
	res.Stats = NewStats(original, text)

	p.logger.Debug("Document preprocessed",
		zap.String("document", doc.Name),
		zap.Int("original_size", res.OriginalSize),
		zap.Int("processed_size", CharCount(text)),
		zap.Float64("reduction_percent", res.Stats.ReductionPercent),
	)

	return res
}

func (p *Preprocessor) stripperFor(budget Budget) Stripper {
	if budget.KeepLegal {
		return p.legalKeeper
	}
	return p.stripper
}

func (p *Preprocessor) recordBatch(ctx context.Context, results []Result) {
	event := UsageEvent{
		Operation:  OperationPreprocess,
		Documents:  len(results),
		OccurredAt: time.Now(),
	}
	for _, r := range results {
		event.OriginalTokens += r.Stats.OriginalTokens
		event.ProcessedTokens += r.Stats.ProcessedTokens
	}
	p.recorder.Record(ctx, event)
}

// clean normalizes line endings and drops control characters and invalid UTF-8.
func clean(text string) string {
	text = strings.ToValidUTF8(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\f", "\n\n")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}
