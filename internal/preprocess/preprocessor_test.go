package preprocess_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"bid-leveler/internal/preprocess"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const totalLine = "Total Project Estimated Cost: $82,300,000"

// bidDocument builds a bid with n cost-bearing paragraphs and the total in the middle.
func bidDocument(n int) string {
	paragraphs := make([]string, 0, n+3)
	paragraphs = append(paragraphs, "CONFIDENTIAL - ACME Builders bid response", "Page 1 of 12")
	for i := 0; i < n; i++ {
		if i == n/2 {
			paragraphs = append(paragraphs, totalLine+".")
		}
		paragraphs = append(paragraphs, fmt.Sprintf("Line item %d: labor cost is $%d,000 for the crew and materials on site.", i, i+1))
	}
	return strings.Join(paragraphs, "\n\n")
}

type panicStripper struct{}

func (panicStripper) Strip(text string) string {
	if strings.Contains(text, "BOOM") {
		panic("stripper exploded")
	}
	return text
}

func TestPreprocess_EmptyAndMissingContent(t *testing.T) {
	p := preprocess.New()

	results := p.Preprocess(context.Background(), []preprocess.Document{
		preprocess.NewDocument("empty.txt", ""),
		{Name: "missing.pdf"},
	}, preprocess.DefaultBudget())

	require.Len(t, results, 2)
	assert.Equal(t, "empty.txt", results[0].Name)
	assert.Equal(t, preprocess.ErrEmptyContent.Error(), results[0].Error)
	assert.Equal(t, "missing.pdf", results[1].Name)
	assert.Equal(t, preprocess.ErrMissingContent.Error(), results[1].Error)
	assert.Empty(t, results[1].Content)
}

func TestPreprocess_EmptyBatch(t *testing.T) {
	results := preprocess.New().Preprocess(context.Background(), nil, preprocess.DefaultBudget())

	assert.Empty(t, results)
}

func TestProcessDocument_StripsBoilerplateAndKeepsShortScope(t *testing.T) {
	content := "CONFIDENTIAL DOCUMENT\nSCOPE OF WORK:\nFoundation, framing and roofing.\nPage 1 of 2\nVisit www.acme.com"

	res := preprocess.New().ProcessDocument(preprocess.NewDocument("bid.txt", content), preprocess.DefaultBudget())

	require.Empty(t, res.Error)
	assert.Equal(t, "SCOPE OF WORK:\nFoundation, framing and roofing.\n\nVisit", res.Content)
	assert.Equal(t, utf8.RuneCountInString(content), res.OriginalSize)
	assert.Greater(t, res.Stats.ReductionPercent, 0.0)
}

func TestProcessDocument_PreservesTotalCost(t *testing.T) {
	p := preprocess.New()

	for _, maxLength := range []int{500, 1000, 3000} {
		t.Run(fmt.Sprint(maxLength), func(t *testing.T) {
			budget := preprocess.DefaultBudget()
			budget.MaxContentLength = maxLength

			res := p.ProcessDocument(preprocess.NewDocument("bid.txt", bidDocument(80)), budget)

			require.Empty(t, res.Error)
			assert.Contains(t, res.Content, "$82,300,000")
			assert.LessOrEqual(t, utf8.RuneCountInString(res.Content), maxLength)
			assert.Less(t, res.Stats.ProcessedTokens, res.Stats.OriginalTokens)
		})
	}
}

func TestProcessDocument_BoilerplateNextToCosts(t *testing.T) {
	tests := []struct {
		name    string
		content string
		amounts []string
	}{
		{"disclaimer", "Disclaimer: prices valid for 30 days.\nTotal Project Estimated Cost: $82,300,000\nLabor: $300,000", []string{"$82,300,000", "$300,000"}},
		{"confidential banner", "CONFIDENTIAL - DO NOT DISTRIBUTE\nLabor: $300,000", []string{"$300,000"}},
		{"proprietary item", "Proprietary roofing materials: $200,000\nThis bid includes proprietary equipment priced at $75,000 total.", []string{"$200,000", "$75,000"}},
		{"confidential sentence", "This proposal is confidential. Foundation: $1,250,000", []string{"$1,250,000"}},
		{"copyright", "Copyright 2024 ACME. All rights reserved. Materials: $200,000", []string{"$200,000"}},
		{"internal use", "For internal use only. Crane: $12,000", []string{"$12,000"}},
		{"terms notice", "Please read the terms and conditions. Bond: $5,000", []string{"$5,000"}},
		{"url", "Deposit via https://acme.com/pay $4,500 due at signing", []string{"$4,500"}},
		{"pagination", "Page 1 of 45 Crane rental: $12,000", []string{"$12,000"}},
		{"document id", "Document ID: BID-7 Permit fee: $900", []string{"$900"}},
		{"revision", "Revision: 3B\nPermit fee: $900", []string{"$900"}},
		{"date", "Date: 03/15/2024 Deposit: $1,500", []string{"$1,500"}},
		{"legal sentence", "Subject to the terms and conditions, the bond premium is $9,000.", []string{"$9,000"}},
		{"legal practices", "In accordance with standard construction practices the fee is 2 million dollars.", []string{"2 million dollars"}},
	}

	p := preprocess.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := p.ProcessDocument(preprocess.NewDocument("bid.txt", tt.content), preprocess.DefaultBudget())

			require.Empty(t, res.Error)
			for _, amount := range tt.amounts {
				assert.Contains(t, res.Content, amount)
			}
		})
	}
}

func TestProcessDocument_LengthAndTokensOnSmallBudgets(t *testing.T) {
	inputs := []string{
		strings.Repeat("x", 55),
		"Disclaimer: prices valid for 30 days.\nTotal Project Estimated Cost: $82,300,000\nLabor: $300,000",
		bidDocument(20),
	}

	p := preprocess.New()
	for _, in := range inputs {
		costs := preprocess.NewCostExtractor().Extract(in)
		block := utf8.RuneCountInString(preprocess.RenderCostBlock(&costs, preprocess.MaxCostBlockItems))

		for _, maxLength := range []int{1, 10, 50, 61, 200} {
			budget := preprocess.DefaultBudget()
			budget.MaxContentLength = maxLength

			res := p.ProcessDocument(preprocess.NewDocument("bid.txt", in), budget)

			require.Empty(t, res.Error)
			assert.LessOrEqual(t, utf8.RuneCountInString(res.Content), max(maxLength, utf8.RuneCountInString(in))+block, maxLength)
			assert.LessOrEqual(t, res.Stats.ProcessedTokens, res.Stats.OriginalTokens, maxLength)
			assert.GreaterOrEqual(t, res.Stats.ReductionPercent, 0.0, maxLength)
		}
	}
}

func TestProcessDocument_CostSurvivesWithEveryStageOff(t *testing.T) {
	budget := preprocess.Budget{MaxContentLength: 800}

	res := preprocess.New().ProcessDocument(preprocess.NewDocument("bid.txt", bidDocument(60)), budget)

	assert.Contains(t, res.Content, preprocess.CostBlockHeader)
	assert.Contains(t, res.Content, totalLine)
	assert.LessOrEqual(t, utf8.RuneCountInString(res.Content), 800)
}

func TestProcessDocument_NeverGrowsShortDocuments(t *testing.T) {
	inputs := []string{
		"Plain text.",
		"Copyright 2024 ACME. All rights reserved.\nLabor: $300,000",
		"Unit Cost: $500,000\n\n\n\nMaterials: $200,000",
	}

	p := preprocess.New()
	for _, in := range inputs {
		res := p.ProcessDocument(preprocess.NewDocument("doc", in), preprocess.DefaultBudget())
		assert.LessOrEqual(t, res.Stats.ProcessedTokens, res.Stats.OriginalTokens, in)
		assert.GreaterOrEqual(t, res.Stats.ReductionPercent, 0.0, in)
	}
}

func TestProcessDocument_Toggles(t *testing.T) {
	content := "Page 1 of 2\nSubject to the terms and conditions herein.\nScope: roofing."
	p := preprocess.New()

	off := p.ProcessDocument(preprocess.NewDocument("a", content), preprocess.Budget{})
	assert.Equal(t, content, off.Content)

	keepLegal := preprocess.DefaultBudget()
	keepLegal.KeepLegal = true
	kept := p.ProcessDocument(preprocess.NewDocument("a", content), keepLegal)
	assert.NotContains(t, kept.Content, "Page 1 of 2")
	assert.Contains(t, kept.Content, "Subject to the terms and conditions herein.")

	stripped := p.ProcessDocument(preprocess.NewDocument("a", content), preprocess.DefaultBudget())
	assert.NotContains(t, stripped.Content, "Subject to the terms")
	assert.Contains(t, stripped.Content, "Scope: roofing.")
}

func TestProcessDocument_CleansControlCharacters(t *testing.T) {
	res := preprocess.New().ProcessDocument(preprocess.NewDocument("a", "a\r\nb\x00c\rd"), preprocess.Budget{})

	assert.Equal(t, "a\nbc\nd", res.Content)
}

func TestProcessDocument_ZeroBudgetUsesDefault(t *testing.T) {
	content := strings.Repeat("x", 12000)

	res := preprocess.New().ProcessDocument(preprocess.NewDocument("a", content), preprocess.Budget{})

	assert.LessOrEqual(t, utf8.RuneCountInString(res.Content), preprocess.DefaultMaxContentLength)
}

func TestPreprocess_IsolatesFailures(t *testing.T) {
	p := preprocess.New(
		preprocess.WithStripper(panicStripper{}),
		preprocess.WithLogger(zaptest.NewLogger(t)),
	)

	results := p.Preprocess(context.Background(), []preprocess.Document{
		preprocess.NewDocument("first", "ok one"),
		preprocess.NewDocument("second", "BOOM"),
		preprocess.NewDocument("third", "ok two"),
	}, preprocess.DefaultBudget())

	require.Len(t, results, 3)
	assert.Equal(t, "ok one", results[0].Content)
	assert.Empty(t, results[0].Error)
	assert.Equal(t, "second", results[1].Name)
	assert.Contains(t, results[1].Error, "preprocessing failed")
	assert.Equal(t, 4, results[1].OriginalSize)
	assert.Equal(t, "ok two", results[2].Content)
	assert.Empty(t, results[2].Error)
}

func TestPreprocess_ConcurrentKeepsOrder(t *testing.T) {
	docs := make([]preprocess.Document, 20)
	for i := range docs {
		docs[i] = preprocess.NewDocument(fmt.Sprintf("doc-%d", i), fmt.Sprintf("Document %d body", i))
	}

	results := preprocess.New(preprocess.WithConcurrency(4)).Preprocess(context.Background(), docs, preprocess.DefaultBudget())

	require.Len(t, results, len(docs))
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("doc-%d", i), r.Name)
		assert.Equal(t, fmt.Sprintf("Document %d body", i), r.Content)
	}
}

func TestPreprocess_RecordsUsage(t *testing.T) {
	var (
		mu     sync.Mutex
		events []preprocess.UsageEvent
	)
	recorder := preprocess.UsageRecorderFunc(func(_ context.Context, e preprocess.UsageEvent) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	})

	results := preprocess.New(preprocess.WithRecorder(recorder)).Preprocess(context.Background(), []preprocess.Document{
		preprocess.NewDocument("a", "abcdefgh"),
		preprocess.NewDocument("b", "abcd"),
	}, preprocess.Budget{})

	require.Len(t, events, 1)
	assert.Equal(t, preprocess.OperationPreprocess, events[0].Operation)
	assert.Equal(t, 2, events[0].Documents)
	assert.Equal(t, 3, events[0].OriginalTokens)
	assert.Equal(t, results[0].Stats.ProcessedTokens+results[1].Stats.ProcessedTokens, events[0].ProcessedTokens)
	assert.False(t, events[0].OccurredAt.IsZero())
}

func TestPreprocess_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := preprocess.New().Preprocess(ctx, []preprocess.Document{preprocess.NewDocument("a", "text")}, preprocess.DefaultBudget())

	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Name)
	assert.Contains(t, results[0].Error, "cancelled")
	assert.Equal(t, 4, results[0].OriginalSize)
}

func TestPreprocess_SharedBudget(t *testing.T) {
	perDoc := preprocess.SplitBudget(12000, 3)
	budget := preprocess.DefaultBudget()
	budget.MaxContentLength = perDoc

	docs := []preprocess.Document{
		preprocess.NewDocument("a", bidDocument(150)),
		preprocess.NewDocument("b", bidDocument(200)),
		preprocess.NewDocument("c", bidDocument(250)),
	}

	total := 0
	for _, r := range preprocess.New(preprocess.WithConcurrency(3)).Preprocess(context.Background(), docs, budget) {
		require.Empty(t, r.Error)
		assert.LessOrEqual(t, utf8.RuneCountInString(r.Content), 4000)
		assert.Contains(t, r.Content, "$82,300,000")
		total += utf8.RuneCountInString(r.Content)
	}
	assert.LessOrEqual(t, total, 12000)
}
