package service

import (
	"strings"
	"testing"

	"bid-leveler/internal/preprocess"

	"github.com/stretchr/testify/assert"
)

func TestBuildComparisonPrompt(t *testing.T) {
	prompt := BuildComparisonPrompt("Harbor Terminal", []PromptBid{
		{Contractor: "Acme", FileName: "acme.pdf", Content: "Total Project Estimated Cost: $82,300,000"},
		{Contractor: "Beta", Content: "Total project cost: $91 million"},
	})

	assert.True(t, strings.HasPrefix(prompt, `Compare the following 2 bids for the project "Harbor Terminal".`))
	assert.Contains(t, prompt, preprocess.CostBlockHeader)
	assert.Contains(t, prompt, "$82,300,000 means 82 million 300 thousand dollars")
	assert.Contains(t, prompt, "--- BID 1: Acme (acme.pdf) ---\nTotal Project Estimated Cost: $82,300,000\n")
	assert.Contains(t, prompt, "--- BID 2: Beta ---\n")
	assert.Less(t, strings.Index(prompt, "BID 1"), strings.Index(prompt, "BID 2"))
}
