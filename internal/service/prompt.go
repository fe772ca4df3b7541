package service

import (
	"fmt"
	"strings"

	"bid-leveler/internal/preprocess"
)

// PromptBid is one preprocessed bid as it appears in the comparison prompt.
type PromptBid struct {
	Contractor string
	FileName   string
	Content    string
}

// BuildComparisonPrompt concatenates the preprocessed bids into a single request.
// The instructions name the cost block header emitted by the truncator.
func BuildComparisonPrompt(projectName string, bids []PromptBid) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Compare the following %d bids for the project %q.\n\n", len(bids), projectName)
	b.WriteString("Instructions:\n")
	fmt.Fprintf(&b, "- Pay special attention to the %s section if it is present in a bid; it lists the cost figures found in the full document.\n", preprocess.CostBlockHeader)
	b.WriteString("- Cost figures are quoted exactly as written in the bids. Read them literally: $82,300,000 means 82 million 300 thousand dollars.\n")
	b.WriteString("- Some bids were shortened; markers like \"[... N characters omitted ...]\" show where text was removed.\n")
	b.WriteString("- Finish with a ranked recommendation.\n")

	for i, bid := range bids {
		fmt.Fprintf(&b, "\n--- BID %d: %s", i+1, bid.Contractor)
		if bid.FileName != "" {
			fmt.Fprintf(&b, " (%s)", bid.FileName)
		}
		b.WriteString(" ---\n")
		b.WriteString(bid.Content)
		b.WriteString("\n")
	}

	return b.String()
}
