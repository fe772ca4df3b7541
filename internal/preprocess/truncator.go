package preprocess

import (
	"fmt"
	"strings"
)

// CostBlockHeader opens the synthesized cost summary. The comparison prompt refers to it by
// this exact text, so it must not change.
const CostBlockHeader = "=== IMPORTANT COST INFORMATION ==="

// MaxCostBlockItems caps how many breakdown entries the cost summary lists.
const MaxCostBlockItems = 5

// ContextTruncator keeps a head and a tail window of the text and marks the gap between them.
type ContextTruncator struct {
	headPercent   int
	tailPercent   int
	markerReserve int
	withCosts     bool
}

// NewCostAwareTruncator keeps 60% head / 35% tail and appends the cost summary block.
func NewCostAwareTruncator() *ContextTruncator {
	return &ContextTruncator{headPercent: 60, tailPercent: 35, markerReserve: 200, withCosts: true}
}

// NewPlainTruncator keeps 65% head / 35% tail and never appends a cost block.
func NewPlainTruncator() *ContextTruncator {
	return &ContextTruncator{headPercent: 65, tailPercent: 35, markerReserve: 120}
}

// Truncate returns text unchanged when it already fits. Otherwise the output is
// head + marker + tail + cost block and is always shorter than text. It stays within maxLength
// unless the compact cost block alone is longer than maxLength; a block that would not make the
// text shorter is dropped.
func (t *ContextTruncator) Truncate(text string, maxLength int, costs *CostFinding) string {
	runes := []rune(text)
	total := len(runes)
	if total <= maxLength {
		return text
	}
	if maxLength < 0 {
		maxLength = 0
	}

	block := t.costBlock(costs, maxLength, total)
	room := maxLength - CharCount(block)
	if room < 0 {
		room = 0
	}

	var b strings.Builder
	switch available := room - t.markerReserve; {
	case available > 0:
		headLen := available * t.headPercent / 100
		tailLen := available * t.tailPercent / 100
		b.WriteString(string(runes[:headLen]))
		b.WriteString(ElisionMarker(total - headLen - tailLen))
		b.WriteString(string(runes[total-tailLen:]))
	case room > compactMarkerLen:
		available = room - compactMarkerLen
		headLen := available * t.headPercent / 100
		tailLen := available * t.tailPercent / 100
		b.WriteString(string(runes[:headLen]))
		b.WriteString(compactMarker)
		b.WriteString(string(runes[total-tailLen:]))
	default:
		b.WriteString(string(runes[:room]))
	}
	b.WriteString(block)
	return b.String()
}

// costBlock picks the full block when it fits next to the marker, the total-only block
// otherwise, and nothing when even that is not shorter than the text.
func (t *ContextTruncator) costBlock(costs *CostFinding, maxLength, total int) string {
	if !t.withCosts {
		return ""
	}
	block := RenderCostBlock(costs, MaxCostBlockItems)
	if block != "" && t.markerReserve+CharCount(block) > maxLength {
		block = RenderCostBlock(costs, 0)
	}
	if CharCount(block) >= total {
		return ""
	}
	return block
}

const compactMarker = "\n[...]\n"

var compactMarkerLen = CharCount(compactMarker)

// ElisionMarker tells the reader that content was cut and how much.
func ElisionMarker(omitted int) string {
	return fmt.Sprintf("\n\n[... %d characters omitted to fit the length budget ...]\n\n", omitted)
}

// RenderCostBlock formats the finding as the IMPORTANT COST INFORMATION block, listing at most
// maxItems breakdown contexts. An empty finding renders as "".
func RenderCostBlock(costs *CostFinding, maxItems int) string {
	if costs.Empty() {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(CostBlockHeader)
	b.WriteString("\n")
	if costs.TotalCost != "" {
		b.WriteString(costs.TotalCost)
		b.WriteString("\n")
	}

	items := costs.CostBreakdown
	if len(items) > maxItems {
		items = items[:maxItems]
	}
	if len(items) > 0 {
		b.WriteString("Cost breakdown:\n")
		for _, item := range items {
			b.WriteString("- ")
			b.WriteString(strings.Join(strings.Fields(item.Context), " "))
			b.WriteString("\n")
		}
	}

	if costs.TotalCost == "" && len(items) == 0 {
		return ""
	}
	return b.String()
}
