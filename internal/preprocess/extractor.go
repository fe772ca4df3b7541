package preprocess

import "unicode/utf8"

// DefaultContextRadius is how many characters are kept on each side of a cost mention.
const DefaultContextRadius = 30

// CostExtractor recognizes the total project cost line and every currency-like token.
type CostExtractor struct {
	radius int
}

// NewCostExtractor returns an extractor with the default context radius.
func NewCostExtractor() *CostExtractor {
	return &CostExtractor{radius: DefaultContextRadius}
}

// Extract never fails; a document without figures yields an empty finding.
// Matched text is kept verbatim: "$82,300,000" is never re-rendered as a number.
func (e *CostExtractor) Extract(text string) CostFinding {
	finding := CostFinding{CostBreakdown: []CostMention{}}
	if text == "" {
		return finding
	}

	finding.TotalCost = totalCostRe.FindString(text)

	for _, loc := range currencyRe.FindAllStringIndex(text, -1) {
		start := backRunes(text, loc[0], e.radius)
		end := forwardRunes(text, loc[1], e.radius)
		finding.CostBreakdown = append(finding.CostBreakdown, CostMention{
			Value:   text[loc[0]:loc[1]],
			Context: text[start:end],
		})
	}

	return finding
}

// backRunes moves the byte offset i back by up to n characters.
func backRunes(s string, i, n int) int {
	for ; n > 0 && i > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return i
}

// forwardRunes moves the byte offset i forward by up to n characters.
func forwardRunes(s string, i, n int) int {
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}
