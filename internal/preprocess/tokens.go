package preprocess

import (
	"math"
	"unicode/utf8"
)

// CharsPerToken is the rough English-text ratio used for every token estimate in the service.
const CharsPerToken = 4

// CharCount returns the length of text in characters (code points), the unit all budgets use.
func CharCount(text string) int {
	return utf8.RuneCountInString(text)
}

// EstimateTokens returns ceil(chars / CharsPerToken).
func EstimateTokens(text string) int {
	return TokensForChars(CharCount(text))
}

// TokensForChars converts a character count into an estimated token count.
func TokensForChars(chars int) int {
	if chars <= 0 {
		return 0
	}
	return (chars + CharsPerToken - 1) / CharsPerToken
}

// ReductionPercent reports how much smaller processed is than original, rounded to one decimal.
// Zero original yields zero.
func ReductionPercent(originalTokens, processedTokens int) float64 {
	if originalTokens <= 0 {
		return 0
	}
	pct := float64(originalTokens-processedTokens) / float64(originalTokens) * 100
	return math.Round(pct*10) / 10
}

// NewStats builds the statistics block for an original/processed pair.
func NewStats(original, processed string) Stats {
	orig := EstimateTokens(original)
	proc := EstimateTokens(processed)
	return Stats{
		OriginalTokens:   orig,
		ProcessedTokens:  proc,
		ReductionPercent: ReductionPercent(orig, proc),
	}
}
