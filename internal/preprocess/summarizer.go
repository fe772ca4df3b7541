package preprocess

import (
	"fmt"
	"strings"
)

// paragraphSelectionThreshold is the paragraph count above which the summarizer selects
// paragraphs instead of truncating.
const paragraphSelectionThreshold = 15

// KeywordSummarizer keeps keyword-bearing sections and paragraphs. Documents with few
// paragraphs are handed to its truncator instead.
type KeywordSummarizer struct {
	truncator         Truncator
	sectionKeywords   []string
	paragraphKeywords []string
}

// NewKeywordSummarizer builds a summarizer that falls back to truncator for short documents.
func NewKeywordSummarizer(truncator Truncator) *KeywordSummarizer {
	if truncator == nil {
		truncator = NewCostAwareTruncator()
	}
	return &KeywordSummarizer{
		truncator:         truncator,
		sectionKeywords:   SectionKeywords(),
		paragraphKeywords: ParagraphKeywords(),
	}
}

// SelectKeySections splits text before each ALL-CAPS header line ending in a colon and keeps
// the sections mentioning a section keyword or any pinned literal. It may return nothing;
// callers then use the full text.
func (s *KeywordSummarizer) SelectKeySections(text string, pinned ...string) []string {
	var kept []string
	for _, section := range splitSections(text) {
		upper := strings.ToUpper(section)
		if containsAny(upper, s.sectionKeywords) || containsAnyLiteral(section, pinned) {
			kept = append(kept, section)
		}
	}
	return kept
}

// Summarize leaves text within maxLength untouched. Long documents with more than 15
// paragraphs are reduced to introduction, key paragraphs, and conclusion with a note about
// what was dropped; shorter ones, and those where the selection saves nothing, are truncated.
func (s *KeywordSummarizer) Summarize(text string, maxLength int, costs *CostFinding) string {
	if CharCount(text) <= maxLength {
		return text
	}

	paragraphs := splitParagraphs(text)
	if len(paragraphs) <= paragraphSelectionThreshold {
		return s.truncator.Truncate(text, maxLength, costs)
	}

	last := len(paragraphs) - 1
	intro := paragraphs[:2]
	conclusion := paragraphs[last]

	var key []string
	for _, p := range paragraphs[2:last] {
		if containsAny(strings.ToLower(p), s.paragraphKeywords) {
			key = append(key, p)
		}
	}
	if len(key) == 0 {
		key = paragraphs[2:5]
	}

	parts := make([]string, 0, len(intro)+len(key)+2)
	parts = append(parts, intro...)
	parts = append(parts, key...)
	parts = append(parts, conclusion)
	parts = append(parts, fmt.Sprintf(
		"[Document summarized: the original contained %d paragraphs; only the introduction, key information, and conclusion were retained.]",
		len(paragraphs),
	))

	summary := strings.Join(parts, "\n\n")
	if CharCount(summary) >= CharCount(text) {
		return s.truncator.Truncate(text, maxLength, costs)
	}
	return summary
}

func splitSections(text string) []string {
	var sections []string
	prev := 0
	for _, loc := range sectionHeaderRe.FindAllStringIndex(text, -1) {
		if loc[0] == 0 {
			continue
		}
		sections = appendTrimmed(sections, text[prev:loc[0]])
		prev = loc[0]
	}
	return appendTrimmed(sections, text[prev:])
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range paragraphSepRe.Split(text, -1) {
		paragraphs = appendTrimmed(paragraphs, p)
	}
	return paragraphs
}

func appendTrimmed(list []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		list = append(list, s)
	}
	return list
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func containsAnyLiteral(s string, literals []string) bool {
	for _, lit := range literals {
		if lit != "" && strings.Contains(s, lit) {
			return true
		}
	}
	return false
}
