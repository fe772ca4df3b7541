package preprocess

import "regexp"

// PatternSetVersion identifies the current revision of the recognizer lists below.
// Bump it whenever a pattern is added, removed, or changes what it matches.
const PatternSetVersion = "2024.4"

// PatternSet is a named, ordered list of recognizers. Each match is deleted unless it carries a
// currency amount.
type PatternSet struct {
	Name     string
	Version  string
	Patterns []*regexp.Regexp
}

// Apply deletes every match of every pattern, in order. Matches containing money are left in place.
func (s PatternSet) Apply(text string) string {
	for _, re := range s.Patterns {
		text = re.ReplaceAllStringFunc(text, dropUnlessCost)
	}
	return text
}

func dropUnlessCost(match string) string {
	if currencyRe.MatchString(match) {
		return match
	}
	return ""
}

// Compiled regexps are immutable and safe for concurrent use; nothing below keeps match state.
var (
	standardPatterns = []*regexp.Regexp{
		// confidentiality banners: upper-case lines and distribution warnings
		regexp.MustCompile(`(?m)^[^\S\n]*(?:STRICTLY[^\S\n]+)?(?:CONFIDENTIAL|PROPRIETARY)\b[^\n]*$`),
		regexp.MustCompile(`(?im)^[^\n]*\bdo not (?:distribute|copy|disclose)\b[^\n]*$`),
		// confidentiality notice sentences
		regexp.MustCompile(`(?i)\b(?:this|the)\s+(?:document|information|proposal|bid|submission)\s+(?:is|are)\s+(?:strictly\s+)?(?:confidential|proprietary)\b[^.\n]*\.`),
		regexp.MustCompile(`(?i)\b(?:this|the)\s+(?:document|proposal|bid|submission)\s+contains\s+(?:confidential|proprietary)\s+information\b[^.\n]*\.`),
		// copyright
		regexp.MustCompile(`(?i)(?:copyright[^\S\n]*(?:©|\(c\))?|©)[^\S\n]*\d{4}[^\n]*?all rights reserved\.?`),
		// stock sentences
		regexp.MustCompile(`(?i)\bfor internal use only\.?`),
		regexp.MustCompile(`(?i)\bplease read the terms and conditions\b[^.\n]*\.?`),
		// disclaimer: the rest of its own line only
		regexp.MustCompile(`(?i)\bdisclaimer:[^\n]*`),
		// links
		regexp.MustCompile(`(?i)\bhttps?://[^\s<>"]+`),
		regexp.MustCompile(`(?i)\bwww\.[a-z0-9-]+(?:\.[a-z0-9-]+)*\.[a-z]{2,}(?:/[^\s<>"]*)?`),
		// pagination
		regexp.MustCompile(`(?i)\bpage\s+\d+\s+of\s+\d+\b`),
		// document metadata
		regexp.MustCompile(`(?i)\bdocument\s+id:[^\S\n]*[a-z0-9][a-z0-9-]*`),
		regexp.MustCompile(`(?im)^[^\S\n]*revision:[^\S\n]*[a-z0-9][a-z0-9.-]*`),
		regexp.MustCompile(`(?im)^[^\S\n]*date:[^\S\n]*(?:\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4}|[a-z]{3,9}\.?[^\S\n]+\d{1,2},?[^\S\n]+\d{4}|\d{1,2}[^\S\n]+[a-z]{3,9}\.?[^\S\n]+\d{4})`),
	}

	legalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bin accordance with standard construction practices\b[^.\n]*\.*`),
		regexp.MustCompile(`(?i)\bas per the specifications outlined in\b[^.\n]*\.*`),
		regexp.MustCompile(`(?i)\bsubject to the terms and conditions\b[^.\n]*\.*`),
	}

	trailingSpaceRe = regexp.MustCompile(`(?m)[ \t]+$`)
	blankRunRe      = regexp.MustCompile(`\n{3,}`)
	spaceRunRe      = regexp.MustCompile(`[ \t]{2,}`)

	totalCostRe = regexp.MustCompile(`(?i)total\s+project\s+(?:estimated\s+)?cost\s*:\s*\$?\s?(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?(?:\s*(?:million|billion)\b)?`)

	// A bare number is not money: it needs a leading $ or a trailing unit word.
	currencyRe = regexp.MustCompile(`(?i)\$\s?(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?(?:\s*(?:thousand|million|billion)\b)?(?:\s+dollars\b)?|\b(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?\s*(?:(?:thousand|million|billion)(?:\s+dollars)?|dollars)\b`)

	sectionHeaderRe = regexp.MustCompile(`(?m)^[A-Z][A-Z0-9 &/(),'.-]{1,}:[ \t]*$`)
	paragraphSepRe  = regexp.MustCompile(`\n[^\S\n]*\n\s*`)
)

// StandardBoilerplate returns the headers/footers/metadata recognizers.
func StandardBoilerplate() PatternSet {
	return PatternSet{Name: "standard", Version: PatternSetVersion, Patterns: append([]*regexp.Regexp(nil), standardPatterns...)}
}

// LegalBoilerplate returns the stock legal-sentence recognizers, kept apart so they can be switched off.
func LegalBoilerplate() PatternSet {
	return PatternSet{Name: "legal", Version: PatternSetVersion, Patterns: append([]*regexp.Regexp(nil), legalPatterns...)}
}

// SectionKeywords mark a section as worth keeping. Matched against upper-cased section text.
func SectionKeywords() []string {
	return []string{"PRICING", "COST BREAKDOWN", "SCOPE OF WORK", "SCHEDULE", "MATERIALS", "LABOR", "EQUIPMENT"}
}

// ParagraphKeywords mark a paragraph as key information. Matched against lower-cased text.
func ParagraphKeywords() []string {
	return []string{
		"price", "cost", "bid", "timeline", "schedule", "materials", "labor",
		"total", "proposal", "offer", "payment", "quality", "warranty",
	}
}
