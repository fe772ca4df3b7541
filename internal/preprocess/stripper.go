package preprocess

import "strings"

// BoilerplateStripper deletes recurring non-substantive text and normalizes whitespace.
type BoilerplateStripper struct {
	sets []PatternSet
}

// StripperOption configures a BoilerplateStripper.
type StripperOption func(*stripperConfig)

type stripperConfig struct {
	legal bool
	extra []PatternSet
}

// WithLegal toggles the legal-sentence set. It is on by default.
func WithLegal(enabled bool) StripperOption {
	return func(c *stripperConfig) { c.legal = enabled }
}

// WithPatternSets appends additional recognizer sets after the built-in ones.
func WithPatternSets(sets ...PatternSet) StripperOption {
	return func(c *stripperConfig) { c.extra = append(c.extra, sets...) }
}

// NewBoilerplateStripper builds a stripper over the standard set, the legal set, and any extras.
func NewBoilerplateStripper(opts ...StripperOption) *BoilerplateStripper {
	cfg := stripperConfig{legal: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	sets := []PatternSet{StandardBoilerplate()}
	if cfg.legal {
		sets = append(sets, LegalBoilerplate())
	}
	sets = append(sets, cfg.extra...)

	return &BoilerplateStripper{sets: sets}
}

// Strip applies all recognizers before collapsing whitespace.
func (s *BoilerplateStripper) Strip(text string) string {
	for _, set := range s.sets {
		text = set.Apply(text)
	}
	return NormalizeWhitespace(text)
}

// NormalizeWhitespace drops trailing blanks on each line, collapses 3+ newlines to two
// and runs of spaces/tabs to one, then trims the ends.
func NormalizeWhitespace(text string) string {
	text = trailingSpaceRe.ReplaceAllString(text, "")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	text = spaceRunRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
