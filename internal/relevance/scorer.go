package relevance

import (
	"regexp"
	"strings"
)

const (
	// substringPoints is awarded per query term found anywhere in the unit.
	substringPoints = 5
	// wholeWordPoints is awarded on top of substringPoints when the term
	// also matches on word boundaries, so whole-word hits score 15 total
	// and substring-only hits score 5.
	wholeWordPoints = 10
	// minTermLength filters out short stopword-length tokens ("is", "of").
	minTermLength = 3
)

var wordPattern = regexp.MustCompile(`\w+`)

// Scorer scores text units against the terms of one question. The term list
// and per-term word-boundary matchers are built once per question so the
// corpus scan stays a cheap loop.
type Scorer struct {
	terms     []string
	wordExprs []*regexp.Regexp
}

// NewScorer extracts scoring terms from a question: lowercase word tokens of
// at least minTermLength characters.
func NewScorer(question string) *Scorer {
	var s Scorer
	for _, token := range wordPattern.FindAllString(strings.ToLower(question), -1) {
		if len(token) < minTermLength {
			continue
		}
		s.terms = append(s.terms, token)
		s.wordExprs = append(s.wordExprs, regexp.MustCompile(`\b`+regexp.QuoteMeta(token)+`\b`))
	}
	return &s
}

// Terms returns the extracted query terms in question order.
func (s *Scorer) Terms() []string {
	return s.terms
}

// Score computes the non-negative term score for a unit of text. Substring
// hits count substringPoints, whole-word hits a further wholeWordPoints. A
// zero score means no term matched; such units are excluded from ranking by
// the caller.
func (s *Scorer) Score(text string) int {
	if len(s.terms) == 0 {
		return 0
	}

	lower := strings.ToLower(text)
	score := 0
	for i, term := range s.terms {
		if !strings.Contains(lower, term) {
			continue
		}
		score += substringPoints
		if s.wordExprs[i].MatchString(lower) {
			score += wholeWordPoints
		}
	}
	return score
}
