package relevance

import "researchbot/internal/corpus"

// Unit is one candidate answer fragment (a sentence or a whole chunk)
// together with the provenance of the document it came from.
type Unit struct {
	Text   string
	Source corpus.SourceKind
	URL    string
}

// ScoredUnit pairs a unit with its relevance score. Scored units exist only
// within a single query's execution.
type ScoredUnit struct {
	Unit
	Score int
}
