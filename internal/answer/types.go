package answer

import "context"

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_generator.go -package=mocks researchbot/internal/answer Generator

// Generator is the remote generative-answer capability. It is defined from
// the resolver's perspective: one combined prompt in, one answer text out,
// and every non-success path surfaced as a plain error.
type Generator interface {
	// GenerateContent submits a prompt and returns the generated answer text.
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Provenance tags which tier produced an answer.
type Provenance string

const (
	// ProvenanceRemote marks answers produced by the generative backend.
	ProvenanceRemote Provenance = "remote"
	// ProvenanceLocal marks answers produced by the local lexical search.
	ProvenanceLocal Provenance = "local"
)

// Citation names one source document that contributed to an answer.
type Citation struct {
	Source string `json:"source"`
	URL    string `json:"url"`
}

// Result is the answer envelope produced for one question.
type Result struct {
	Answer     string     `json:"answer"`
	Provenance Provenance `json:"provenance"`
	// Citations is populated by the multi-source variant only.
	Citations []Citation `json:"citations,omitempty"`
}
