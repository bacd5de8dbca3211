package answer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"researchbot/internal/corpus"
	"researchbot/internal/relevance"
	"researchbot/internal/service"
)

const (
	// sentenceTopK and chunkTopK are the result widths of the two local
	// search modes.
	sentenceTopK = 2
	chunkTopK    = 3

	// contextSentences bounds the remote context window in sentence mode:
	// the first N sentences drawn in chunk order across all documents.
	contextSentences = 40

	// previewRunes bounds the chunk preview in the multi-source local
	// fallback.
	previewRunes = 500

	defaultTimeout = 30 * time.Second

	noLocalDetails = "No details found in local data."
	dataNotFound   = "Data not found."
)

// Resolver answers free-text questions about an entity. It attempts the
// remote generative backend first and falls back to local lexical search
// when the backend is unconfigured or its call fails; it always returns an
// answer envelope, never an error for remote failures.
type Resolver interface {
	// Ask answers concisely from a single entity's sentences.
	Ask(ctx context.Context, entity *corpus.Entity, question string) (Result, error)
	// AskMultiSource answers from top-ranked chunks across the entity's
	// documents and carries per-source citations.
	AskMultiSource(ctx context.Context, entity *corpus.Entity, question string) (Result, error)
}

type resolver struct {
	generator  Generator // nil when no backend is configured
	categories []relevance.Category
	timeout    time.Duration
	logger     *slog.Logger
}

// NewResolver creates a resolver. A nil generator means the remote tier is
// unavailable and every question resolves locally. A zero timeout applies
// the default remote-call timeout.
func NewResolver(generator Generator, categories []relevance.Category, timeout time.Duration) Resolver {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if categories == nil {
		categories = relevance.DefaultCategories()
	}
	return &resolver{
		generator:  generator,
		categories: categories,
		timeout:    timeout,
		logger:     slog.Default(),
	}
}

// Ask resolves a question in sentence mode: the remote context is the first
// contextSentences sentences in chunk order; the local fallback ranks every
// sentence and joins the top results.
func (r *resolver) Ask(ctx context.Context, entity *corpus.Entity, question string) (Result, error) {
	logger := r.getLogger(ctx)

	if err := validate(entity, question); err != nil {
		return Result{}, err
	}

	sentences := collectSentences(entity)
	if len(sentences) == 0 {
		logger.InfoContext(ctx, "entity has no corpus text", "entity", entity.Name)
		return Result{Answer: noLocalDetails, Provenance: ProvenanceLocal}, nil
	}

	if r.generator != nil {
		window := sentences
		if len(window) > contextSentences {
			window = window[:contextSentences]
		}
		texts := make([]string, len(window))
		for i, s := range window {
			texts[i] = s.Text
		}
		prompt := fmt.Sprintf("Using this data: %s\n\nQuestion: %s\n\nAnswer concisely:",
			strings.Join(texts, "\n"), question)

		if text, err := r.generate(ctx, prompt); err == nil {
			logger.InfoContext(ctx, "question answered remotely",
				"entity", entity.Name, "answer_length", len(text))
			return Result{Answer: text, Provenance: ProvenanceRemote}, nil
		} else {
			logger.WarnContext(ctx, "generative backend call failed, falling back to local search", "error", err)
		}
	} else {
		logger.DebugContext(ctx, "generative backend not configured, using local search")
	}

	ranked := r.rank(question, sentences, sentenceTopK)
	if len(ranked) == 0 {
		logger.InfoContext(ctx, "local search found no matching sentences", "entity", entity.Name)
		return Result{Answer: noLocalDetails, Provenance: ProvenanceLocal}, nil
	}

	parts := make([]string, len(ranked))
	for i, u := range ranked {
		parts[i] = u.Text
	}
	return Result{Answer: strings.Join(parts, " "), Provenance: ProvenanceLocal}, nil
}

// AskMultiSource resolves a question in chunk mode. The top chunks are
// retrieved first; the remote prompt carries inline provenance tags and a
// successful answer is suffixed with a deduplicated source list. The local
// fallback extracts rather than synthesizes: a preview of the best chunk
// plus its source line.
func (r *resolver) AskMultiSource(ctx context.Context, entity *corpus.Entity, question string) (Result, error) {
	logger := r.getLogger(ctx)

	if err := validate(entity, question); err != nil {
		return Result{}, err
	}

	ranked := r.rank(question, collectChunks(entity), chunkTopK)
	if len(ranked) == 0 {
		logger.InfoContext(ctx, "no relevant chunks for question", "entity", entity.Name)
		return Result{Answer: dataNotFound, Provenance: ProvenanceLocal}, nil
	}

	citations := dedupCitations(ranked)

	if r.generator != nil {
		if text, err := r.generate(ctx, multiSourcePrompt(ranked, question)); err == nil {
			logger.InfoContext(ctx, "question answered remotely",
				"entity", entity.Name, "sources", len(citations), "answer_length", len(text))
			return Result{
				Answer:     text + sourcesBlock(citations),
				Provenance: ProvenanceRemote,
				Citations:  citations,
			}, nil
		} else {
			logger.WarnContext(ctx, "generative backend call failed, falling back to local search", "error", err)
		}
	} else {
		logger.DebugContext(ctx, "generative backend not configured, using local search")
	}

	best := ranked[0]
	answer := fmt.Sprintf("%s...\n\nSource: %s - %s", preview(best.Text), best.Source, best.URL)
	return Result{
		Answer:     answer,
		Provenance: ProvenanceLocal,
		Citations:  []Citation{{Source: string(best.Source), URL: best.URL}},
	}, nil
}

// generate runs the remote call under the configured timeout. A timeout is
// indistinguishable from any other call failure to the caller.
func (r *resolver) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.generator.GenerateContent(ctx, prompt)
}

// rank scores units with the term scorer and category booster, then orders,
// deduplicates and truncates them.
func (r *resolver) rank(question string, units []relevance.Unit, k int) []relevance.ScoredUnit {
	scorer := relevance.NewScorer(question)
	booster := relevance.NewBooster(question, r.categories)

	scored := make([]relevance.ScoredUnit, 0, len(units))
	for _, u := range units {
		score := scorer.Score(u.Text) + booster.Boost(u.Text)
		if score > 0 {
			scored = append(scored, relevance.ScoredUnit{Unit: u, Score: score})
		}
	}
	return relevance.Rank(scored, k)
}

func validate(entity *corpus.Entity, question string) error {
	if entity == nil {
		return &service.ValidationError{Field: "entity", Message: "is required"}
	}
	if strings.TrimSpace(question) == "" {
		return &service.ValidationError{Field: "question", Message: "is required"}
	}
	return nil
}

// collectSentences segments every chunk of every document into sentences, in
// chunk order. Chunks with blank text are skipped rather than aborting the
// scan.
func collectSentences(entity *corpus.Entity) []relevance.Unit {
	var units []relevance.Unit
	for _, doc := range entity.Documents {
		for _, chunk := range doc.Chunks {
			for _, sentence := range corpus.Sentences(chunk.Text) {
				units = append(units, relevance.Unit{
					Text:   sentence,
					Source: doc.Source,
					URL:    doc.URL,
				})
			}
		}
	}
	return units
}

// collectChunks gathers every non-blank chunk with its provenance.
func collectChunks(entity *corpus.Entity) []relevance.Unit {
	var units []relevance.Unit
	for _, doc := range entity.Documents {
		for _, chunk := range doc.Chunks {
			if strings.TrimSpace(chunk.Text) == "" {
				continue
			}
			units = append(units, relevance.Unit{
				Text:   chunk.Text,
				Source: doc.Source,
				URL:    doc.URL,
			})
		}
	}
	return units
}

// multiSourcePrompt builds the combined request for the chunk variant, with
// an inline provenance tag ahead of each chunk.
func multiSourcePrompt(ranked []relevance.ScoredUnit, question string) string {
	var b strings.Builder
	for _, u := range ranked {
		fmt.Fprintf(&b, "\n[Source: %s | URL: %s]\n%s\n", u.Source, u.URL, u.Text)
	}

	return fmt.Sprintf(`Answer using ONLY the provided data.
Cite source names in brackets like [Wikipedia] after each fact.
If answer not found, reply exactly: %s

DATA:
%s

QUESTION:
%s`, dataNotFound, b.String(), question)
}

// dedupCitations keeps one citation per (source, url) pair, in rank order.
func dedupCitations(ranked []relevance.ScoredUnit) []Citation {
	seen := make(map[Citation]bool, len(ranked))
	citations := make([]Citation, 0, len(ranked))
	for _, u := range ranked {
		c := Citation{Source: string(u.Source), URL: u.URL}
		if seen[c] {
			continue
		}
		seen[c] = true
		citations = append(citations, c)
	}
	return citations
}

// sourcesBlock renders the numbered source list appended to remote answers.
func sourcesBlock(citations []Citation) string {
	var b strings.Builder
	b.WriteString("\n\nSources:\n")
	for i, c := range citations {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, c.Source, c.URL)
	}
	return b.String()
}

// preview truncates chunk text to previewRunes runes.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewRunes {
		return text
	}
	return string(runes[:previewRunes])
}

// getLogger extracts logger from context or returns default logger.
func (r *resolver) getLogger(ctx context.Context) *slog.Logger {
	type loggerKeyType string
	const loggerKey loggerKeyType = "logger"
	if ctxLogger := ctx.Value(loggerKey); ctxLogger != nil {
		if l, ok := ctxLogger.(*slog.Logger); ok {
			return l
		}
	}
	return r.logger
}
