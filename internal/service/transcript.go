package service

import (
	"strings"
	"sync"
	"time"
)

// DefaultTranscriptLimit caps the number of retained exchanges per entity.
// Older exchanges are dropped first.
const DefaultTranscriptLimit = 50

// Exchange is one recorded question and its answer.
type Exchange struct {
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Provenance string    `json:"provenance"`
	AskedAt    time.Time `json:"asked_at"`
}

// Transcript keeps an in-memory record of question/answer exchanges per
// entity. Entity keys are case-insensitive, matching entity lookup in
// storage. The transcript is not persisted and resets on restart.
type Transcript struct {
	mu      sync.Mutex
	limit   int
	entries map[string][]Exchange
}

// NewTranscript creates a transcript with the given per-entity limit.
// A limit of zero or less uses DefaultTranscriptLimit.
func NewTranscript(limit int) *Transcript {
	if limit <= 0 {
		limit = DefaultTranscriptLimit
	}
	return &Transcript{
		limit:   limit,
		entries: make(map[string][]Exchange),
	}
}

func transcriptKey(entity string) string {
	return strings.ToLower(strings.TrimSpace(entity))
}

// Append records an exchange for the entity, evicting the oldest exchange
// once the limit is reached.
func (t *Transcript) Append(entity string, exchange Exchange) {
	key := transcriptKey(entity)
	if key == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	history := append(t.entries[key], exchange)
	if len(history) > t.limit {
		history = history[len(history)-t.limit:]
	}
	t.entries[key] = history
}

// Get returns the recorded exchanges for the entity, oldest first.
// The returned slice is a copy and safe to retain.
func (t *Transcript) Get(entity string) []Exchange {
	t.mu.Lock()
	defer t.mu.Unlock()

	history := t.entries[transcriptKey(entity)]
	out := make([]Exchange, len(history))
	copy(out, history)
	return out
}

// Clear discards the recorded exchanges for the entity.
func (t *Transcript) Clear(entity string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.entries, transcriptKey(entity))
}
