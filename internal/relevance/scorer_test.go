package relevance

import (
	"reflect"
	"testing"
)

func TestNewScorer_Terms(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     []string
	}{
		{
			name:     "empty question",
			question: "",
			want:     nil,
		},
		{
			name:     "short tokens filtered",
			question: "who is he",
			want:     []string{"who"},
		},
		{
			name:     "lowercased word tokens",
			question: "When was Company X founded?",
			want:     []string{"when", "was", "company", "founded"},
		},
		{
			name:     "punctuation stripped",
			question: "net-worth, in dollars!",
			want:     []string{"net", "worth", "dollars"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewScorer(tt.question).Terms()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Terms() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestScorer_Score(t *testing.T) {
	tests := []struct {
		name     string
		question string
		text     string
		want     int
	}{
		{
			name:     "no match scores zero",
			question: "when was it founded",
			text:     "The sky is blue.",
			want:     0,
		},
		{
			name:     "whole word scores fifteen",
			question: "which cat",
			text:     "A cat sat here.",
			want:     15,
		},
		{
			name:     "substring only scores five",
			question: "which cat",
			text:     "That category is empty.",
			want:     5,
		},
		{
			name:     "matching is case-insensitive",
			question: "COMPANY",
			text:     "the company grew",
			want:     15,
		},
		{
			name:     "terms accumulate",
			question: "when was Company X founded",
			text:     "Company X was founded in 1990.",
			want:     45, // whole-word hits on "was", "company", "founded"
		},
		{
			name:     "empty text scores zero",
			question: "when was it founded",
			text:     "",
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewScorer(tt.question).Score(tt.text)
			if got != tt.want {
				t.Errorf("Score(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

// A whole-word hit must never score below a substring-only hit for the same
// term, all else equal.
func TestScorer_WholeWordDominatesSubstring(t *testing.T) {
	scorer := NewScorer("tell me about the cat")

	wholeWord := scorer.Score("The cat slept.")
	substring := scorer.Score("The catalog arrived.")

	if wholeWord <= substring {
		t.Errorf("whole-word score %d should exceed substring score %d", wholeWord, substring)
	}
}
