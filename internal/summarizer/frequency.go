package summarizer

import (
	"context"
	"math"
	"regexp"
	"strings"

	"textkit/internal/embedding/tfidf"
)

// FrequencyScorer ranks sentences by word frequency (stopwords filtered).
type FrequencyScorer struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewFrequencyScorer creates a frequency-based sentence scorer.
func NewFrequencyScorer() *FrequencyScorer {
	return &FrequencyScorer{
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    tfidf.Stopwords(),
	}
}

func (s *FrequencyScorer) Name() string { return "frequency" }

// Score sums the normalized frequency of each sentence's words, damped by
// the square root of the sentence length.
func (s *FrequencyScorer) Score(_ context.Context, sentences []string) ([]float64, error) {
	tokens := make([][]string, len(sentences))
	freq := map[string]float64{}
	for i, sent := range sentences {
		tokens[i] = s.tokens(sent)
		for _, tok := range tokens[i] {
			if _, ok := s.stopwords[tok]; ok {
				continue
			}
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}

	scores := make([]float64, len(sentences))
	for i, toks := range tokens {
		score := 0.0
		for _, tok := range toks {
			score += freq[tok]
		}
		if l := float64(len(toks)); l > 0 {
			score /= math.Sqrt(l)
		}
		scores[i] = score
	}
	return scores, nil
}

func (s *FrequencyScorer) tokens(text string) []string {
	return s.tokenPattern.FindAllString(strings.ToLower(text), -1)
}
