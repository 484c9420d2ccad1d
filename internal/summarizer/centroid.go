package summarizer

import (
	"context"
	"fmt"
	"strings"

	"textkit/internal/embedding"
)

// DefaultMaxTokens bounds the sentence length handed to the encoder.
const DefaultMaxTokens = 512

// CentroidScorer embeds every sentence, averages the vectors into a document
// embedding, and scores each sentence by cosine similarity to that centroid.
type CentroidScorer struct {
	encoder   embedding.Encoder
	maxTokens int
}

func NewCentroidScorer(encoder embedding.Encoder, maxTokens int) *CentroidScorer {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &CentroidScorer{encoder: encoder, maxTokens: maxTokens}
}

func (s *CentroidScorer) Name() string { return "centroid/" + s.encoder.Name() }

func (s *CentroidScorer) Score(ctx context.Context, sentences []string) ([]float64, error) {
	inputs := make([]string, len(sentences))
	for i, sent := range sentences {
		inputs[i] = truncateTokens(sent, s.maxTokens)
	}
	if err := s.encoder.Prepare(ctx, inputs); err != nil {
		return nil, fmt.Errorf("prepare encoder: %w", err)
	}

	vectors := make([][]float64, len(inputs))
	for i, in := range inputs {
		vec, err := s.encoder.Embed(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("embed sentence %d: %w", i, err)
		}
		if i > 0 && len(vec) != len(vectors[0]) {
			return nil, fmt.Errorf("sentence %d embedding dimension %d differs from %d", i, len(vec), len(vectors[0]))
		}
		vectors[i] = vec
	}

	centroid, err := embedding.Mean(vectors)
	if err != nil {
		return nil, err
	}
	scores := make([]float64, len(vectors))
	for i, v := range vectors {
		scores[i] = embedding.Cosine(v, centroid)
	}
	return scores, nil
}

// truncateTokens keeps the first max whitespace-separated tokens of s.
func truncateTokens(s string, max int) string {
	fields := strings.Fields(s)
	if len(fields) <= max {
		return s
	}
	return strings.Join(fields[:max], " ")
}
