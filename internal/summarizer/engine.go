// Package summarizer implements extractive summarization: sentences are
// scored, the best ones are kept, and the summary preserves document order.
package summarizer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"textkit/internal/domain"
)

// DefaultSentences is the summary length used when the caller has no preference.
const DefaultSentences = 5

// Scorer assigns one relevance score per sentence.
type Scorer interface {
	Name() string
	Score(ctx context.Context, sentences []string) ([]float64, error)
}

// Engine ties a sentence segmenter to a scorer. Construct it once and reuse
// it for sequential calls; it is not safe for concurrent use because
// encoders may be refit on every document.
type Engine struct {
	segmenter domain.Segmenter
	scorer    Scorer
}

func New(segmenter domain.Segmenter, scorer Scorer) *Engine {
	return &Engine{segmenter: segmenter, scorer: scorer}
}

// Summarize returns the numSentences highest-scoring sentences of text in
// their original order, joined with a single space. Requests for more
// sentences than the text holds return every sentence.
func (e *Engine) Summarize(ctx context.Context, text string, numSentences int) (string, error) {
	if numSentences <= 0 {
		return "", fmt.Errorf("%w: number of sentences must be positive, got %d", domain.ErrInput, numSentences)
	}
	sentences := e.segmenter.Segment(text)
	if len(sentences) == 0 {
		return "", fmt.Errorf("%w: text contains no sentences", domain.ErrInput)
	}

	scores, err := e.scorer.Score(ctx, sentences)
	if err != nil {
		return "", fmt.Errorf("%s scoring: %w", e.scorer.Name(), err)
	}
	if len(scores) != len(sentences) {
		return "", fmt.Errorf("%s scoring returned %d scores for %d sentences", e.scorer.Name(), len(scores), len(sentences))
	}

	selected := topIndices(scores, numSentences)
	out := make([]string, len(selected))
	for i, idx := range selected {
		out[i] = sentences[idx]
	}
	return strings.Join(out, " "), nil
}

// topIndices returns the indices of the n largest scores in ascending index
// order. Equal scores keep the earlier sentence.
func topIndices(scores []float64, n int) []int {
	idxs := make([]int, len(scores))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool { return scores[idxs[a]] > scores[idxs[b]] })
	if n > len(idxs) {
		n = len(idxs)
	}
	selected := idxs[:n]
	sort.Ints(selected)
	return selected
}
