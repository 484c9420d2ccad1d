package chunker

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"textkit/internal/domain"
)

// SentenceSegmenter splits text into sentences with the Punkt English model.
type SentenceSegmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewSentenceSegmenter loads the bundled Punkt training data. A failure here
// means the model assets are unusable.
func NewSentenceSegmenter() (*SentenceSegmenter, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: sentence tokenizer: %v", domain.ErrModelLoad, err)
	}
	return &SentenceSegmenter{tokenizer: tok}, nil
}

// Segment returns the trimmed, non-empty sentences of text in order.
func (s *SentenceSegmenter) Segment(text string) []string {
	var out []string
	for _, sent := range s.tokenizer.Tokenize(text) {
		t := strings.TrimSpace(sent.Text)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
