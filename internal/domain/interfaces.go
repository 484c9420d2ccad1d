package domain

import "context"

// Segmenter splits raw text into an ordered sequence of sentences.
type Segmenter interface {
	Segment(text string) []string
}

// Chunker partitions text into pieces of at most MaxSize characters.
type Chunker interface {
	Chunk(text string) []string
	MaxSize() int
}

// Summarizer produces an extractive summary of the provided text.
type Summarizer interface {
	Summarize(ctx context.Context, text string, numSentences int) (string, error)
}

// ProgressReporter receives progress for multi-step operations.
// Start may be called again when an operation is restarted.
type ProgressReporter interface {
	Start(total int)
	Increment()
	Finish()
}

// NopProgress discards all progress updates.
type NopProgress struct{}

func (NopProgress) Start(int)  {}
func (NopProgress) Increment() {}
func (NopProgress) Finish()    {}
