package chunker

// DefaultMaxChunkSize is the largest piece the translation service accepts.
const DefaultMaxChunkSize = 4000

// FixedChunker partitions text into consecutive, non-overlapping pieces of
// maxSize characters. The last piece holds the remainder. Boundaries ignore
// words and sentences.
type FixedChunker struct {
	maxSize int
}

func NewFixedChunker(maxSize int) *FixedChunker {
	if maxSize <= 0 {
		maxSize = DefaultMaxChunkSize
	}
	return &FixedChunker{maxSize: maxSize}
}

// MaxSize reports the configured chunk size in characters.
func (c *FixedChunker) MaxSize() int { return c.maxSize }

// Chunk splits on code point boundaries so multi-byte text is never cut
// inside a character.
func (c *FixedChunker) Chunk(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	chunks := make([]string, 0, (len(runes)+c.maxSize-1)/c.maxSize)
	for i := 0; i < len(runes); i += c.maxSize {
		end := i + c.maxSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
