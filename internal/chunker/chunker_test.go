package chunker

import (
	"strings"
	"testing"

	"textkit/internal/domain"
)

var _ domain.Chunker = (*FixedChunker)(nil)

func TestFixedChunker(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		text    string
		wantLen []int
	}{
		{"empty", 4000, "", nil},
		{"shorter than size", 4000, "hello", []int{5}},
		{"exact size", 4, "abcd", []int{4}},
		{"one over", 4000, strings.Repeat("a", 4001), []int{4000, 1}},
		{"several", 3, "abcdefgh", []int{3, 3, 2}},
		{"multibyte", 2, "héllo", []int{2, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := NewFixedChunker(tt.size).Chunk(tt.text)
			if len(chunks) != len(tt.wantLen) {
				t.Fatalf("Chunk() returned %d chunks, want %d", len(chunks), len(tt.wantLen))
			}
			for i, c := range chunks {
				if n := len([]rune(c)); n != tt.wantLen[i] {
					t.Errorf("chunk %d length = %d, want %d", i, n, tt.wantLen[i])
				}
			}
			if got := strings.Join(chunks, ""); got != tt.text {
				t.Errorf("joined chunks = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestFixedChunkerDefaultSize(t *testing.T) {
	if got := NewFixedChunker(0).MaxSize(); got != DefaultMaxChunkSize {
		t.Errorf("MaxSize() = %d, want %d", got, DefaultMaxChunkSize)
	}
}

func TestSentenceSegmenter(t *testing.T) {
	seg, err := NewSentenceSegmenter()
	if err != nil {
		t.Fatalf("NewSentenceSegmenter() error = %v", err)
	}

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple sentences",
			text: "Paris is the capital of France. It is known for the Eiffel Tower. The city has a population of over two million. It is located on the Seine river.",
			want: []string{
				"Paris is the capital of France.",
				"It is known for the Eiffel Tower.",
				"The city has a population of over two million.",
				"It is located on the Seine river.",
			},
		},
		{
			name: "decimal number",
			text: "The index rose 3.5 percent today. Analysts were surprised.",
			want: []string{
				"The index rose 3.5 percent today.",
				"Analysts were surprised.",
			},
		},
		{
			name: "title abbreviation",
			text: "Dr. Smith went to Washington. He arrived on Tuesday.",
			want: []string{
				"Dr. Smith went to Washington.",
				"He arrived on Tuesday.",
			},
		},
		{
			name: "e.g. and currency",
			text: "Mr. Jones paid $3.50 for coffee, e.g. a latte. It was good.",
			want: []string{
				"Mr. Jones paid $3.50 for coffee, e.g. a latte.",
				"It was good.",
			},
		},
		{
			name: "initialism",
			text: "The U.S. economy grew. Prices rose.",
			want: []string{
				"The U.S. economy grew.",
				"Prices rose.",
			},
		},
		{
			name: "blank input",
			text: "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seg.Segment(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Segment() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
