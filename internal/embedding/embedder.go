package embedding

import "context"

// Encoder converts a sentence into a fixed-length numeric vector.
// Implementations may require a preparation phase over the corpus; remote
// encoders treat Prepare as a no-op.
type Encoder interface {
	Name() string
	Prepare(ctx context.Context, corpus []string) error
	Dimension() int
	Embed(ctx context.Context, text string) ([]float64, error)
}
