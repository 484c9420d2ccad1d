package ollama

import (
	"context"
	"fmt"
	"strings"

	"github.com/philippgille/chromem-go"
)

const (
	DefaultURL   = "http://localhost:11434"
	DefaultModel = "nomic-embed-text"
)

// Encoder embeds sentences with a local Ollama server through chromem-go.
// chromem normalizes the returned vectors.
type Encoder struct {
	model     string
	embed     chromem.EmbeddingFunc
	dimension int
}

// Config configures the Ollama encoder. URL is the server root without /api.
type Config struct {
	URL   string
	Model string
}

func NewEncoder(cfg Config) *Encoder {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	apiURL := strings.TrimSuffix(cfg.URL, "/") + "/api"
	return &Encoder{
		model: cfg.Model,
		embed: chromem.NewEmbeddingFuncOllama(cfg.Model, apiURL),
	}
}

func (e *Encoder) Name() string { return "ollama" }

func (e *Encoder) Prepare(context.Context, []string) error { return nil }

func (e *Encoder) Dimension() int { return e.dimension }

func (e *Encoder) Embed(ctx context.Context, text string) ([]float64, error) {
	v, err := e.embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("ollama embed with %s: %w", e.model, err)
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	if e.dimension == 0 {
		e.dimension = len(out)
	}
	return out, nil
}
