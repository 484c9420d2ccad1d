package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"
)

type fakeModels struct {
	model  string
	prompt string
	resp   *genai.GenerateContentResponse
	err    error
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func response(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestTranslate(t *testing.T) {
	fake := &fakeModels{resp: response("Hola ", "mundo")}
	c := newClient(fake, "")

	got, err := c.Translate(context.Background(), "Hello world", "en", "es")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "Hola mundo" {
		t.Errorf("Translate() = %q, want %q", got, "Hola mundo")
	}
	if fake.model != DefaultModel {
		t.Errorf("model = %q, want %q", fake.model, DefaultModel)
	}
	for _, want := range []string{`"en"`, `"es"`, "Hello world"} {
		if !strings.Contains(fake.prompt, want) {
			t.Errorf("prompt missing %s: %q", want, fake.prompt)
		}
	}
}

func TestTranslateErrors(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeModels
	}{
		{"api error", &fakeModels{err: errors.New("429 RESOURCE_EXHAUSTED")}},
		{"nil response", &fakeModels{}},
		{"no candidates", &fakeModels{resp: &genai.GenerateContentResponse{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := newClient(tt.fake, "m").Translate(context.Background(), "x", "en", "fr"); err == nil {
				t.Error("Translate() should fail")
			}
		})
	}
}

func TestNewClientMissingKey(t *testing.T) {
	t.Setenv("TEXTKIT_TEST_GEMINI_KEY", "")
	if _, err := NewClient(context.Background(), Config{APIKeyEnv: "TEXTKIT_TEST_GEMINI_KEY"}); err == nil {
		t.Error("NewClient() should fail without an API key")
	}
}
