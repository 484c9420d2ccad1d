package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"textkit/internal/domain"
)

const keyEnv = "TEXTKIT_TEST_OPENAI_KEY"

func TestNewClientMissingKey(t *testing.T) {
	t.Setenv(keyEnv, "")
	_, err := NewClient(Config{APIKeyEnv: keyEnv})
	if !errors.Is(err, domain.ErrModelLoad) {
		t.Errorf("NewClient() error = %v, want ErrModelLoad", err)
	}
}

func TestEmbed(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []float64
	}{
		{"openai shape", `{"data":[{"embedding":[0.1,0.2,0.3]}]}`, []float64{0.1, 0.2, 0.3}},
		{"ollama shape", `{"embedding":[1,2]}`, []float64{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/embeddings" {
					t.Errorf("path = %s, want /embeddings", r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer secret" {
					t.Errorf("Authorization = %q", got)
				}
				var body map[string]string
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("decode body: %v", err)
				}
				if body["input"] != "hello" || body["model"] != "m" {
					t.Errorf("body = %v", body)
				}
				w.Write([]byte(tt.response))
			}))
			defer srv.Close()

			t.Setenv(keyEnv, "secret")
			c, err := NewClient(Config{BaseURL: srv.URL, APIKeyEnv: keyEnv, Model: "m"})
			if err != nil {
				t.Fatalf("NewClient() error = %v", err)
			}
			got, err := c.Embed(context.Background(), "hello")
			if err != nil {
				t.Fatalf("Embed() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Embed() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Embed()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
			if c.Dimension() != len(tt.want) {
				t.Errorf("Dimension() = %d, want %d", c.Dimension(), len(tt.want))
			}
		})
	}
}

func TestEmbedSingleAttemptOnServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	t.Setenv(keyEnv, "secret")
	c, err := NewClient(Config{BaseURL: srv.URL, APIKeyEnv: keyEnv})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if _, err := c.Embed(context.Background(), "hello"); err == nil {
		t.Error("Embed() should fail on 503")
	}
	if calls != 1 {
		t.Errorf("server called %d times, want 1", calls)
	}
}

func TestEmbedEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	t.Setenv(keyEnv, "secret")
	c, _ := NewClient(Config{BaseURL: srv.URL, APIKeyEnv: keyEnv})
	if _, err := c.Embed(context.Background(), "hello"); err == nil {
		t.Error("Embed() should fail when no embedding is returned")
	}
}
