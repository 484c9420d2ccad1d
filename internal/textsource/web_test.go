package textsource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"textkit/internal/domain"
)

const page = `<!DOCTYPE html>
<html><head><title>Ignored</title><style>p { color: red }</style></head>
<body>
  <h1>Heading is ignored</h1>
  <p>First <b>paragraph</b>.</p>
  <div><p>
     Second paragraph.
  </p></div>
  <p>   </p>
  <p>Third<script>var x = 1;</script> one.</p>
</body></html>`

func TestFetchText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "ua-test" {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	got, err := NewFetcher(FetcherConfig{UserAgent: "ua-test"}).FetchText(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchText() error = %v", err)
	}
	want := "First paragraph. Second paragraph. Third one."
	if got != want {
		t.Errorf("FetchText() = %q, want %q", got, want)
	}
}

func TestFetchTextErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	tests := []struct {
		name string
		url  string
	}{
		{"not found status", srv.URL},
		{"bad url", "://nope"},
		{"unreachable", "http://127.0.0.1:1/"},
	}
	f := NewFetcher(FetcherConfig{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.FetchText(context.Background(), tt.url); !errors.Is(err, domain.ErrFetch) {
				t.Errorf("FetchText() error = %v, want ErrFetch", err)
			}
		})
	}
}
