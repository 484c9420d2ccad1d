package translator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"textkit/internal/domain"
)

// fakeClient upper-cases its input and can be told to fail on given calls.
type fakeClient struct {
	calls   []string
	failOn  map[int]bool
	srcSeen []string
	dstSeen []string
}

func (f *fakeClient) Translate(_ context.Context, text, src, dest string) (string, error) {
	f.calls = append(f.calls, text)
	f.srcSeen = append(f.srcSeen, src)
	f.dstSeen = append(f.dstSeen, dest)
	if f.failOn[len(f.calls)] {
		return "", errors.New("service unavailable")
	}
	return strings.ToUpper(text), nil
}

type sleepRecorder struct {
	sleeps []time.Duration
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.sleeps = append(s.sleeps, d)
	return nil
}

type countingProgress struct {
	starts     []int
	increments int
	finished   int
}

func (p *countingProgress) Start(total int) { p.starts = append(p.starts, total) }
func (p *countingProgress) Increment()      { p.increments++ }
func (p *countingProgress) Finish()         { p.finished++ }

var instantRetry = RetryPolicy{MaxAttempts: 5, BaseDelay: 0, Multiplier: 2}

func newTestEngine(c Client, s *sleepRecorder, opts ...Option) *Engine {
	opts = append([]Option{WithSleep(s.sleep), WithRetryPolicy(instantRetry)}, opts...)
	return New(c, "en", opts...)
}

func TestTranslateShortContent(t *testing.T) {
	client := &fakeClient{}
	sleeps := &sleepRecorder{}
	e := newTestEngine(client, sleeps)

	content := strings.Repeat("b", MaxChunkSize)
	got, err := e.Translate(context.Background(), content, "fr")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != strings.ToUpper(content) {
		t.Errorf("Translate() returned unexpected text")
	}
	if len(client.calls) != 1 {
		t.Errorf("service called %d times, want 1", len(client.calls))
	}
	if client.srcSeen[0] != "en" || client.dstSeen[0] != "fr" {
		t.Errorf("languages = %s -> %s, want en -> fr", client.srcSeen[0], client.dstSeen[0])
	}
	if len(sleeps.sleeps) != 1 || sleeps.sleeps[0] != SleepSeconds*time.Second {
		t.Errorf("sleeps = %v, want one pause of %ds", sleeps.sleeps, SleepSeconds)
	}
}

func TestTranslateChunkCount(t *testing.T) {
	tests := []struct {
		name      string
		length    int
		wantCalls int
	}{
		{"boundary plus one", MaxChunkSize + 1, 2},
		{"two exact chunks", 2 * MaxChunkSize, 2},
		{"three chunks", 2*MaxChunkSize + 17, 3},
		{"many chunks", 10*MaxChunkSize - 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			sleeps := &sleepRecorder{}
			e := newTestEngine(client, sleeps)

			content := strings.Repeat("a", tt.length)
			got, err := e.Translate(context.Background(), content, "de")
			if err != nil {
				t.Fatalf("Translate() error = %v", err)
			}
			if len(client.calls) != tt.wantCalls {
				t.Errorf("service called %d times, want %d", len(client.calls), tt.wantCalls)
			}
			if len(sleeps.sleeps) != tt.wantCalls {
				t.Errorf("slept %d times, want %d", len(sleeps.sleeps), tt.wantCalls)
			}
			sum := 0
			for _, c := range client.calls {
				if len(c) > MaxChunkSize {
					t.Errorf("chunk of %d characters exceeds %d", len(c), MaxChunkSize)
				}
				sum += len(c)
			}
			if len(got) != sum {
				t.Errorf("result length = %d, want sum of chunks %d", len(got), sum)
			}
		})
	}
}

func TestTranslateBoundaryChunks(t *testing.T) {
	client := &fakeClient{}
	e := newTestEngine(client, &sleepRecorder{})

	if _, err := e.Translate(context.Background(), strings.Repeat("a", 4001), "es"); err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if len(client.calls) != 2 || len(client.calls[0]) != 4000 || len(client.calls[1]) != 1 {
		lens := make([]int, len(client.calls))
		for i, c := range client.calls {
			lens[i] = len(c)
		}
		t.Errorf("chunk lengths = %v, want [4000 1]", lens)
	}
}

func TestTranslateConcatenatesInOrder(t *testing.T) {
	client := &fakeClient{}
	e := newTestEngine(client, &sleepRecorder{}, WithChunkSize(3))

	got, err := e.Translate(context.Background(), "abcdefgh", "es")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "ABCDEFGH" {
		t.Errorf("Translate() = %q, want %q", got, "ABCDEFGH")
	}
}

func TestTranslateRetrySucceedsOnFifthAttempt(t *testing.T) {
	client := &fakeClient{failOn: map[int]bool{1: true, 2: true, 3: true, 4: true}}
	e := newTestEngine(client, &sleepRecorder{})

	got, err := e.Translate(context.Background(), "hello", "hi")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "HELLO" {
		t.Errorf("Translate() = %q, want %q", got, "HELLO")
	}
	if len(client.calls) != 5 {
		t.Errorf("service called %d times, want 5", len(client.calls))
	}
}

func TestTranslateRetryExhausted(t *testing.T) {
	client := &fakeClient{failOn: map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true}}
	e := newTestEngine(client, &sleepRecorder{})

	got, err := e.Translate(context.Background(), "hello", "hi")
	if !errors.Is(err, domain.ErrTranslation) {
		t.Fatalf("Translate() error = %v, want ErrTranslation", err)
	}
	if got != "" {
		t.Errorf("Translate() returned partial result %q", got)
	}
	if len(client.calls) != 5 {
		t.Errorf("service called %d times, want 5", len(client.calls))
	}
}

func TestTranslateRetryRestartsFromFirstChunk(t *testing.T) {
	// Second call (chunk 2 of attempt 1) fails; attempt 2 starts over.
	client := &fakeClient{failOn: map[int]bool{2: true}}
	progress := &countingProgress{}
	e := newTestEngine(client, &sleepRecorder{}, WithChunkSize(2), WithProgress(progress))

	got, err := e.Translate(context.Background(), "abcdef", "it")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "ABCDEF" {
		t.Errorf("Translate() = %q, want %q", got, "ABCDEF")
	}
	want := []string{"ab", "cd", "ab", "cd", "ef"}
	if strings.Join(client.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", client.calls, want)
	}
	if len(progress.starts) != 2 || progress.starts[1] != 3 || progress.finished != 2 {
		t.Errorf("progress = %+v, want two starts of 3 and a finish per attempt", progress)
	}
}

func TestTranslateFailureFinishesProgress(t *testing.T) {
	client := &fakeClient{failOn: map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}}
	progress := &countingProgress{}
	e := newTestEngine(client, &sleepRecorder{}, WithProgress(progress))

	if _, err := e.Translate(context.Background(), "hello", "fr"); err == nil {
		t.Fatal("Translate() should fail when every attempt fails")
	}
	if len(progress.starts) != 5 || progress.finished != 5 {
		t.Errorf("progress = %+v, want five starts and five finishes", progress)
	}
}

func TestTranslateCancelledStopsRetrying(t *testing.T) {
	client := &fakeClient{}
	ctx, cancel := context.WithCancel(context.Background())
	e := New(client, "en", WithRetryPolicy(instantRetry), WithSleep(func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}))

	_, err := e.Translate(ctx, "hello", "fr")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Translate() error = %v, want context.Canceled", err)
	}
	if len(client.calls) != 1 {
		t.Errorf("service called %d times after cancel, want 1", len(client.calls))
	}
}

func TestSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if err := Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep() error = %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Sleep() did not return promptly on a cancelled context")
	}
	if err := Sleep(context.Background(), time.Millisecond); err != nil {
		t.Errorf("Sleep() error = %v", err)
	}
}
