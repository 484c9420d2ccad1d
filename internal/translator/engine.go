// Package translator translates arbitrarily long text through a remote
// service that limits request size and rate.
package translator

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cenkalti/backoff/v4"

	"textkit/internal/chunker"
	"textkit/internal/domain"
	"textkit/internal/logger"
)

const (
	// SleepSeconds is the pause after every service call.
	SleepSeconds = 10
	// MaxChunkSize is the largest number of characters sent in one call.
	MaxChunkSize = chunker.DefaultMaxChunkSize
)

// Client is a remote translation service.
type Client interface {
	Translate(ctx context.Context, text, src, dest string) (string, error)
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Engine translates content from a fixed source language. Chunks are sent
// strictly one after another with a pause after each call.
type Engine struct {
	client         Client
	sourceLanguage string
	chunker        domain.Chunker
	pause          time.Duration
	retry          RetryPolicy
	sleep          SleepFunc
	progress       domain.ProgressReporter
	logger         logger.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithChunkSize overrides MaxChunkSize.
func WithChunkSize(n int) Option {
	return func(e *Engine) { e.chunker = chunker.NewFixedChunker(n) }
}

// WithPause overrides the pause after each call.
func WithPause(d time.Duration) Option {
	return func(e *Engine) { e.pause = d }
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(e *Engine) { e.retry = p }
}

// WithSleep replaces the function used for the pause between calls.
func WithSleep(fn SleepFunc) Option {
	return func(e *Engine) { e.sleep = fn }
}

func WithProgress(p domain.ProgressReporter) Option {
	return func(e *Engine) { e.progress = p }
}

func WithLogger(l logger.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine that translates from sourceLanguage.
func New(client Client, sourceLanguage string, opts ...Option) *Engine {
	e := &Engine{
		client:         client,
		sourceLanguage: sourceLanguage,
		chunker:        chunker.NewFixedChunker(MaxChunkSize),
		pause:          SleepSeconds * time.Second,
		retry:          DefaultRetryPolicy(),
		sleep:          Sleep,
		progress:       domain.NopProgress{},
		logger:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Translate returns content translated into dest. The whole operation is
// retried under the engine's RetryPolicy; a failure on any chunk restarts
// from the first chunk. No partial result is ever returned.
func (e *Engine) Translate(ctx context.Context, content, dest string) (string, error) {
	attempt := 0
	op := func() (string, error) {
		attempt++
		out, err := e.translateOnce(ctx, content, dest)
		if err != nil && ctx.Err() != nil {
			return "", backoff.Permanent(err)
		}
		return out, err
	}
	notify := func(err error, next time.Duration) {
		e.logger.Warn(ctx, "translate attempt %d/%d failed: %v; retrying in %s", attempt, e.retry.MaxAttempts, err, next)
	}

	out, err := backoff.RetryNotifyWithData(op, e.retry.backOff(ctx), notify)
	if err != nil {
		e.logger.Error(ctx, "translation to %s failed after %d attempts: %v", dest, attempt, err)
		return "", fmt.Errorf("%w: %d attempts: %w", domain.ErrTranslation, attempt, err)
	}
	return out, nil
}

func (e *Engine) translateOnce(ctx context.Context, content, dest string) (string, error) {
	e.logger.Info(ctx, "Attempting to translate %s -> %s", e.sourceLanguage, dest)

	chunks := []string{content}
	if utf8.RuneCountInString(content) > e.chunker.MaxSize() {
		chunks = e.chunker.Chunk(content)
		e.logger.Warn(ctx, "Content is longer than %d characters, breaking into %d chunks", e.chunker.MaxSize(), len(chunks))
	}

	e.progress.Start(len(chunks))
	defer e.progress.Finish()
	var b strings.Builder
	for i, chunk := range chunks {
		out, err := e.client.Translate(ctx, chunk, e.sourceLanguage, dest)
		if err != nil {
			return "", fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		e.logger.Debug(ctx, "Sleeping for %s after translation query", e.pause)
		if err := e.sleep(ctx, e.pause); err != nil {
			return "", err
		}
		b.WriteString(out)
		e.progress.Increment()
	}
	return b.String(), nil
}

// Sleep blocks for d. It returns early with ctx.Err() if ctx is cancelled.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
