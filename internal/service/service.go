// Package service is the single port the interactive front ends talk to.
package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"textkit/internal/domain"
	"textkit/internal/logger"
	"textkit/internal/summarizer"
	"textkit/internal/translator"
)

// FileReader extracts text from a local file.
type FileReader interface {
	ReadText(path string) (string, error)
}

// URLFetcher extracts text from a web page.
type URLFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Translator translates content into dest.
type Translator interface {
	Translate(ctx context.Context, content, dest string) (string, error)
}

// TranslatorFactory builds a Translator for one request.
type TranslatorFactory func(sourceLanguage string, progress domain.ProgressReporter) Translator

// Service wires acquisition, summarization, translation and persistence.
type Service struct {
	files            FileReader
	fetcher          URLFetcher
	summarizer       domain.Summarizer
	translators      TranslatorFactory
	defaultSentences int
	sourceLanguage   string
	logger           logger.Logger
}

// Config holds the collaborators of a Service.
type Config struct {
	Files            FileReader
	Fetcher          URLFetcher
	Summarizer       domain.Summarizer
	Translators      TranslatorFactory
	DefaultSentences int
	SourceLanguage   string
	Logger           logger.Logger
}

// New creates a Service from cfg.
func New(cfg Config) *Service {
	l := cfg.Logger
	if l == nil {
		l = logger.Nop()
	}
	n := cfg.DefaultSentences
	if n <= 0 {
		n = summarizer.DefaultSentences
	}
	src := cfg.SourceLanguage
	if src == "" {
		src = "en"
	}
	return &Service{
		files:            cfg.Files,
		fetcher:          cfg.Fetcher,
		summarizer:       cfg.Summarizer,
		translators:      cfg.Translators,
		defaultSentences: n,
		sourceLanguage:   src,
		logger:           l,
	}
}

// DefaultSentences is the summary length used when none is requested.
func (s *Service) DefaultSentences() int { return s.defaultSentences }

// DefaultSourceLanguage is the source code used when none is entered.
func (s *Service) DefaultSourceLanguage() string { return s.sourceLanguage }

// ReadFile returns the text of a .txt or .pdf file.
func (s *Service) ReadFile(ctx context.Context, path string) (string, error) {
	ctx = withRun(ctx)
	text, err := s.files.ReadText(path)
	if err != nil {
		s.logger.Warn(ctx, "read %s: %v", path, err)
		return "", err
	}
	s.logger.Info(ctx, "read %d characters from %s", len([]rune(text)), path)
	return text, nil
}

// FetchURL returns the paragraph text of the page at url.
func (s *Service) FetchURL(ctx context.Context, url string) (string, error) {
	ctx = withRun(ctx)
	start := time.Now()
	text, err := s.fetcher.FetchText(ctx, url)
	if err != nil {
		s.logger.Warn(ctx, "fetch %s: %v", url, err)
		return "", err
	}
	s.logger.Info(ctx, "fetched %d characters from %s in %s", len([]rune(text)), url, time.Since(start).Round(time.Millisecond))
	return text, nil
}

// Summarize returns an extractive summary of text. A non-positive
// numSentences selects DefaultSentences.
func (s *Service) Summarize(ctx context.Context, text string, numSentences int) (string, error) {
	ctx = withRun(ctx)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: input text is empty", domain.ErrInput)
	}
	if numSentences <= 0 {
		numSentences = s.defaultSentences
	}
	start := time.Now()
	summary, err := s.summarizer.Summarize(ctx, text, numSentences)
	if err != nil {
		s.logger.Error(ctx, "summarize: %v", err)
		return "", err
	}
	s.logger.Info(ctx, "summarized %d characters into %d in %s", len([]rune(text)), len([]rune(summary)), time.Since(start).Round(time.Millisecond))
	return summary, nil
}

// Translate translates text from src into dest, reporting per-chunk
// progress to progress when it is non-nil.
func (s *Service) Translate(ctx context.Context, text, src, dest string, progress domain.ProgressReporter) (string, error) {
	ctx = withRun(ctx)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: input text is empty", domain.ErrInput)
	}
	if err := translator.ValidateLanguageCode(src); err != nil {
		return "", err
	}
	if err := translator.ValidateLanguageCode(dest); err != nil {
		return "", err
	}
	if progress == nil {
		progress = domain.NopProgress{}
	}
	start := time.Now()
	out, err := s.translators(src, progress).Translate(ctx, text, dest)
	if err != nil {
		s.logger.Error(ctx, "translate %s->%s: %v", src, dest, err)
		return "", err
	}
	s.logger.Info(ctx, "translated %s->%s in %s", src, dest, time.Since(start).Round(time.Millisecond))
	return out, nil
}

// Save writes content to path as UTF-8 text.
func (s *Service) Save(ctx context.Context, path, content string) error {
	ctx = withRun(ctx)
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty path", domain.ErrInput)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		s.logger.Error(ctx, "save %s: %v", path, err)
		return err
	}
	s.logger.Info(ctx, "saved %d bytes to %s", len(content), path)
	return nil
}

func withRun(ctx context.Context) context.Context {
	if logger.RunID(ctx) != "" {
		return ctx
	}
	return logger.WithRunID(ctx, uuid.NewString())
}
