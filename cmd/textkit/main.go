package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"textkit/internal/chunker"
	"textkit/internal/config"
	"textkit/internal/domain"
	"textkit/internal/embedding"
	"textkit/internal/embedding/ollama"
	"textkit/internal/embedding/openai"
	"textkit/internal/embedding/tfidf"
	"textkit/internal/logger"
	"textkit/internal/service"
	"textkit/internal/shell"
	"textkit/internal/summarizer"
	"textkit/internal/textsource"
	"textkit/internal/translator"
	"textkit/internal/translator/gemini"
	"textkit/internal/translator/google"
	"textkit/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ./config.yaml or ~/.config/textkit/config.yaml if not provided)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	useTUI := cfg.Shell.Mode == "tui" ||
		(cfg.Shell.Mode == "auto" && term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())))

	logOut, closeLog, err := logOutput(cfg, useTUI)
	if err != nil {
		log.Fatalf("failed to open log: %v", err)
	}
	defer closeLog()
	l := logger.New(cfg.Logging.Level, logOut)

	svc, err := buildService(ctx, cfg, l)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	if useTUI {
		m := tui.New(svc, cfg.Shell.PreviewChars)
		if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil && ctx.Err() == nil {
			log.Fatal(err)
		}
		return
	}

	sh := shell.New(svc, os.Stdin, os.Stdout,
		shell.WithPreviewChars(cfg.Shell.PreviewChars),
		shell.WithProgress(shell.StderrProgress),
	)
	if err := sh.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}

func buildService(ctx context.Context, cfg *config.AppConfig, l logger.Logger) (*service.Service, error) {
	seg, err := chunker.NewSentenceSegmenter()
	if err != nil {
		return nil, err
	}

	var scorer summarizer.Scorer
	switch cfg.Summarizer.Type {
	case "frequency":
		scorer = summarizer.NewFrequencyScorer()
	case "centroid":
		enc, err := buildEncoder(cfg)
		if err != nil {
			return nil, err
		}
		scorer = summarizer.NewCentroidScorer(enc, cfg.Summarizer.MaxTokens)
	default:
		return nil, fmt.Errorf("unknown summarizer: %s", cfg.Summarizer.Type)
	}

	client, err := buildTranslatorClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	tc := cfg.Translator
	policy := translator.RetryPolicy{
		MaxAttempts: tc.MaxAttempts,
		BaseDelay:   time.Duration(tc.BaseDelayMs) * time.Millisecond,
		Multiplier:  2,
	}
	translators := func(src string, progress domain.ProgressReporter) service.Translator {
		return translator.New(client, src,
			translator.WithChunkSize(tc.MaxChunkSize),
			translator.WithPause(time.Duration(tc.SleepSeconds)*time.Second),
			translator.WithRetryPolicy(policy),
			translator.WithProgress(progress),
			translator.WithLogger(l),
		)
	}

	l.Info(ctx, "summarizer=%s translator=%s", scorer.Name(), tc.Type)
	return service.New(service.Config{
		Files: textsource.NewFileReader(),
		Fetcher: textsource.NewFetcher(textsource.FetcherConfig{
			Timeout:   time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
			UserAgent: cfg.Fetch.UserAgent,
		}),
		Summarizer:       summarizer.New(seg, scorer),
		Translators:      translators,
		DefaultSentences: cfg.Summarizer.MaxSentences,
		SourceLanguage:   cfg.Translator.SourceLanguage,
		Logger:           l,
	}), nil
}

func buildEncoder(cfg *config.AppConfig) (embedding.Encoder, error) {
	switch cfg.Embedder.Type {
	case "tfidf":
		return tfidf.NewEncoder(), nil
	case "openai":
		oc := cfg.Embedder.OpenAI
		return openai.NewClient(openai.Config{
			BaseURL:   oc.BaseURL,
			APIKeyEnv: oc.APIKeyEnv,
			Model:     oc.Model,
			Timeout:   time.Duration(oc.TimeoutSecs) * time.Second,
		})
	case "ollama":
		return ollama.NewEncoder(ollama.Config{
			URL:   cfg.Embedder.Ollama.URL,
			Model: cfg.Embedder.Ollama.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedder: %s", cfg.Embedder.Type)
	}
}

func buildTranslatorClient(ctx context.Context, cfg *config.AppConfig) (translator.Client, error) {
	switch cfg.Translator.Type {
	case "google":
		gc := cfg.Translator.Google
		return google.NewClient(google.Config{
			BaseURL:   gc.BaseURL,
			UserAgent: cfg.Fetch.UserAgent,
			Timeout:   time.Duration(gc.TimeoutSecs) * time.Second,
		}), nil
	case "gemini":
		return gemini.NewClient(ctx, gemini.Config{
			APIKeyEnv: cfg.Translator.Gemini.APIKeyEnv,
			Model:     cfg.Translator.Gemini.Model,
		})
	default:
		return nil, fmt.Errorf("unknown translator: %s", cfg.Translator.Type)
	}
}

// logOutput keeps the full-screen interface clean by sending logs to a file.
func logOutput(cfg *config.AppConfig, useTUI bool) (io.Writer, func(), error) {
	path := cfg.Logging.File
	if path == "" && !useTUI {
		return os.Stderr, func() {}, nil
	}
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return nil, nil, err
		}
		dir = filepath.Join(dir, "textkit")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
		path = filepath.Join(dir, "textkit.log")
	}
	f, err := tea.LogToFile(path, "textkit")
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
