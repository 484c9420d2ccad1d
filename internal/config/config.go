package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// LoggingConfig controls the log level and destination.
type LoggingConfig struct {
	Level string `yaml:"level" env:"TEXTKIT_LOG_LEVEL"`
	File  string `yaml:"file" env:"TEXTKIT_LOG_FILE"`
}

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url" env:"TEXTKIT_OPENAI_BASE_URL"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model" env:"TEXTKIT_OPENAI_MODEL"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// OllamaEmbedderConfig holds configuration for a local Ollama server.
type OllamaEmbedderConfig struct {
	URL   string `yaml:"url" env:"TEXTKIT_OLLAMA_URL"`
	Model string `yaml:"model" env:"TEXTKIT_OLLAMA_MODEL"`
}

// EmbedderConfig selects and configures the sentence encoder.
type EmbedderConfig struct {
	Type   string                `yaml:"type" env:"TEXTKIT_EMBEDDER"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
	Ollama *OllamaEmbedderConfig `yaml:"ollama,omitempty"`
}

// SummarizerConfig selects and configures the summarizer.
type SummarizerConfig struct {
	Type         string `yaml:"type" env:"TEXTKIT_SUMMARIZER"`
	MaxSentences int    `yaml:"max_sentences" env:"TEXTKIT_SUMMARY_SENTENCES"`
	MaxTokens    int    `yaml:"max_tokens"`
}

// GoogleTranslatorConfig configures the Google Translate web endpoint.
type GoogleTranslatorConfig struct {
	BaseURL     string `yaml:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// GeminiTranslatorConfig configures translation through Gemini.
type GeminiTranslatorConfig struct {
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model" env:"TEXTKIT_GEMINI_MODEL"`
}

// TranslatorConfig selects the translation service and its pacing.
type TranslatorConfig struct {
	Type           string                  `yaml:"type" env:"TEXTKIT_TRANSLATOR"`
	SourceLanguage string                  `yaml:"source_language" env:"TEXTKIT_SOURCE_LANGUAGE"`
	SleepSeconds   int                     `yaml:"sleep_seconds"`
	MaxChunkSize   int                     `yaml:"max_chunk_size"`
	MaxAttempts    int                     `yaml:"max_attempts"`
	BaseDelayMs    int                     `yaml:"base_delay_ms"`
	Google         *GoogleTranslatorConfig `yaml:"google,omitempty"`
	Gemini         *GeminiTranslatorConfig `yaml:"gemini,omitempty"`
}

// FetchConfig configures web page retrieval.
type FetchConfig struct {
	TimeoutSecs int    `yaml:"timeout_secs"`
	UserAgent   string `yaml:"user_agent" env:"TEXTKIT_USER_AGENT"`
}

// ShellConfig selects the interactive front end.
type ShellConfig struct {
	Mode         string `yaml:"mode" env:"TEXTKIT_SHELL"`
	PreviewChars int    `yaml:"preview_chars"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Embedder   EmbedderConfig   `yaml:"embedder"`
	Translator TranslatorConfig `yaml:"translator"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Shell      ShellConfig      `yaml:"shell"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Environment variables override file values.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, finish(cfg)
		}
		return nil, err
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, finish(cfg)
}

// LoadDefault tries ./config.yaml first, then ~/.config/textkit/config.yaml.
// If neither exists, it writes defaults to ~/.config/textkit/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	applyConfigDefaults(cfg)
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, finish(cfg)
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate fills zero values with defaults and rejects unknown choices.
func (c *AppConfig) Validate() error {
	applyConfigDefaults(c)

	switch c.Summarizer.Type {
	case "centroid", "frequency":
	default:
		return fmt.Errorf("summarizer.type %q is not one of centroid, frequency", c.Summarizer.Type)
	}
	switch c.Embedder.Type {
	case "tfidf", "openai", "ollama":
	default:
		return fmt.Errorf("embedder.type %q is not one of tfidf, openai, ollama", c.Embedder.Type)
	}
	switch c.Translator.Type {
	case "google", "gemini":
	default:
		return fmt.Errorf("translator.type %q is not one of google, gemini", c.Translator.Type)
	}
	switch c.Shell.Mode {
	case "auto", "tui", "plain":
	default:
		return fmt.Errorf("shell.mode %q is not one of auto, tui, plain", c.Shell.Mode)
	}
	if c.Summarizer.MaxSentences < 0 {
		return fmt.Errorf("summarizer.max_sentences must be positive")
	}
	if _, ok := levels[c.Logging.Level]; !ok {
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	if c.Translator.SleepSeconds < 0 {
		return fmt.Errorf("translator.sleep_seconds must not be negative")
	}
	if len(c.Translator.SourceLanguage) != 2 {
		return fmt.Errorf("translator.source_language %q must be a two-letter code", c.Translator.SourceLanguage)
	}
	return nil
}

var levels = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "error": {}}

func finish(cfg *AppConfig) error {
	applyConfigDefaults(cfg)
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return cfg.Validate()
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "textkit", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Logging:    LoggingConfig{Level: "info"},
		Summarizer: SummarizerConfig{Type: "centroid", MaxSentences: 5, MaxTokens: 512},
		Embedder:   EmbedderConfig{Type: "tfidf"},
		Translator: TranslatorConfig{
			Type:           "google",
			SourceLanguage: "en",
			SleepSeconds:   10,
			MaxChunkSize:   4000,
			MaxAttempts:    5,
			BaseDelayMs:    1000,
		},
		Fetch: FetchConfig{TimeoutSecs: 30},
		Shell: ShellConfig{Mode: "auto", PreviewChars: 500},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Summarizer.Type == "" {
		cfg.Summarizer.Type = def.Summarizer.Type
	}
	if cfg.Summarizer.MaxSentences == 0 {
		cfg.Summarizer.MaxSentences = def.Summarizer.MaxSentences
	}
	if cfg.Summarizer.MaxTokens <= 0 {
		cfg.Summarizer.MaxTokens = def.Summarizer.MaxTokens
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = def.Embedder.Type
	}
	if cfg.Embedder.OpenAI == nil {
		cfg.Embedder.OpenAI = &OpenAIEmbedderConfig{}
	}
	if cfg.Embedder.OpenAI.BaseURL == "" {
		cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Embedder.OpenAI.APIKeyEnv == "" {
		cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Embedder.OpenAI.Model == "" {
		cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
	}
	if cfg.Embedder.OpenAI.TimeoutSecs <= 0 {
		cfg.Embedder.OpenAI.TimeoutSecs = 30
	}
	if cfg.Embedder.Ollama == nil {
		cfg.Embedder.Ollama = &OllamaEmbedderConfig{}
	}
	if cfg.Embedder.Ollama.URL == "" {
		cfg.Embedder.Ollama.URL = "http://localhost:11434"
	}
	if cfg.Embedder.Ollama.Model == "" {
		cfg.Embedder.Ollama.Model = "nomic-embed-text"
	}

	t := &cfg.Translator
	if t.Type == "" {
		t.Type = def.Translator.Type
	}
	if t.SourceLanguage == "" {
		t.SourceLanguage = def.Translator.SourceLanguage
	}
	if t.MaxChunkSize <= 0 {
		t.MaxChunkSize = def.Translator.MaxChunkSize
	}
	if t.MaxAttempts <= 0 {
		t.MaxAttempts = def.Translator.MaxAttempts
	}
	if t.BaseDelayMs <= 0 {
		t.BaseDelayMs = def.Translator.BaseDelayMs
	}
	if t.Google == nil {
		t.Google = &GoogleTranslatorConfig{}
	}
	if t.Google.BaseURL == "" {
		t.Google.BaseURL = "https://translate.googleapis.com"
	}
	if t.Google.TimeoutSecs <= 0 {
		t.Google.TimeoutSecs = 30
	}
	if t.Gemini == nil {
		t.Gemini = &GeminiTranslatorConfig{}
	}
	if t.Gemini.APIKeyEnv == "" {
		t.Gemini.APIKeyEnv = "GEMINI_API_KEY"
	}
	if t.Gemini.Model == "" {
		t.Gemini.Model = "gemini-2.5-flash"
	}

	if cfg.Fetch.TimeoutSecs <= 0 {
		cfg.Fetch.TimeoutSecs = def.Fetch.TimeoutSecs
	}
	if cfg.Shell.Mode == "" {
		cfg.Shell.Mode = def.Shell.Mode
	}
	if cfg.Shell.PreviewChars <= 0 {
		cfg.Shell.PreviewChars = def.Shell.PreviewChars
	}
}
