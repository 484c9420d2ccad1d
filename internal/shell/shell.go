// Package shell implements the line-oriented menu used when input is piped
// or a full-screen interface is not wanted.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"textkit/internal/domain"
	"textkit/internal/textsource"
	"textkit/internal/translator"
)

// Port is the subset of the application service the shell drives.
type Port interface {
	DefaultSentences() int
	DefaultSourceLanguage() string
	ReadFile(ctx context.Context, path string) (string, error)
	FetchURL(ctx context.Context, url string) (string, error)
	Summarize(ctx context.Context, text string, numSentences int) (string, error)
	Translate(ctx context.Context, text, src, dest string, progress domain.ProgressReporter) (string, error)
	Save(ctx context.Context, path, content string) error
}

// DefaultPreviewChars is how much acquired text is echoed back.
const DefaultPreviewChars = 500

// errQuit unwinds the menu when the user enters q.
var errQuit = errors.New("quit")

// Shell reads commands line by line from in and writes prompts to out.
type Shell struct {
	port         Port
	reader       *bufio.Reader
	in           *bufio.Scanner
	maxLine      int
	out          io.Writer
	previewChars int
	progress     func() domain.ProgressReporter

	title   func(a ...interface{}) string
	prompt  func(a ...interface{}) string
	failure func(a ...interface{}) string
	success func(a ...interface{}) string
}

// Option customizes a Shell.
type Option func(*Shell)

// WithPreviewChars sets how many characters of acquired text are echoed.
func WithPreviewChars(n int) Option {
	return func(s *Shell) {
		if n > 0 {
			s.previewChars = n
		}
	}
}

// WithProgress sets the factory for per-translation progress reporters.
func WithProgress(fn func() domain.ProgressReporter) Option {
	return func(s *Shell) { s.progress = fn }
}

// WithMaxLineSize bounds a single input line in bytes.
func WithMaxLineSize(n int) Option {
	return func(s *Shell) {
		if n > 0 {
			s.maxLine = n
		}
	}
}

// DefaultMaxLineSize is the longest input line accepted.
const DefaultMaxLineSize = 1024 * 1024

// New creates a Shell over port.
func New(port Port, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		port:         port,
		reader:       bufio.NewReader(in),
		maxLine:      DefaultMaxLineSize,
		out:          out,
		previewChars: DefaultPreviewChars,
		progress:     func() domain.ProgressReporter { return domain.NopProgress{} },
		title:        color.New(color.FgCyan, color.Bold).SprintFunc(),
		prompt:       color.New(color.FgGreen, color.Bold).SprintFunc(),
		failure:      color.New(color.FgRed).SprintFunc(),
		success:      color.New(color.FgGreen).SprintFunc(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.in = s.newScanner()
	return s
}

func (s *Shell) newScanner() *bufio.Scanner {
	sc := bufio.NewScanner(s.reader)
	sc.Buffer(make([]byte, 0, min(64*1024, s.maxLine)), s.maxLine)
	return sc
}

// skipLine drops the rest of an oversized line and resumes scanning after it.
func (s *Shell) skipLine() error {
	for {
		_, err := s.reader.ReadSlice('\n')
		if err == nil || errors.Is(err, io.EOF) {
			break
		}
		if !errors.Is(err, bufio.ErrBufferFull) {
			return err
		}
	}
	s.in = s.newScanner()
	return nil
}

// Run loops over the main menu until the user quits, input ends, or ctx
// is cancelled. Operation errors are printed and the menu starts over.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.round(ctx)
		if errors.Is(err, bufio.ErrTooLong) {
			s.fail(fmt.Sprintf("Input line is longer than %d bytes. Please try again.", s.maxLine))
			if err := s.skipLine(); err != nil {
				return err
			}
			continue
		}
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			s.println("Exiting program.")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) round(ctx context.Context) error {
	choice, err := s.ask("Enter '1' to summarize text, '2' to translate text (or 'q' to quit):")
	if err != nil {
		return err
	}
	switch choice {
	case "q":
		return errQuit
	case "1", "2":
	default:
		s.fail("Invalid choice. Please enter '1', '2', or 'q'.")
		return nil
	}

	text, ok, err := s.acquire(ctx)
	if err != nil || !ok {
		return err
	}
	if strings.TrimSpace(text) == "" {
		s.fail("Input text is empty. Cannot summarize or translate.")
		return nil
	}

	if choice == "1" {
		return s.summarize(ctx, text)
	}
	return s.translate(ctx, text)
}

// acquire returns ok=false when the round should start over.
func (s *Shell) acquire(ctx context.Context) (string, bool, error) {
	src, err := s.ask("Enter '1' to enter text from terminal, '2' to read from a text file, '3' to read from a PDF file, '4' to read from a URL (or 'q' to quit):")
	if err != nil {
		return "", false, err
	}
	switch src {
	case "q":
		return "", false, errQuit
	case "1":
		s.println(s.prompt("Please enter the text (end with an empty line):"))
		text, err := textsource.ReadLinesFrom(s.in)
		if err != nil {
			return "", false, err
		}
		return text, true, nil
	case "2", "3":
		kind := "text"
		if src == "3" {
			kind = "PDF"
		}
		path, err := s.ask(fmt.Sprintf("Please enter the path to the %s file (or 'q' to quit):", kind))
		if err != nil {
			return "", false, err
		}
		if strings.EqualFold(path, "q") {
			return "", false, errQuit
		}
		text, err := s.port.ReadFile(ctx, path)
		if err != nil {
			s.fail(describeReadError(kind, path, err))
			return "", false, nil
		}
		s.println(fmt.Sprintf("%s read from file '%s':", capitalize(kind), path))
		s.println(preview(text, s.previewChars))
		return text, true, nil
	case "4":
		url, err := s.ask("Please enter the URL (or 'q' to quit):")
		if err != nil {
			return "", false, err
		}
		if strings.EqualFold(url, "q") {
			return "", false, errQuit
		}
		text, err := s.port.FetchURL(ctx, url)
		if err != nil {
			s.fail(fmt.Sprintf("Error fetching content from URL '%s': %v", url, err))
			return "", false, nil
		}
		s.println(fmt.Sprintf("Text fetched from URL '%s':", url))
		s.println(preview(text, s.previewChars))
		return text, true, nil
	default:
		s.fail("Invalid choice. Please enter '1', '2', '3', '4', or 'q'.")
		return "", false, nil
	}
}

func (s *Shell) summarize(ctx context.Context, text string) error {
	n, err := s.askCount()
	if err != nil {
		return err
	}
	summary, err := s.port.Summarize(ctx, text, n)
	if err != nil {
		s.fail(fmt.Sprintf("Summarization error: %v", err))
		return nil
	}
	s.println("")
	s.println(s.title("Summary:"))
	s.println(summary)
	return s.offerSave(ctx, "summary", summary)
}

func (s *Shell) askCount() (int, error) {
	def := s.port.DefaultSentences()
	for {
		raw, err := s.ask(fmt.Sprintf("Enter the number of sentences for the summary (default %d):", def))
		if err != nil {
			return 0, err
		}
		if raw == "" {
			return def, nil
		}
		n, convErr := strconv.Atoi(raw)
		if convErr == nil && n > 0 {
			return n, nil
		}
		s.fail(fmt.Sprintf("Invalid input: %q is not a positive number.", raw))
	}
}

func (s *Shell) translate(ctx context.Context, text string) error {
	for {
		s.println("")
		s.println(s.title("Language Codes:"))
		for _, line := range translator.LanguageCodeHelp {
			s.println(line)
		}
		s.println("")
		def := s.port.DefaultSourceLanguage()
		src, err := s.ask(fmt.Sprintf("Enter the source language code (e.g., 'en' for English; Enter for %s):", def))
		if err != nil {
			return err
		}
		if src == "" {
			src = def
		}
		dest, err := s.ask("Enter the target language code (e.g., 'hi' for Hindi):")
		if err != nil {
			return err
		}

		out, err := s.port.Translate(ctx, text, src, dest, s.progress())
		if errors.Is(err, domain.ErrInput) {
			s.fail(fmt.Sprintf("Invalid input: %v", err))
			continue
		}
		if err != nil {
			s.fail(fmt.Sprintf("Translation error: %v", err))
			return nil
		}
		s.println("")
		s.println(s.title("Translated Text:"))
		s.println(out)
		return s.offerSave(ctx, "translated text", out)
	}
}

func (s *Shell) offerSave(ctx context.Context, what, content string) error {
	path, err := s.ask(fmt.Sprintf("Enter the path to save the %s (or 'n' to skip saving):", what))
	if err != nil {
		return err
	}
	if strings.EqualFold(path, "n") || path == "" {
		return nil
	}
	if err := s.port.Save(ctx, path, content); err != nil {
		s.fail(fmt.Sprintf("Error saving %s to '%s': %v", what, path, err))
		return nil
	}
	s.println(s.success(fmt.Sprintf("%s saved to '%s' successfully.", capitalize(what), path)))
	return nil
}

// ask prints a prompt and returns the trimmed answer, or io.EOF when input
// is exhausted.
func (s *Shell) ask(prompt string) (string, error) {
	s.println(s.prompt(prompt))
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

func (s *Shell) fail(line string) {
	s.println(s.failure(line))
}

func describeReadError(kind, path string, err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Sprintf("File '%s' not found. Please enter a valid file path.", path)
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return err.Error()
	default:
		return fmt.Sprintf("Error reading %s file '%s': %v", kind, path, err)
	}
}

// preview returns the first n characters of text followed by "...".
func preview(text string, n int) string {
	r := []rune(text)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + "..."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
