// Package textsource acquires raw text from files, web pages and terminals.
package textsource

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"textkit/internal/domain"
)

// FileReader reads plain-text and PDF files.
type FileReader struct{}

func NewFileReader() *FileReader { return &FileReader{} }

// ReadText dispatches on the file extension: .txt is read verbatim, .pdf is
// converted to plain text; anything else is rejected.
func (r *FileReader) ReadText(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: file %q", domain.ErrNotFound, path)
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %q is a directory", domain.ErrUnsupportedFormat, path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return string(data), nil
	case ".pdf":
		return readPDF(path)
	default:
		return "", fmt.Errorf("%w: %q (expected .txt or .pdf)", domain.ErrUnsupportedFormat, ext)
	}
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text %s: %w", path, err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text %s: %w", path, err)
	}
	return buf.String(), nil
}

// ReadLines collects lines from r until the first empty line or EOF and
// joins them with a single space.
func ReadLines(r io.Reader) (string, error) {
	return ReadLinesFrom(bufio.NewScanner(r))
}

// ReadLinesFrom is ReadLines over an existing scanner, so a shell can keep
// reading prompts from the same stream afterwards.
func ReadLinesFrom(sc *bufio.Scanner) (string, error) {
	var lines []string
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return strings.Join(lines, " "), nil
}
