package domain

import "errors"

// Error taxonomy shared across the pipelines. Components wrap these with
// fmt.Errorf("%w: ...") so callers can match with errors.Is.
var (
	ErrInput             = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrFetch             = errors.New("fetch failed")
	ErrModelLoad         = errors.New("model load failed")
	ErrTranslation       = errors.New("translation failed")
)
