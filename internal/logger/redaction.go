package logger

import (
	"io"
	"regexp"
)

// Redactor masks credentials that tool parameters and provider errors tend to leak into logs
type Redactor struct {
	patterns []*regexp.Regexp
}

// NewRedactor creates a new redactor with default patterns
func NewRedactor() *Redactor {
	return &Redactor{
		patterns: []*regexp.Regexp{
			// LLM provider keys
			regexp.MustCompile(`sk-(ant-)?[a-zA-Z0-9_-]{20,}`),

			// Payment gateway keys
			regexp.MustCompile(`rzp_(live|test)_[a-zA-Z0-9]{10,}`),

			regexp.MustCompile(`Bearer\s+[a-zA-Z0-9._-]+`),

			// key=value style credentials, quoted or not
			regexp.MustCompile(`(?i)(api[_-]?key|password|secret|token)["\s:=]+[^\s",}]+`),

			// Aadhaar numbers
			regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`),
		},
	}
}

// AddPattern adds a custom redaction pattern
func (r *Redactor) AddPattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	r.patterns = append(r.patterns, re)
	return nil
}

// Redact redacts sensitive information from a string
func (r *Redactor) Redact(s string) string {
	result := s
	for _, pattern := range r.patterns {
		result = pattern.ReplaceAllString(result, "[REDACTED]")
	}
	return result
}

// Wrap wraps an io.Writer to redact sensitive information
func (r *Redactor) Wrap(w io.Writer) io.Writer {
	return &redactingWriter{
		writer:   w,
		redactor: r,
	}
}

type redactingWriter struct {
	writer   io.Writer
	redactor *Redactor
}

// Write reports len(p) on success: callers wrote p, redaction only changes what lands downstream
func (w *redactingWriter) Write(p []byte) (int, error) {
	redacted := w.redactor.Redact(string(p))
	if _, err := w.writer.Write([]byte(redacted)); err != nil {
		return 0, err
	}
	return len(p), nil
}
