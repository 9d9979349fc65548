package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("document not found")
	ErrNoDocumentsInScope = errors.New("no documents in scope")
	ErrEmptyDocument      = errors.New("document has no extractable text")

	// ErrMissingCredential is returned before any provider call is attempted.
	ErrMissingCredential = errors.New("model provider credential is not configured")

	// ErrMalformedModelOutput means a structured generation response failed
	// strict parsing. We surface it instead of guessing at the structure.
	ErrMalformedModelOutput = errors.New("model returned output that could not be parsed")

	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrServiceFailure wraps embedding/completion call failures. They are
	// surfaced, not retried: an answer without grounding is worse than an
	// explicit failure.
	ErrServiceFailure = errors.New("model service call failed")

	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrPdfToolMissing carries its remediation hint in the message; handlers
	// also attach the PDFTOTEXT_MISSING code.
	ErrPdfToolMissing = errors.New("pdftotext is not installed: install poppler (brew install poppler / apt install poppler-utils)")
)

// UnsupportedFileTypeError records what was rejected so the log line is
// actionable. errors.Is(err, ErrUnsupportedFileType) matches it.
type UnsupportedFileTypeError struct {
	Mime     string
	Filename string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q for %q", e.Mime, e.Filename)
}

func (e *UnsupportedFileTypeError) Unwrap() error {
	return ErrUnsupportedFileType
}
