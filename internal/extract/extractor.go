// Package extract provides document text extraction for uploaded resumes.
// Extraction is a black box to the rest of the system: callers get plain text
// or an *Error.
package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Error represents a failed text extraction. It is surfaced to clients as an
// input error.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("text extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("text extraction failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Extractor converts an uploaded binary document into plain text.
type Extractor interface {
	ExtractText(ctx context.Context, r io.Reader) (string, error)
}

// PopplerExtractor extracts PDF text by shelling out to pdftotext from
// poppler-utils.
type PopplerExtractor struct{}

// NewPopplerExtractor returns a pdftotext-backed extractor.
func NewPopplerExtractor() *PopplerExtractor {
	return &PopplerExtractor{}
}

// ExtractText writes the document to a temporary file and runs pdftotext on
// it. pdftotext reads files only, so streaming input is staged on disk first.
func (p *PopplerExtractor) ExtractText(ctx context.Context, r io.Reader) (string, error) {
	tmp, err := os.CreateTemp("", "gapdebug-resume-*.pdf")
	if err != nil {
		return "", &Error{Message: "failed to stage uploaded document", Cause: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", &Error{Message: "failed to stage uploaded document", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return "", &Error{Message: "failed to stage uploaded document", Cause: err}
	}

	// "-" sends the extracted text to stdout
	cmd := exec.CommandContext(ctx, "pdftotext", "-layout", tmp.Name(), "-")
	output, err := cmd.Output()
	if err != nil {
		return "", &Error{
			Message: "pdftotext failed; ensure poppler-utils is installed and the upload is a valid PDF",
			Cause:   err,
		}
	}

	text := string(output)
	if strings.TrimSpace(text) == "" {
		return "", &Error{Message: "no text could be extracted from the document"}
	}

	return text, nil
}
