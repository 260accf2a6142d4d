package pdfoutline

import (
	"fmt"
	"time"
)

// ErrorCode classifies a per-document processing outcome. Codes are recorded
// in batch results; none of them is retryable.
type ErrorCode string

const (
	// CodeExtractionUnavailable means the extraction layer could not yield a
	// line stream (corrupted, encrypted, or unreadable input). The document
	// is skipped and the batch continues.
	CodeExtractionUnavailable ErrorCode = "EXTRACTION_UNAVAILABLE"

	// CodeProcessingTimeout means the whole-document deadline elapsed before
	// processing finished.
	CodeProcessingTimeout ErrorCode = "PROCESSING_TIMEOUT"

	// CodeEmptyDocument marks a document whose line stream was empty. This
	// is a recorded status, not a failure: the document still produces a
	// valid empty outline.
	CodeEmptyDocument ErrorCode = "EMPTY_DOCUMENT"

	// CodeClassificationAmbiguous marks a document where no scorer fired on
	// any line. Also a recorded status with a valid empty outline; expected
	// for image-only or unstructured documents.
	CodeClassificationAmbiguous ErrorCode = "CLASSIFICATION_AMBIGUOUS"

	// CodeOutputFailed means the outline could not be written to its output
	// artifact.
	CodeOutputFailed ErrorCode = "OUTPUT_FAILED"
)

// ProcessingError is a structured per-document error carrying enough context
// to be recorded in a batch summary without the original stack.
type ProcessingError struct {
	Code      ErrorCode
	Message   string
	Path      string
	RunID     string
	Timestamp time.Time
	Cause     error
}

// Error implements the error interface.
func (e *ProcessingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ProcessingError) Unwrap() error {
	return e.Cause
}

// NewExtractionUnavailableError records a document whose content could not
// be extracted.
func NewExtractionUnavailableError(path string, cause error) *ProcessingError {
	return &ProcessingError{
		Code:      CodeExtractionUnavailable,
		Message:   fmt.Sprintf("failed to extract text from %s", path),
		Path:      path,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// NewProcessingTimeoutError records a document that exceeded the
// whole-document deadline.
func NewProcessingTimeoutError(path string, timeout time.Duration) *ProcessingError {
	return &ProcessingError{
		Code:      CodeProcessingTimeout,
		Message:   fmt.Sprintf("processing %s exceeded %v", path, timeout),
		Path:      path,
		Timestamp: time.Now(),
	}
}

// NewOutputFailedError records a document whose outline could not be
// written.
func NewOutputFailedError(path string, cause error) *ProcessingError {
	return &ProcessingError{
		Code:      CodeOutputFailed,
		Message:   fmt.Sprintf("failed to write outline for %s", path),
		Path:      path,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}
