package domain

import (
	"errors"
	"fmt"
)

// ============================================================================
// Session Errors
// ============================================================================

var (
	ErrSessionNotFound = errors.New("no csv file uploaded for this session")
	ErrMissingFile     = errors.New("file is required")
	ErrEmptyQuestion   = errors.New("question is required")
)

// ============================================================================
// Dataset Errors
// ============================================================================

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrDatasetParse      = errors.New("error parsing CSV")
	ErrEmptyDataset      = errors.New("uploaded file contains no rows")
	ErrUploadTooLarge    = errors.New("uploaded file is too large")
)

// ============================================================================
// Pipeline Errors
// ============================================================================

// ErrExtractionMiss means a chart was requested but the reply carried no usable
// structured-data marker. It never aborts a request.
var ErrExtractionMiss = errors.New("no chart data in reply")

// TransportError wraps a failed call to the language model.
type TransportError struct {
	Service string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RenderError wraps a failure to draw or publish a chart image.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
