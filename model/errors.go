package model

import "errors"

// Sentinel errors for the pipeline's error taxonomy. Callers match them
// with errors.Is; wrapping layers must preserve the chain via %w.
var (
	// ErrInvalidInput marks malformed arguments rejected before any
	// external call (mismatched upsert lengths, empty question).
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat marks a document extension the extractor does
	// not recognize. During batch ingestion the document is skipped.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrNotFound marks a filename with no indexed chunks.
	ErrNotFound = errors.New("document not found")

	// ErrEmptyCorpus marks a query against an index with zero entries.
	ErrEmptyCorpus = errors.New("no documents ingested")

	// ErrServiceUnavailable marks an unreachable or failing embedding or
	// generation service.
	ErrServiceUnavailable = errors.New("service unavailable")
)
