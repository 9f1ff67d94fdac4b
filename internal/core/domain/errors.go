package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotLoaded indicates no document has been loaded yet.
	// Searches are rejected until LoadDocument completes.
	ErrNotLoaded = errors.New("document not loaded")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Answer generation degrades to returning raw passages.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrWebSearchUnavailable indicates the web search service is not configured.
	// Questions with no document coverage cannot fall back to the web.
	ErrWebSearchUnavailable = errors.New("web search unavailable")

	// ErrSearchUnavailable indicates the retrieval service is not configured.
	ErrSearchUnavailable = errors.New("retrieval service unavailable")
)

// DocumentLoadError indicates the source document could not be read or
// indexed. It is fatal to startup: the process cannot serve queries
// without a loaded document.
type DocumentLoadError struct {
	// Path is the document that failed to load.
	Path string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *DocumentLoadError) Error() string {
	return fmt.Sprintf("load document %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *DocumentLoadError) Unwrap() error {
	return e.Err
}
