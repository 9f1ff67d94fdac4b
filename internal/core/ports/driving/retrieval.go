package driving

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// RetrievalService exposes the document retrieval pipeline.
type RetrievalService interface {
	// LoadDocument reads, chunks, tags and indexes the document at
	// path, atomically replacing any previously loaded state.
	// Failure is fatal to startup: the service cannot answer
	// queries without a loaded document.
	LoadDocument(ctx context.Context, path string) error

	// Search ranks the loaded chunks against the query and returns
	// at most topK results, best first.
	Search(ctx context.Context, query string, topK int) ([]domain.SimilarityResult, error)

	// Chunks returns all chunks of the current document load.
	Chunks() []domain.DocumentChunk

	// ChunkByID retrieves one chunk by its identifier.
	ChunkByID(id string) (*domain.DocumentChunk, error)

	// ChunksBySection returns the chunks tagged with a section label.
	ChunksBySection(label string) []domain.DocumentChunk

	// Sections returns the distinct section labels of the current
	// load, in document order.
	Sections() []string

	// Watch blocks, reloading the document whenever the file changes
	// on disk, until the context is cancelled.
	Watch(ctx context.Context) error
}
