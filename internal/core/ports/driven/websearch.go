package driven

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// WebSearchService provides the live web search fallback used when the
// loaded document has no relevant content for a question.
// This is an optional service - when nil, out-of-document questions get
// an honest "not covered" reply instead.
type WebSearchService interface {
	// Search runs a web query and returns ranked results.
	Search(ctx context.Context, query string, limit int) ([]domain.WebResult, error)

	// Close releases resources.
	Close() error
}
