package driving

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// ChatService answers questions against the loaded document,
// preserving per-conversation history.
type ChatService interface {
	// Ask answers a question within a conversation. When the
	// document has no relevant content the answer falls back to
	// live web search.
	Ask(ctx context.Context, conversationID, question string) (*domain.Answer, error)

	// History returns the recorded turns of a conversation.
	History(ctx context.Context, conversationID string) ([]domain.Message, error)

	// NewConversation creates an empty conversation and returns its ID.
	NewConversation(ctx context.Context) (string, error)
}
