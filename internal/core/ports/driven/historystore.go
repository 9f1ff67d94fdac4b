package driven

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// ConversationStore keeps per-conversation chat history.
// Backed by process memory; history does not survive a restart.
type ConversationStore interface {
	// Get retrieves a conversation by ID.
	Get(ctx context.Context, id string) (*domain.Conversation, error)

	// Append adds a message to a conversation, creating the
	// conversation when it does not exist yet.
	Append(ctx context.Context, id string, msg domain.Message) error

	// List returns all conversation IDs.
	List(ctx context.Context) ([]string, error)

	// Delete removes a conversation and its history.
	Delete(ctx context.Context, id string) error
}
