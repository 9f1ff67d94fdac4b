package driven

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// LLMService generates natural-language answers from retrieved context.
// This is an optional service - when nil, answers degrade to returning
// the best matching passage directly.
//
// Implementations may include:
//   - Anthropic (Claude)
//   - Ollama (local models)
type LLMService interface {
	// Answer produces a reply to the question grounded in the given
	// context passages, considering prior conversation turns.
	Answer(ctx context.Context, question string, passages []string, history []domain.Message) (string, error)

	// Chat conducts a multi-turn conversation without retrieval context.
	Chat(ctx context.Context, messages []domain.Message, opts ChatOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
