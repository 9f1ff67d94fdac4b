// Package memory provides in-memory implementations of the storage
// driven ports. State lives for the process lifetime only.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

// Ensure ConversationStore implements the interface.
var _ driven.ConversationStore = (*ConversationStore)(nil)

// ConversationStore is an in-memory implementation of
// driven.ConversationStore.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[string]domain.Conversation
}

// NewConversationStore creates a new in-memory conversation store.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		conversations: make(map[string]domain.Conversation),
	}
}

// Get retrieves a conversation by ID.
func (s *ConversationStore) Get(_ context.Context, id string) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	// Copy the message slice so callers cannot mutate stored history.
	out := conv
	out.Messages = make([]domain.Message, len(conv.Messages))
	copy(out.Messages, conv.Messages)
	return &out, nil
}

// Append adds a message to a conversation, creating the conversation
// when it does not exist yet.
func (s *ConversationStore) Append(_ context.Context, id string, msg domain.Message) error {
	if id == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	conv, ok := s.conversations[id]
	if !ok {
		conv = domain.Conversation{ID: id, CreatedAt: now}
	}
	conv.Messages = append(conv.Messages, msg)
	conv.UpdatedAt = now
	s.conversations[id] = conv
	return nil
}

// List returns all conversation IDs.
func (s *ConversationStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.conversations))
	for id := range s.conversations {
		ids = append(ids, id)
	}
	return ids, nil
}

// Delete removes a conversation and its history.
func (s *ConversationStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, id)
	return nil
}
