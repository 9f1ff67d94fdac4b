package mcp

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	results  []domain.SimilarityResult
	chunks   []domain.DocumentChunk
	sections []string
	err      error
}

func (m *mockRetrievalService) LoadDocument(_ context.Context, _ string) error {
	return m.err
}

func (m *mockRetrievalService) Search(
	_ context.Context,
	_ string,
	_ int,
) ([]domain.SimilarityResult, error) {
	return m.results, m.err
}

func (m *mockRetrievalService) Chunks() []domain.DocumentChunk { return m.chunks }

func (m *mockRetrievalService) ChunkByID(id string) (*domain.DocumentChunk, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.chunks {
		if m.chunks[i].ID == id {
			return &m.chunks[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRetrievalService) ChunksBySection(label string) []domain.DocumentChunk {
	var out []domain.DocumentChunk
	for i := range m.chunks {
		if m.chunks[i].Section == label {
			out = append(out, m.chunks[i])
		}
	}
	return out
}

func (m *mockRetrievalService) Sections() []string { return m.sections }

func (m *mockRetrievalService) Watch(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	answer        *domain.Answer
	history       []domain.Message
	err           error
	lastQuestion  string
	conversations []string
}

func (m *mockChatService) Ask(_ context.Context, _, question string) (*domain.Answer, error) {
	m.lastQuestion = question
	return m.answer, m.err
}

func (m *mockChatService) History(_ context.Context, _ string) ([]domain.Message, error) {
	return m.history, m.err
}

func (m *mockChatService) NewConversation(_ context.Context) (string, error) {
	id := "conv-new"
	m.conversations = append(m.conversations, id)
	return id, m.err
}
