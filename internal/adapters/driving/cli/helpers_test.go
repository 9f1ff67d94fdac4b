package cli

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// mockRetrievalService is a minimal retrieval mock for command tests.
type mockRetrievalService struct {
	loadErr   error
	results   []domain.SimilarityResult
	searchErr error
	sections  []string
	chunks    []domain.DocumentChunk
	loaded    []string
}

func (m *mockRetrievalService) LoadDocument(_ context.Context, path string) error {
	m.loaded = append(m.loaded, path)
	return m.loadErr
}

func (m *mockRetrievalService) Search(_ context.Context, _ string, topK int) ([]domain.SimilarityResult, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if topK > 0 && topK < len(m.results) {
		return m.results[:topK], nil
	}
	return m.results, nil
}

func (m *mockRetrievalService) Chunks() []domain.DocumentChunk { return m.chunks }

func (m *mockRetrievalService) ChunkByID(_ string) (*domain.DocumentChunk, error) {
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

// mockChatService is a minimal chat mock for command tests.
type mockChatService struct {
	answer *domain.Answer
	askErr error
}

func (m *mockChatService) Ask(_ context.Context, _, _ string) (*domain.Answer, error) {
	if m.askErr != nil {
		return nil, m.askErr
	}
	return m.answer, nil
}

func (m *mockChatService) History(_ context.Context, _ string) ([]domain.Message, error) {
	return nil, nil
}

func (m *mockChatService) NewConversation(_ context.Context) (string, error) {
	return "conv-1", nil
}

// mockSettingsService is a minimal settings mock for command tests.
type mockSettingsService struct {
	settings *domain.AppSettings
	getErr   error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.settings, nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error { return nil }

func (m *mockSettingsService) SetDocumentPath(path string) error {
	m.settings.Document.Path = path
	return nil
}

func (m *mockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	m.settings.LLM.Provider = provider
	m.settings.LLM.Model = model
	m.settings.LLM.APIKey = apiKey
	return nil
}

func (m *mockSettingsService) SetWebSearchEnabled(enabled bool) error {
	m.settings.WebSearch.Enabled = enabled
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) ValidateLLMConfig() error { return nil }

// setupTestServices wires mock services into the command tree and
// returns a cleanup function restoring the previous ones.
func setupTestServices() func() {
	oldRetrieval := retrievalService
	oldChat := chatService
	oldSettings := settingsService

	settings := domain.DefaultAppSettings()
	settings.Document.Path = "/tmp/handbook.txt"

	retrievalService = &mockRetrievalService{
		results: []domain.SimilarityResult{
			{
				Chunk: domain.DocumentChunk{
					ID:         "chunk-1",
					Content:    "Employees get 15 days of paid vacation per year.",
					Section:    "VACATION POLICY",
					Title:      "VACATION POLICY",
					ChunkIndex: 0,
					Preview:    "Employees get 15 days of paid vacation per year.",
				},
				Score: 0.82,
			},
		},
		sections: []string{"VACATION POLICY", "SICK LEAVE"},
		chunks: []domain.DocumentChunk{
			{ID: "chunk-1", Content: "Employees get 15 days of paid vacation per year.", Section: "VACATION POLICY", ChunkIndex: 0},
			{ID: "chunk-2", Content: "Employees get 10 sick days per year.", Section: "SICK LEAVE", ChunkIndex: 1},
		},
	}
	chatService = &mockChatService{
		answer: &domain.Answer{
			Text:        "Employees get 15 days of paid vacation per year.",
			Source:      domain.AnswerSourceDocument,
			ContextUsed: "VACATION POLICY",
		},
	}
	settingsService = &mockSettingsService{settings: &settings}

	return func() {
		retrievalService = oldRetrieval
		chatService = oldChat
		settingsService = oldSettings
	}
}
