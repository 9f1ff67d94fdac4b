package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docchat/internal/core/domain"
)

// mockAIValidator implements driven.AIConfigValidator for testing.
type mockAIValidator struct {
	llmErr error
	last   *domain.LLMSettings
}

func (m *mockAIValidator) ValidateLLM(config *domain.LLMSettings) error {
	m.last = config
	return m.llmErr
}

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)

	// Verify defaults
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Retrieval.ChunkSize, settings.Retrieval.ChunkSize)
	assert.Equal(t, defaults.Retrieval.ChunkOverlap, settings.Retrieval.ChunkOverlap)
	assert.Equal(t, defaults.Retrieval.TopK, settings.Retrieval.TopK)
	assert.InDelta(t, defaults.Retrieval.MinScore, settings.Retrieval.MinScore, 1e-9)
	assert.Equal(t, defaults.LLM.Provider, settings.LLM.Provider)
	assert.Equal(t, defaults.WebSearch.Enabled, settings.WebSearch.Enabled)
	assert.Equal(t, defaults.WebSearch.MaxResults, settings.WebSearch.MaxResults)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("document.path", "/docs/handbook.txt")
	_ = store.Set("retrieval.top_k", 10)
	_ = store.Set("retrieval.min_score", 0.25)
	_ = store.Set("llm.provider", "ollama")
	_ = store.Set("llm.model", "llama3.2")
	_ = store.Set("websearch.enabled", false)

	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "/docs/handbook.txt", settings.Document.Path)
	assert.Equal(t, 10, settings.Retrieval.TopK)
	assert.InDelta(t, 0.25, settings.Retrieval.MinScore, 1e-9)
	assert.Equal(t, domain.AIProviderOllama, settings.LLM.Provider)
	assert.Equal(t, "llama3.2", settings.LLM.Model)
	assert.False(t, settings.WebSearch.Enabled)
}

func TestSettingsService_Get_InvalidProviderReturnsDefault(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("llm.provider", "invalid_provider")

	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.LLM.Provider, settings.LLM.Provider)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	settings := &domain.AppSettings{
		Document: domain.DocumentSettings{
			Path:  "/docs/policy.txt",
			Watch: true,
		},
		Retrieval: domain.RetrievalSettings{
			ChunkSize:    800,
			ChunkOverlap: 150,
			TopK:         3,
			MinScore:     0.2,
		},
		LLM: domain.LLMSettings{
			Provider: domain.AIProviderAnthropic,
			Model:    "claude-3-5-sonnet-latest",
			APIKey:   "sk-ant-test",
		},
		WebSearch: domain.WebSearchSettings{
			Enabled:    true,
			MaxResults: 5,
		},
	}

	err := service.Save(settings)
	require.NoError(t, err)

	// Verify values were stored
	retrieved, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "/docs/policy.txt", retrieved.Document.Path)
	assert.True(t, retrieved.Document.Watch)
	assert.Equal(t, 800, retrieved.Retrieval.ChunkSize)
	assert.Equal(t, 150, retrieved.Retrieval.ChunkOverlap)
	assert.Equal(t, 3, retrieved.Retrieval.TopK)
	assert.InDelta(t, 0.2, retrieved.Retrieval.MinScore, 1e-9)
	assert.Equal(t, domain.AIProviderAnthropic, retrieved.LLM.Provider)
	assert.Equal(t, "claude-3-5-sonnet-latest", retrieved.LLM.Model)
	assert.Equal(t, "sk-ant-test", retrieved.LLM.APIKey)
	assert.Equal(t, 5, retrieved.WebSearch.MaxResults)
}

func TestSettingsService_SetDocumentPath(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	err := service.SetDocumentPath("/docs/handbook.txt")
	require.NoError(t, err)

	settings, _ := service.Get()
	assert.Equal(t, "/docs/handbook.txt", settings.Document.Path)
}

func TestSettingsService_SetDocumentPath_Empty(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	err := service.SetDocumentPath("")
	assert.Error(t, err)
}

func TestSettingsService_SetLLMProvider_Ollama(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	err := service.SetLLMProvider(domain.AIProviderOllama, "llama3.2", "")

	require.NoError(t, err)

	settings, _ := service.Get()
	assert.Equal(t, domain.AIProviderOllama, settings.LLM.Provider)
	assert.Equal(t, "llama3.2", settings.LLM.Model)
	assert.Equal(t, "http://localhost:11434", settings.LLM.BaseURL)
	assert.Empty(t, settings.LLM.APIKey)
}

func TestSettingsService_SetLLMProvider_Anthropic(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	err := service.SetLLMProvider(domain.AIProviderAnthropic, "claude-3-5-sonnet-latest", "sk-ant-test")

	require.NoError(t, err)

	settings, _ := service.Get()
	assert.Equal(t, domain.AIProviderAnthropic, settings.LLM.Provider)
	assert.Equal(t, "claude-3-5-sonnet-latest", settings.LLM.Model)
	assert.Equal(t, "sk-ant-test", settings.LLM.APIKey)
}

func TestSettingsService_SetLLMProvider_RequiresAPIKey(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	err := service.SetLLMProvider(domain.AIProviderAnthropic, "claude-3-5-sonnet-latest", "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestSettingsService_SetLLMProvider_Invalid(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	err := service.SetLLMProvider(domain.AIProvider("invalid"), "", "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid LLM provider")
}

func TestSettingsService_SetWebSearchEnabled(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	err := service.SetWebSearchEnabled(false)
	require.NoError(t, err)

	settings, _ := service.Get()
	assert.False(t, settings.WebSearch.Enabled)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	defaults := service.GetDefaults()
	assert.Equal(t, domain.DefaultAppSettings(), defaults)
}

func TestSettingsService_ValidateLLMConfig(t *testing.T) {
	store := memory.NewConfigStore()
	validator := &mockAIValidator{}
	service := NewSettingsService(store, validator)

	require.NoError(t, service.SetLLMProvider(domain.AIProviderOllama, "llama3.2", ""))

	err := service.ValidateLLMConfig()
	require.NoError(t, err)
	require.NotNil(t, validator.last)
	assert.Equal(t, domain.AIProviderOllama, validator.last.Provider)
}

func TestSettingsService_ValidateLLMConfig_Error(t *testing.T) {
	store := memory.NewConfigStore()
	validator := &mockAIValidator{llmErr: errors.New("unreachable")}
	service := NewSettingsService(store, validator)

	err := service.ValidateLLMConfig()
	assert.Error(t, err)
}

func TestSettingsService_ValidateLLMConfig_NoValidator(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	assert.NoError(t, service.ValidateLLMConfig())
}
