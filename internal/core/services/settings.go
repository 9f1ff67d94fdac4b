package services

import (
	"fmt"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyDocumentPath       = "document.path"
	keyDocumentWatch      = "document.watch"
	keyRetrievalChunkSize = "retrieval.chunk_size"
	keyRetrievalOverlap   = "retrieval.chunk_overlap"
	keyRetrievalTopK      = "retrieval.top_k"
	keyRetrievalMinScore  = "retrieval.min_score"
	keyLLMProvider        = "llm.provider"
	keyLLMModel           = "llm.model"
	keyLLMBaseURL         = "llm.base_url"
	keyLLMAPIKey          = "llm.api_key"
	keyWebEnabled         = "websearch.enabled"
	keyWebMaxResults      = "websearch.max_results"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Document: domain.DocumentSettings{
			Path:  s.configStore.GetString(keyDocumentPath),
			Watch: s.configStore.GetBool(keyDocumentWatch),
		},
		Retrieval: domain.RetrievalSettings{
			ChunkSize:    s.getInt(keyRetrievalChunkSize, defaults.Retrieval.ChunkSize),
			ChunkOverlap: s.getInt(keyRetrievalOverlap, defaults.Retrieval.ChunkOverlap),
			TopK:         s.getInt(keyRetrievalTopK, defaults.Retrieval.TopK),
			MinScore:     s.getFloat(keyRetrievalMinScore, defaults.Retrieval.MinScore),
		},
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.configStore.GetString(keyLLMModel),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		WebSearch: domain.WebSearchSettings{
			Enabled:    s.getBool(keyWebEnabled, defaults.WebSearch.Enabled),
			MaxResults: s.getInt(keyWebMaxResults, defaults.WebSearch.MaxResults),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save document settings
	if err := s.configStore.Set(keyDocumentPath, settings.Document.Path); err != nil {
		return fmt.Errorf("save document path: %w", err)
	}
	if err := s.configStore.Set(keyDocumentWatch, settings.Document.Watch); err != nil {
		return fmt.Errorf("save document watch: %w", err)
	}

	// Save retrieval settings
	if err := s.configStore.Set(keyRetrievalChunkSize, settings.Retrieval.ChunkSize); err != nil {
		return fmt.Errorf("save chunk size: %w", err)
	}
	if err := s.configStore.Set(keyRetrievalOverlap, settings.Retrieval.ChunkOverlap); err != nil {
		return fmt.Errorf("save chunk overlap: %w", err)
	}
	if err := s.configStore.Set(keyRetrievalTopK, settings.Retrieval.TopK); err != nil {
		return fmt.Errorf("save top_k: %w", err)
	}
	if err := s.configStore.Set(keyRetrievalMinScore, settings.Retrieval.MinScore); err != nil {
		return fmt.Errorf("save min_score: %w", err)
	}

	// Save LLM settings
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	// Save web search settings
	if err := s.configStore.Set(keyWebEnabled, settings.WebSearch.Enabled); err != nil {
		return fmt.Errorf("save websearch enabled: %w", err)
	}
	if err := s.configStore.Set(keyWebMaxResults, settings.WebSearch.MaxResults); err != nil {
		return fmt.Errorf("save websearch max_results: %w", err)
	}

	return nil
}

// SetDocumentPath updates the document loaded on startup.
func (s *SettingsService) SetDocumentPath(path string) error {
	if path == "" {
		return fmt.Errorf("document path cannot be empty")
	}
	if err := s.configStore.Set(keyDocumentPath, path); err != nil {
		return fmt.Errorf("save document path: %w", err)
	}
	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("provider %s requires an API key", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider
	settings.LLM.Model = model
	if apiKey != "" {
		settings.LLM.APIKey = apiKey
	}
	if provider.IsLocal() && settings.LLM.BaseURL == "" {
		settings.LLM.BaseURL = "http://localhost:11434"
	}

	return s.Save(settings)
}

// SetWebSearchEnabled toggles the live web search fallback.
func (s *SettingsService) SetWebSearchEnabled(enabled bool) error {
	if err := s.configStore.Set(keyWebEnabled, enabled); err != nil {
		return fmt.Errorf("save websearch enabled: %w", err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// getInt reads an int config value, falling back to a default when unset.
func (s *SettingsService) getInt(key string, fallback int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return fallback
	}
	return s.configStore.GetInt(key)
}

// getFloat reads a float config value, falling back to a default when unset.
func (s *SettingsService) getFloat(key string, fallback float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return fallback
	}
	return s.configStore.GetFloat(key)
}

// getBool reads a bool config value, falling back to a default when unset.
func (s *SettingsService) getBool(key string, fallback bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return fallback
	}
	return s.configStore.GetBool(key)
}

// getProvider reads an AI provider config value, falling back when unset or invalid.
func (s *SettingsService) getProvider(key string, fallback domain.AIProvider) domain.AIProvider {
	raw := s.configStore.GetString(key)
	if raw == "" {
		return fallback
	}
	provider := domain.AIProvider(raw)
	if !provider.IsValid() {
		return fallback
	}
	return provider
}
