package domain

const unknownDescription = "Unknown"

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// AllAIProviders returns all recognised providers in display order.
func AllAIProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderAnthropic,
	}
}

// DefaultLLMModels returns the default model per provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// DocumentSettings holds the loaded document configuration.
type DocumentSettings struct {
	// Path is the document file to load on startup.
	Path string

	// Watch reloads the document when the file changes on disk.
	Watch bool
}

// RetrievalSettings holds the retrieval pipeline configuration.
type RetrievalSettings struct {
	// ChunkSize is the chunk size in characters.
	ChunkSize int

	// ChunkOverlap is the overlap between consecutive chunks.
	ChunkOverlap int

	// TopK is how many results a search returns.
	TopK int

	// MinScore is the relevance cutoff below which answers fall back
	// to web search.
	MinScore float64
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for Anthropic).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// WebSearchSettings holds the web search fallback configuration.
type WebSearchSettings struct {
	// Enabled turns the live web fallback on.
	Enabled bool

	// MaxResults caps how many web results feed an answer.
	MaxResults int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Document holds the loaded document settings.
	Document DocumentSettings

	// Retrieval holds the retrieval pipeline settings.
	Retrieval RetrievalSettings

	// LLM holds LLM provider settings.
	LLM LLMSettings

	// WebSearch holds web search fallback settings.
	WebSearch WebSearchSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured by default; users must explicitly
// configure it via the settings command.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Document: DocumentSettings{},
		Retrieval: RetrievalSettings{
			ChunkSize:    1000,
			ChunkOverlap: 200,
			TopK:         5,
			MinScore:     0.1,
		},
		// LLM is left unconfigured - user must set up via settings
		LLM: LLMSettings{},
		WebSearch: WebSearchSettings{
			Enabled:    true,
			MaxResults: 3,
		},
	}
}
