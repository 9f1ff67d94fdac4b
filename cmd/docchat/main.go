// Command docchat is a terminal tool for chatting with a document.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/docchat/internal/adapters/driven/ai"
	"github.com/custodia-labs/docchat/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docchat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docchat/internal/adapters/driven/websearch/duckduckgo"
	"github.com/custodia-labs/docchat/internal/adapters/driving/cli"
	"github.com/custodia-labs/docchat/internal/chunker"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/services"
	"github.com/custodia-labs/docchat/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	// .env is optional; environment overrides for local development.
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	retrievalService := services.NewRetrievalService(
		services.WithChunker(chunker.New(
			chunker.WithChunkSize(settings.Retrieval.ChunkSize),
			chunker.WithOverlap(settings.Retrieval.ChunkOverlap),
		)),
	)

	// The LLM is optional; without it answers degrade to raw passages.
	llm, err := ai.CreateAndValidateLLMService(&settings.LLM)
	if err != nil {
		logger.Warn("LLM unavailable: %v", err)
		llm = nil
	}
	if llm != nil {
		if aware, ok := llm.(driven.PromptStoreAware); ok {
			promptStore, perr := file.NewPromptStore("")
			if perr != nil {
				logger.Warn("Prompt store unavailable: %v", perr)
			} else {
				aware.SetPromptStore(promptStore)
			}
		}
	}

	var web driven.WebSearchService
	if settings.WebSearch.Enabled {
		web = duckduckgo.NewSearchService(duckduckgo.Config{})
		defer web.Close() //nolint:errcheck
	}

	chatService := services.NewChatService(
		retrievalService,
		memory.NewConversationStore(),
		llm,
		web,
		services.WithTopK(settings.Retrieval.TopK),
		services.WithMinScore(settings.Retrieval.MinScore),
		services.WithWebLimit(settings.WebSearch.MaxResults),
	)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Retrieval: retrievalService,
		Chat:      chatService,
		Settings:  settingsService,
	})

	return cli.Execute()
}
