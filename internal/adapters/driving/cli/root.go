// Package cli implements the docchat command-line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by main before Execute runs.
var (
	retrievalService driving.RetrievalService
	chatService      driving.ChatService
	settingsService  driving.SettingsService
)

var (
	verboseFlag  bool
	documentFlag string
)

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Chat with a document from your terminal",
	Long: `Docchat loads a text document, indexes it for similarity search,
and answers questions about it. Questions the document cannot answer
fall back to a live web search.

Run 'docchat chat' for an interactive session, or 'docchat ask' for a
single question.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

// Services bundles the driving ports the CLI needs.
type Services struct {
	Retrieval driving.RetrievalService
	Chat      driving.ChatService
	Settings  driving.SettingsService
}

// SetServices injects the core services into the command tree.
func SetServices(s Services) {
	retrievalService = s.Retrieval
	chatService = s.Chat
	settingsService = s.Settings
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&documentFlag, "document", "d", "", "document to load (overrides configured path)")
}

// ensureDocumentLoaded loads the document for commands that query it.
// The --document flag wins over the configured path.
func ensureDocumentLoaded(cmd *cobra.Command) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	path := documentFlag
	if path == "" && settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		path = settings.Document.Path
	}
	if path == "" {
		return errors.New("no document configured; pass --document or run 'docchat settings document'")
	}

	if err := retrievalService.LoadDocument(cmd.Context(), path); err != nil {
		return fmt.Errorf("loading document: %w", err)
	}
	return nil
}
