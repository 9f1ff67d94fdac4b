package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui"
)

var chatWatch bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Launch the interactive terminal interface for chatting with the
loaded document.

Controls:
  Enter      - Send question
  ↑/↓, PgUp  - Scroll the conversation
  Ctrl+C     - Quit`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatWatch, "watch", false, "reload the document when it changes on disk")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	// Panic recovery so terminal state is restored with a stack trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat UI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if chatService == nil {
		return errors.New("chat service not configured")
	}
	if err := ensureDocumentLoaded(cmd); err != nil {
		return err
	}

	// The chat session is long-running, so the watcher can usefully
	// reload edits made while it is open.
	if chatWatch {
		watchCtx, watchCancel := context.WithCancel(context.Background())
		defer watchCancel()

		go func() {
			if err := retrievalService.Watch(watchCtx); err != nil && !errors.Is(err, context.Canceled) {
				fmt.Fprintf(os.Stderr, "watcher stopped: %v\n", err)
			}
		}()
	}

	ports := &tui.Ports{
		Retrieval: retrievalService,
		Chat:      chatService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create chat UI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat UI error: %w", err)
	}

	return nil
}
