package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

var askShowSources bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question about the document",
	Long: `Answers one question against the loaded document and exits.
When the document has nothing relevant, the answer falls back to a
live web search.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowSources, "sources", false, "show the retrieved passages behind the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if chatService == nil {
		return errors.New("chat service not configured")
	}
	if err := ensureDocumentLoaded(cmd); err != nil {
		return err
	}

	ctx := cmd.Context()
	conversationID, err := chatService.NewConversation(ctx)
	if err != nil {
		return fmt.Errorf("starting conversation: %w", err)
	}

	answer, err := chatService.Ask(ctx, conversationID, question)
	if err != nil {
		return fmt.Errorf("answering failed: %w", err)
	}

	cmd.Println(answer.Text)
	cmd.Println()

	switch answer.Source {
	case domain.AnswerSourceWeb:
		cmd.Println("(answered from web search)")
	case domain.AnswerSourceDocument:
		if answer.ContextUsed != "" {
			cmd.Printf("(answered from document, section: %s)\n", answer.ContextUsed)
		} else {
			cmd.Println("(answered from document)")
		}
	}

	if askShowSources && len(answer.Results) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i := range answer.Results {
			cmd.Printf("  [%d] %.2f  %s\n", i+1, answer.Results[i].Score, answer.Results[i].Chunk.Preview)
		}
	}

	return nil
}
