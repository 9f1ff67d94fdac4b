package cli

import (
	"github.com/spf13/cobra"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections [label]",
	Short: "List detected document sections",
	Long: `Without arguments, lists the section labels detected in the loaded
document. With a label, prints the chunks tagged with that section.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSections,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, args []string) error {
	if err := ensureDocumentLoaded(cmd); err != nil {
		return err
	}

	if len(args) == 0 {
		labels := retrievalService.Sections()
		if len(labels) == 0 {
			cmd.Println("No sections detected.")
			return nil
		}
		cmd.Println("Sections:")
		for _, label := range labels {
			count := len(retrievalService.ChunksBySection(label))
			cmd.Printf("  %s (%d chunks)\n", label, count)
		}
		return nil
	}

	label := args[0]
	chunks := retrievalService.ChunksBySection(label)
	if len(chunks) == 0 {
		cmd.Printf("No chunks tagged with section %q.\n", label)
		return nil
	}

	cmd.Printf("Section: %s\n\n", label)
	for i := range chunks {
		cmd.Printf("  [%d] %s\n\n", chunks[i].ChunkIndex+1, chunks[i].Content)
	}
	return nil
}
