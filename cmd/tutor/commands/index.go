// ABOUTME: CLI command to rebuild the vector index from the textbook chapters
// ABOUTME: Chunks, embeds, and upserts every chapter, replacing stale points
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
)

// NewIndexCmd creates the index command
func NewIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the vector index",
		Long: `Re-chunk, re-embed, and re-index every textbook chapter.

Existing points for each chapter are removed before the new ones are
written, so the command is safe to run repeatedly. Requires
OPENAI_API_KEY for embeddings.

Examples:
  tutor index
  tutor index --quiet`,
		RunE: runIndex,
	}

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	engine, store, _, err := buildEngine(0)
	if err != nil {
		return err
	}

	if verbose {
		chapters, err := store.ListChapters()
		if err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Indexing %d chapter(s)...\n", len(chapters))
		}
	}

	if err := engine.IndexAllChapters(); err != nil {
		return fmt.Errorf("indexing content: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "All textbook content indexed successfully\n")
	}

	return nil
}
