// ABOUTME: CLI command to list the loaded textbook chapters
// ABOUTME: Table and JSON output of chapter metadata
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/textbook-tutor/internal/config"
	"github.com/harper/textbook-tutor/internal/content"
)

// NewChaptersCmd creates the chapters command
func NewChaptersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chapters",
		Short: "List textbook chapters",
		Long: `List the textbook chapters loaded from the content directory.

Chapters come from the markdown files named in the corpus manifest.
Missing files are skipped, so the list reflects what is actually on disk.

Examples:
  tutor chapters
  tutor chapters --format json`,
		RunE: runChapters,
	}

	return cmd
}

func runChapters(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	store, err := content.NewFileStore(cfg.ContentDir, content.DefaultManifest())
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	chapters, err := store.ListChapters()
	if err != nil {
		return fmt.Errorf("listing chapters: %w", err)
	}

	if len(chapters) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No chapters found in %s\n", cfg.ContentDir)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(chapters, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	// Table format
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NUM\tTITLE\tID\tWORDS\n")
	fmt.Fprintf(w, "---\t-----\t--\t-----\n")

	for _, chapter := range chapters {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n",
			chapter.ChapterNumber,
			truncate(chapter.Title, 40),
			truncate(chapter.ChapterID, 30),
			chapter.WordCount)
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d chapter(s) loaded\n", len(chapters))
	}

	return nil
}
