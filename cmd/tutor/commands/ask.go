// ABOUTME: CLI command to ask a question of the textbook
// ABOUTME: Supports anchoring the question to a selected passage
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/textbook-tutor/internal/models"
	"github.com/joho/godotenv"
)

var (
	askSession   string
	askSelection string
	askLimit     int
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question of the textbook",
		Long: `Ask a question and get an answer grounded in the textbook chapters.

Retrieval runs against the vector index when OpenAI and Qdrant are
configured, and falls back to keyword matching otherwise. Answers
cite the chapters they draw from.

Examples:
  tutor ask "What is Physical AI?"
  tutor ask --selection "ROS 2 uses a DDS middleware" "Why does this matter?"
  tutor ask --format json "How do digital twins work?"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().StringVar(&askSession, "session", "default", "Session identifier")
	cmd.Flags().StringVar(&askSelection, "selection", "", "Selected passage to anchor retrieval")
	cmd.Flags().IntVar(&askLimit, "limit", 0, "Override retrieval limit (0 uses configuration)")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if askLimit != 0 {
		if err := validatePositiveInt(askLimit, "limit"); err != nil {
			return err
		}
	}

	query := args[0]

	engine, _, _, err := buildEngine(askLimit)
	if err != nil {
		return err
	}

	var result *models.QueryResult
	if askSelection != "" {
		result, err = engine.ProcessTextSelectionQuery(askSelection, query, askSession)
	} else {
		result, err = engine.ProcessQuery(query, askSession)
	}
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", result.Response)

	if len(result.Citations) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\nSources:\n")
		for _, citation := range result.Citations {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s: %s\n",
				citation.ChapterTitle, truncate(citation.ContentPreview, 60))
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nQuery %s (confidence %.1f)\n", result.QueryID, result.Confidence)
	}

	return nil
}
