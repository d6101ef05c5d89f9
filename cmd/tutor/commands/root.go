// ABOUTME: Root command for the Tutor CLI with global flags
// ABOUTME: Registers subcommands and validates flag combinations
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
████████╗██╗   ██╗████████╗ ██████╗ ██████╗
╚══██╔══╝██║   ██║╚══██╔══╝██╔═══██╗██╔══██╗
   ██║   ██║   ██║   ██║   ██║   ██║██████╔╝
   ██║   ██║   ██║   ██║   ██║   ██║██╔══██╗
   ██║   ╚██████╔╝   ██║   ╚██████╔╝██║  ██║
   ╚═╝    ╚═════╝    ╚═╝    ╚═════╝ ╚═╝  ╚═╝`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tutor",
		Short: "Ask questions of your textbook from the terminal",
		Long: banner + `

Tutor answers questions over indexed textbook chapters, citing the
chapters each answer draws from. Retrieval uses vector search through
Qdrant and OpenAI embeddings, with a keyword fallback when neither is
available.

Configuration comes from environment variables (QDRANT_HOST,
OPENAI_API_KEY, TUTOR_CONTENT_DIR, and friends). Without
OPENAI_API_KEY, answers come from the templated fallback tier.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, json, table)")

	rootCmd.AddCommand(
		NewAskCmd(),
		NewChaptersCmd(),
		NewIndexCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
