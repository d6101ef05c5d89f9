// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to query the textbook via stdio
package commands

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/harper/textbook-tutor/internal/mcp"
	"github.com/harper/textbook-tutor/internal/tasks"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the tutor as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to query the textbook via stdio.

Configure in Claude Desktop's config file to enable the tutor tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  tutor mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "tutor": {
  #       "command": "tutor",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	engine, store, cfg, err := buildEngine(0)
	if err != nil {
		return err
	}
	if cfg.OpenAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set - falling back to keyword retrieval and templated responses")
	}

	runner := tasks.NewRunner(cfg.MaxConcurrentTasks)
	catalog := tasks.NewCatalog(engine, store)

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Textbook Tutor",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, engine, store, runner, catalog)

	if !quiet {
		log.Println("Textbook tutor MCP server starting on stdio...")
	}

	if err := mcpserver.ServeStdio(server); err != nil {
		return err
	}

	return nil
}
