// ABOUTME: Main entry point for the textbook tutor MCP server with stdio transport
// ABOUTME: Initializes content store, vector index, engine, and task runner with all tools
package main

import (
	"log"

	"github.com/harper/textbook-tutor/internal/config"
	"github.com/harper/textbook-tutor/internal/content"
	"github.com/harper/textbook-tutor/internal/core"
	"github.com/harper/textbook-tutor/internal/index"
	"github.com/harper/textbook-tutor/internal/llm"
	"github.com/harper/textbook-tutor/internal/mcp"
	"github.com/harper/textbook-tutor/internal/tasks"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	openai "github.com/sashabaranov/go-openai"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Content store backed by chapter markdown files
	store, err := content.NewFileStore(cfg.ContentDir, content.DefaultManifest())
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}

	// Without an API key, queries still work through the keyword and
	// template fallback tiers
	var client *llm.Client
	if cfg.OpenAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set - falling back to keyword retrieval and templated responses")
	} else {
		client, err = llm.NewClientWithConfig(&llm.ClientConfig{
			APIKey:         cfg.OpenAIKey,
			ChatModel:      cfg.ChatModel,
			EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			RetryDelay:     cfg.RetryDelay,
		})
		if err != nil {
			log.Fatalf("Failed to initialize OpenAI client: %v", err)
		}
	}

	// Vector index, downgrading to in-memory when Qdrant is unreachable
	idx, err := index.Open(cfg.QdrantHost, cfg.QdrantPort, cfg.CollectionName, cfg.VectorDimension)
	if err != nil {
		log.Fatalf("Failed to open vector index: %v", err)
	}

	var embedder core.EmbeddingClient
	var generator core.Generator
	if client != nil {
		embedder = client
		generator = client
	}

	engine := core.NewEngine(store, embedder, idx, generator, core.EngineConfig{
		ChunkSize:      cfg.ChunkSize,
		RetrievalLimit: cfg.RetrievalLimit,
	})

	runner := tasks.NewRunner(cfg.MaxConcurrentTasks)
	catalog := tasks.NewCatalog(engine, store)

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Textbook Tutor",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, engine, store, runner, catalog)

	// Start server with stdio transport
	log.Println("Textbook tutor MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
