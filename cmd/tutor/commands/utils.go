// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Engine wiring and output helpers used by ask, chapters, and index
package commands

import (
	"fmt"

	"github.com/harper/textbook-tutor/internal/config"
	"github.com/harper/textbook-tutor/internal/content"
	"github.com/harper/textbook-tutor/internal/core"
	"github.com/harper/textbook-tutor/internal/index"
	"github.com/harper/textbook-tutor/internal/llm"
	openai "github.com/sashabaranov/go-openai"
)

// buildEngine wires the content store, OpenAI client, and vector index into
// a query engine from environment configuration. The client is omitted when
// no API key is set, leaving the engine on its fallback tiers. A positive
// limitOverride replaces the configured retrieval limit.
func buildEngine(limitOverride int) (*core.Engine, content.Store, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	if limitOverride > 0 {
		cfg.RetrievalLimit = limitOverride
	}

	store, err := content.NewFileStore(cfg.ContentDir, content.DefaultManifest())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading content: %w", err)
	}

	var embedder core.EmbeddingClient
	var generator core.Generator
	if cfg.OpenAIKey != "" {
		client, err := llm.NewClientWithConfig(&llm.ClientConfig{
			APIKey:         cfg.OpenAIKey,
			ChatModel:      cfg.ChatModel,
			EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			RetryDelay:     cfg.RetryDelay,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("initializing OpenAI client: %w", err)
		}
		embedder = client
		generator = client
	}

	idx, err := index.Open(cfg.QdrantHost, cfg.QdrantPort, cfg.CollectionName, cfg.VectorDimension)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening vector index: %w", err)
	}

	engine := core.NewEngine(store, embedder, idx, generator, core.EngineConfig{
		ChunkSize:      cfg.ChunkSize,
		RetrievalLimit: cfg.RetrievalLimit,
	})

	return engine, store, cfg, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
