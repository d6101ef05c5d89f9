// ABOUTME: Centralized configuration for the textbook tutor engine
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the tutor system
type Config struct {
	// Qdrant settings
	QdrantHost     string
	QdrantPort     int
	CollectionName string

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Engine settings
	VectorDimension    int
	ChunkSize          int
	RetrievalLimit     int
	MaxConcurrentTasks int

	// Content settings
	ContentDir string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		QdrantHost:         getEnv("QDRANT_HOST", "localhost"),
		QdrantPort:         getEnvInt("QDRANT_PORT", 6333),
		CollectionName:     getEnv("QDRANT_COLLECTION", "textbook_content"),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		ChatModel:          getEnv("TUTOR_OPENAI_MODEL", "gpt-4o-mini"),
		EmbeddingModel:     getEnv("TUTOR_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:            getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:         getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:         getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		VectorDimension:    getEnvInt("VECTOR_DIMENSION", 1536),
		ChunkSize:          getEnvInt("TUTOR_CHUNK_SIZE", 500),
		RetrievalLimit:     getEnvInt("TUTOR_RETRIEVAL_LIMIT", 5),
		MaxConcurrentTasks: getEnvInt("TUTOR_MAX_CONCURRENT_TASKS", 10),
		ContentDir:         getEnv("TUTOR_CONTENT_DIR", "docs"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("TUTOR_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.RetrievalLimit <= 0 {
		return fmt.Errorf("TUTOR_RETRIEVAL_LIMIT must be positive, got %d", c.RetrievalLimit)
	}
	if c.MaxConcurrentTasks <= 0 {
		return fmt.Errorf("TUTOR_MAX_CONCURRENT_TASKS must be positive, got %d", c.MaxConcurrentTasks)
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
