// ABOUTME: Typed errors for the OpenAI client
// ABOUTME: Distinguishes embedding failures from generation failures for fallback routing
package llm

import "fmt"

// EmbeddingError indicates the embedding model was unreachable or returned a
// malformed result. Callers recover by falling back to keyword retrieval.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// GenerationError indicates the chat model call failed. Callers recover by
// falling back to templated extraction.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
