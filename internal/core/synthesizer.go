// ABOUTME: Synthesizer builds a grounded prompt and produces an answer
// ABOUTME: Falls back to deterministic templated extraction when the model is unavailable
package core

import (
	"fmt"
	"log"
	"strings"

	"github.com/harper/textbook-tutor/internal/models"
)

// NoContentResponse is returned when retrieval found nothing to ground an
// answer in.
const NoContentResponse = "I couldn't find relevant content in the textbook to answer your question. The AI assistant can only respond based on information from the textbook content."

const systemPrompt = "You are an AI assistant for an AI textbook. Answer questions based on the provided context. Be helpful, accurate, and cite information when possible."

const fallbackChunkLimit = 2
const fallbackPreviewLength = 300

// Generator produces a chat completion from a system+user message pair.
type Generator interface {
	Complete(systemPrompt, userPrompt string) (string, error)
}

// Synthesizer turns retrieved chunks into a user-facing answer. A nil
// generator means no model is configured; the templated fallback is used
// directly without attempting any network call.
type Synthesizer struct {
	generator Generator
}

// NewSynthesizer creates a Synthesizer around an optional generative model.
func NewSynthesizer(generator Generator) *Synthesizer {
	return &Synthesizer{generator: generator}
}

// Generate answers the query from the retrieved chunks. It never returns an
// error: model failures degrade to a deterministic templated answer.
func (s *Synthesizer) Generate(query string, chunks []models.RetrievedChunk) string {
	if len(chunks) == 0 {
		return NoContentResponse
	}

	if s.generator == nil {
		log.Println("synthesizer: no generative model configured, using fallback response")
		return s.fallbackResponse(query, chunks)
	}

	answer, err := s.generator.Complete(systemPrompt, buildPrompt(query, chunks))
	if err != nil {
		log.Printf("synthesizer: generation failed, using fallback response: %v", err)
		return s.fallbackResponse(query, chunks)
	}
	return answer
}

// buildPrompt assembles the grounded user prompt: labeled context sections,
// then the verbatim query, then the answer-only-from-context instruction.
func buildPrompt(query string, chunks []models.RetrievedChunk) string {
	var sb strings.Builder

	sb.WriteString("Relevant textbook content:\n\n")
	for i, chunk := range chunks {
		sb.WriteString(fmt.Sprintf("Section %d (%s):\n%s\n\n", i+1, chunk.Title, chunk.Text))
	}

	sb.WriteString(fmt.Sprintf("User's question: %s\n\n", query))
	sb.WriteString("Please provide a comprehensive answer based on the textbook content. If the content doesn't contain enough information to answer the question, say so clearly.")

	return sb.String()
}

// fallbackResponse is the deterministic outage answer: a lead-in, previews of
// the first two chunks, and a closing disclaimer. Pure function of its inputs.
func (s *Synthesizer) fallbackResponse(query string, chunks []models.RetrievedChunk) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Based on the textbook content, here's what I found regarding your question '%s':\n\n", query))

	limit := fallbackChunkLimit
	if len(chunks) < limit {
		limit = len(chunks)
	}
	for _, chunk := range chunks[:limit] {
		sb.WriteString(fmt.Sprintf("From '%s': %s\n\n", chunk.Title, truncateText(chunk.Text, fallbackPreviewLength)))
	}

	sb.WriteString("\nThis information is based on the textbook content as specified.")
	return sb.String()
}

// truncateText shortens s to maxLen characters, appending "..." only when
// something was cut.
func truncateText(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
