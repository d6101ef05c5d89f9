// ABOUTME: Chunker splits chapter text into fixed-size segments for embedding
// ABOUTME: Pure character slicing with no gaps and no overlap
package core

import "github.com/harper/textbook-tutor/internal/models"

// DefaultChunkSize is the segment length in characters when none is configured.
const DefaultChunkSize = 500

// Chunker splits chapter text deterministically into bounded-size chunks.
type Chunker struct {
	chunkSize int
}

// NewChunker creates a Chunker with the given segment size in characters.
func NewChunker(chunkSize int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Chunker{chunkSize: chunkSize}
}

// Split slices the chapter's text into contiguous chunks covering the text
// exactly once. The last chunk may be shorter than the chunk size. Empty
// text yields zero chunks.
func (c *Chunker) Split(chapter models.Chapter) []models.Chunk {
	runes := []rune(chapter.Content)
	if len(runes) == 0 {
		return nil
	}

	total := (len(runes) + c.chunkSize - 1) / c.chunkSize
	chunks := make([]models.Chunk, 0, total)

	for i := 0; i < len(runes); i += c.chunkSize {
		end := i + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, models.Chunk{
			ChapterID:   chapter.ChapterID,
			ChunkIndex:  i / c.chunkSize,
			Text:        string(runes[i:end]),
			TotalChunks: total,
		})
	}

	return chunks
}
