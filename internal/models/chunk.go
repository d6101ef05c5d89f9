// ABOUTME: Chunk is a bounded-size slice of chapter text indexed independently
// ABOUTME: Derived deterministically by fixed-size character slicing
package models

// Chunk is one fixed-size segment of a chapter's text.
// ChunkIndex is 0-based and contiguous; the last chunk may be short.
type Chunk struct {
	ChapterID   string `json:"chapter_id"`
	ChunkIndex  int    `json:"chunk_index"`
	Text        string `json:"text"`
	TotalChunks int    `json:"total_chunks"`
}
