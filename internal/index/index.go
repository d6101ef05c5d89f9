// ABOUTME: Vector index interface and point types for chapter chunk storage
// ABOUTME: Backed by Qdrant in production with an in-memory fallback for degraded mode
package index

import (
	"errors"
	"fmt"
)

// Metric is the distance metric of a collection. Only cosine is used.
const MetricCosine = "Cosine"

// ErrUnavailable indicates the backing store could not be reached. The
// constructor falls back to the in-memory index; query-time callers fall back
// to keyword retrieval.
var ErrUnavailable = errors.New("vector store unavailable")

// ConfigError indicates an existing collection has a different dimension or
// metric than requested. This is not recoverable by fallback.
type ConfigError struct {
	Collection string
	WantDim    int
	GotDim     int
	WantMetric string
	GotMetric  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("collection %q config mismatch: have dim=%d metric=%s, want dim=%d metric=%s",
		e.Collection, e.GotDim, e.GotMetric, e.WantDim, e.WantMetric)
}

// Payload is the metadata stored alongside each vector.
type Payload struct {
	ChapterID   string `json:"chapter_id"`
	Text        string `json:"text"`
	ChunkIndex  int    `json:"chunk_index"`
	TotalChunks int    `json:"total_chunks"`
	Title       string `json:"title"`
}

// Point is one embedding vector plus its payload.
type Point struct {
	ID      string    `json:"id"`
	Vector  []float64 `json:"vector"`
	Payload Payload   `json:"payload"`
}

// ScoredPoint is a search hit with its similarity score.
type ScoredPoint struct {
	ID      string  `json:"id"`
	Score   float64 `json:"score"`
	Payload Payload `json:"payload"`
}

// Index stores points in a named collection and answers k-NN queries by
// cosine similarity. Search calls may run concurrently; mutations are
// serialized per collection by the caller.
type Index interface {
	// Upsert inserts or overwrites points by id. Repeating a call with
	// identical data has no further effect.
	Upsert(points []Point) error

	// Search returns up to limit points ordered by descending similarity,
	// ties broken by insertion order. An empty collection yields an empty
	// result, not an error.
	Search(vector []float64, limit int) ([]ScoredPoint, error)

	// DeleteByChapter removes every point whose payload chapter id matches,
	// returning the number removed.
	DeleteByChapter(chapterID string) (int, error)

	// Clear drops and recreates the collection empty.
	Clear() error

	// Count reports the number of stored points.
	Count() (int, error)
}
