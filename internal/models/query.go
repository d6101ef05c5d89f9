// ABOUTME: Query result models for the retrieval-and-synthesis pipeline
// ABOUTME: Defines RetrievedChunk, Citation, and QueryResult structures
package models

// RetrievedChunk is one passage returned by the retriever.
//
// Score is tier-specific: cosine similarity when the vector index answered
// the query, a raw keyword match count when the keyword fallback did.
// Scores from different tiers are not comparable.
type RetrievedChunk struct {
	ChapterID string  `json:"chapter_id"`
	Title     string  `json:"title"`
	Text      string  `json:"text"`
	Score     float64 `json:"score"`
}

// Citation points a generated answer back at its source chapter.
type Citation struct {
	ChapterID      string `json:"chapter_id"`
	ChapterTitle   string `json:"chapter_title"`
	Section        string `json:"section"`
	ContentPreview string `json:"content_preview,omitempty"`
}

// QueryResult is the engine's answer to a single user query.
type QueryResult struct {
	Response   string     `json:"response"`
	Citations  []Citation `json:"citations"`
	QueryID    string     `json:"query_id"`
	Confidence float64    `json:"confidence"`
}
