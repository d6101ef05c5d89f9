// ABOUTME: Chapter represents one textbook chapter owned by the content store
// ABOUTME: Immutable within a process lifetime; reloaded only on restart or re-index
package models

// Chapter is a single textbook chapter as served by the content store.
type Chapter struct {
	ChapterID     string `json:"chapter_id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	ChapterNumber int    `json:"chapter_number"`
	WordCount     int    `json:"word_count,omitempty"`
}
