// ABOUTME: Retriever finds relevant chapter passages for a query
// ABOUTME: Vector search first, keyword scan of the content store as fallback
package core

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/harper/textbook-tutor/internal/content"
	"github.com/harper/textbook-tutor/internal/index"
	"github.com/harper/textbook-tutor/internal/models"
)

// DefaultRetrievalLimit caps how many passages a query retrieves.
const DefaultRetrievalLimit = 5

// Embedder maps text to a fixed-dimension vector.
type Embedder interface {
	Embed(text string) ([]float64, error)
}

// Retriever orchestrates query embedding and index search, degrading to a
// keyword scan over the content store when the vector tier fails.
type Retriever struct {
	embedder Embedder
	index    index.Index
	content  content.Store
}

// NewRetriever creates a Retriever. A nil embedder or index is allowed; the
// vector tier then always fails over to keyword search.
func NewRetriever(embedder Embedder, idx index.Index, store content.Store) *Retriever {
	return &Retriever{
		embedder: embedder,
		index:    idx,
		content:  store,
	}
}

// FindRelevant returns up to limit passages relevant to the query.
//
// Vector tier scores are cosine similarities; keyword tier scores are raw
// match counts. The two are not comparable. A content store failure in the
// keyword tier propagates because there is no tier below it.
func (r *Retriever) FindRelevant(query string, limit int) ([]models.RetrievedChunk, error) {
	if limit <= 0 {
		limit = DefaultRetrievalLimit
	}

	chunks, err := r.vectorSearch(query, limit)
	if err == nil {
		return chunks, nil
	}
	log.Printf("retriever: vector search failed, falling back to keyword scan: %v", err)

	return r.keywordSearch(query, limit)
}

// vectorSearch embeds the query and asks the index for nearest chunks.
func (r *Retriever) vectorSearch(query string, limit int) ([]models.RetrievedChunk, error) {
	if r.embedder == nil {
		return nil, fmt.Errorf("no embedding client configured")
	}
	if r.index == nil {
		return nil, fmt.Errorf("no vector index configured")
	}

	vector, err := r.embedder.Embed(query)
	if err != nil {
		return nil, err
	}

	hits, err := r.index.Search(vector, limit)
	if err != nil {
		return nil, err
	}

	chunks := make([]models.RetrievedChunk, 0, len(hits))
	for _, hit := range hits {
		chunks = append(chunks, models.RetrievedChunk{
			ChapterID: hit.Payload.ChapterID,
			Title:     hit.Payload.Title,
			Text:      hit.Payload.Text,
			Score:     hit.Score,
		})
	}
	return chunks, nil
}

// keywordSearch ranks chapters by case-insensitive substring match counts of
// query tokens in the title and body. Ties keep the store's chapter order.
func (r *Retriever) keywordSearch(query string, limit int) ([]models.RetrievedChunk, error) {
	chapters, err := r.content.ListChapters()
	if err != nil {
		return nil, fmt.Errorf("keyword fallback failed: %w", err)
	}

	tokens := tokenize(query)

	type match struct {
		chapter models.Chapter
		count   int
	}
	var matches []match

	for _, ch := range chapters {
		title := strings.ToLower(ch.Title)
		body := strings.ToLower(ch.Content)

		count := 0
		for _, tok := range tokens {
			count += strings.Count(title, tok)
			count += strings.Count(body, tok)
		}
		if count >= 1 {
			matches = append(matches, match{chapter: ch, count: count})
		}
	}

	// Stable sort keeps original chapter order on equal counts
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].count > matches[j].count
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	chunks := make([]models.RetrievedChunk, 0, len(matches))
	for _, m := range matches {
		chunks = append(chunks, models.RetrievedChunk{
			ChapterID: m.chapter.ChapterID,
			Title:     m.chapter.Title,
			Text:      m.chapter.Content,
			Score:     float64(m.count),
		})
	}
	return chunks, nil
}

// tokenize lower-cases the query and keeps words longer than 2 characters.
func tokenize(query string) []string {
	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if len([]rune(word)) > 2 {
			tokens = append(tokens, word)
		}
	}
	return tokens
}
