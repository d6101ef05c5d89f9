// ABOUTME: Engine wires chunking, embedding, indexing, retrieval, and synthesis
// ABOUTME: Exposes query processing and idempotent full re-indexing
package core

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/harper/textbook-tutor/internal/content"
	"github.com/harper/textbook-tutor/internal/index"
	"github.com/harper/textbook-tutor/internal/models"
)

// placeholderConfidence is reported on every result until answer grading
// exists.
const placeholderConfidence = 0.9

// EmbeddingClient embeds single texts and ordered batches.
type EmbeddingClient interface {
	Embedder
	EmbedBatch(texts []string) ([][]float64, error)
}

// EngineConfig tunes chunking and retrieval.
type EngineConfig struct {
	ChunkSize      int
	RetrievalLimit int
}

// Engine is the retrieval-and-synthesis core. All collaborators are injected
// at construction and read-only afterwards; indexMu serializes mutations of
// the vector index so delete-then-upsert during re-indexing stays atomic per
// process.
type Engine struct {
	content   content.Store
	embedder  EmbeddingClient
	index     index.Index
	chunker   *Chunker
	retriever *Retriever
	synth     *Synthesizer
	limit     int

	indexMu sync.Mutex
}

// NewEngine constructs the engine. embedder and generator may be nil when
// the model is unconfigured; retrieval and synthesis then run in their
// fallback tiers.
func NewEngine(store content.Store, embedder EmbeddingClient, idx index.Index, generator Generator, cfg EngineConfig) *Engine {
	limit := cfg.RetrievalLimit
	if limit <= 0 {
		limit = DefaultRetrievalLimit
	}

	return &Engine{
		content:   store,
		embedder:  embedder,
		index:     idx,
		chunker:   NewChunker(cfg.ChunkSize),
		retriever: NewRetriever(embedder, idx, store),
		synth:     NewSynthesizer(generator),
		limit:     limit,
	}
}

// ProcessQuery answers a user query with citations.
func (e *Engine) ProcessQuery(query, sessionID string) (*models.QueryResult, error) {
	log.Printf("engine: processing query for session %s: %q", sessionID, query)

	chunks, err := e.retriever.FindRelevant(query, e.limit)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	response := e.synth.Generate(query, chunks)
	citations := ToCitations(chunks)

	log.Printf("engine: generated response with %d citations", len(citations))
	return &models.QueryResult{
		Response:   response,
		Citations:  citations,
		QueryID:    uuid.New().String(),
		Confidence: placeholderConfidence,
	}, nil
}

// ProcessTextSelectionQuery answers a question about a selected passage. The
// selection is folded into the retrieval query, but the synthesizer sees the
// user's original question.
func (e *Engine) ProcessTextSelectionQuery(selectedText, query, sessionID string) (*models.QueryResult, error) {
	log.Printf("engine: processing text selection query for session %s", sessionID)

	fullQuery := fmt.Sprintf("Regarding this text: '%s'. %s", selectedText, query)

	chunks, err := e.retriever.FindRelevant(fullQuery, e.limit)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	response := e.synth.Generate(query, chunks)
	citations := ToCitations(chunks)

	return &models.QueryResult{
		Response:   response,
		Citations:  citations,
		QueryID:    uuid.New().String(),
		Confidence: placeholderConfidence,
	}, nil
}

// IndexAllChapters rebuilds the vector index from the content store,
// delete-then-upsert per chapter. Idempotent: re-running on unchanged
// content leaves one point set per chapter. A crash mid-chapter can leave
// that chapter partially indexed; re-running repairs it.
func (e *Engine) IndexAllChapters() error {
	e.indexMu.Lock()
	defer e.indexMu.Unlock()

	if e.embedder == nil {
		return fmt.Errorf("cannot index: no embedding client configured")
	}
	if e.index == nil {
		return fmt.Errorf("cannot index: no vector index configured")
	}

	chapters, err := e.content.ListChapters()
	if err != nil {
		return fmt.Errorf("listing chapters: %w", err)
	}

	log.Printf("engine: indexing %d chapters", len(chapters))
	for _, chapter := range chapters {
		if err := e.indexChapter(chapter); err != nil {
			return fmt.Errorf("indexing chapter %s: %w", chapter.ChapterID, err)
		}
	}
	log.Printf("engine: indexed %d chapters", len(chapters))
	return nil
}

// indexChapter replaces a chapter's points. Caller holds indexMu.
func (e *Engine) indexChapter(chapter models.Chapter) error {
	if _, err := e.index.DeleteByChapter(chapter.ChapterID); err != nil {
		return fmt.Errorf("deleting stale points: %w", err)
	}

	chunks := e.chunker.Split(chapter)
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}

	vectors, err := e.embedder.EmbedBatch(texts)
	if err != nil {
		return fmt.Errorf("embedding chunks: %w", err)
	}

	points := make([]index.Point, len(chunks))
	for i, ch := range chunks {
		points[i] = index.Point{
			ID:     uuid.New().String(),
			Vector: vectors[i],
			Payload: index.Payload{
				ChapterID:   ch.ChapterID,
				Text:        ch.Text,
				ChunkIndex:  ch.ChunkIndex,
				TotalChunks: ch.TotalChunks,
				Title:       chapter.Title,
			},
		}
	}

	return e.index.Upsert(points)
}
