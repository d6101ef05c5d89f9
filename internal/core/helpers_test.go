// ABOUTME: Shared test fakes for the core package
// ABOUTME: In-memory content store, stub embedders, failing index, stub generator
package core

import (
	"errors"
	"fmt"

	"github.com/harper/textbook-tutor/internal/index"
	"github.com/harper/textbook-tutor/internal/models"
)

// fakeStore is an in-memory content.Store.
type fakeStore struct {
	chapters []models.Chapter
	err      error
}

func (s *fakeStore) ListChapters() ([]models.Chapter, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.chapters, nil
}

func (s *fakeStore) GetChapter(chapterID string) (*models.Chapter, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, ch := range s.chapters {
		if ch.ChapterID == chapterID {
			return &ch, nil
		}
	}
	return nil, errors.New("chapter not found")
}

// stubEmbedder returns canned vectors keyed by text, or a constant vector.
type stubEmbedder struct {
	vectors  map[string][]float64
	constant []float64
	err      error
	calls    []string
}

func (e *stubEmbedder) Embed(text string) ([]float64, error) {
	e.calls = append(e.calls, text)
	if e.err != nil {
		return nil, e.err
	}
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	return e.constant, nil
}

func (e *stubEmbedder) EmbedBatch(texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		v, err := e.Embed(t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// failingIndex errors on Search while supporting the rest of index.Index.
type failingIndex struct {
	index.Index
}

func (f *failingIndex) Search(vector []float64, limit int) ([]index.ScoredPoint, error) {
	return nil, fmt.Errorf("index backend down")
}

// stubGenerator records prompts and returns a canned answer or error.
type stubGenerator struct {
	answer       string
	err          error
	systemPrompt string
	userPrompt   string
	calls        int
}

func (g *stubGenerator) Complete(systemPrompt, userPrompt string) (string, error) {
	g.calls++
	g.systemPrompt = systemPrompt
	g.userPrompt = userPrompt
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}
