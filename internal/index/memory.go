// ABOUTME: In-memory vector index with cosine similarity search
// ABOUTME: Degraded-mode substitute for Qdrant with identical operation semantics
package index

import (
	"fmt"
	"sort"
	"sync"

	"github.com/harper/textbook-tutor/internal/llm"
)

// MemoryIndex keeps all points in process memory. It preserves insertion
// order so that equal-score search results tie-break deterministically.
type MemoryIndex struct {
	mu        sync.RWMutex
	dimension int
	points    []Point
	byID      map[string]int
}

// NewMemoryIndex creates an empty in-memory index for vectors of the given
// dimension.
func NewMemoryIndex(dimension int) *MemoryIndex {
	return &MemoryIndex{
		dimension: dimension,
		byID:      make(map[string]int),
	}
}

// Upsert inserts or overwrites points by id.
func (m *MemoryIndex) Upsert(points []Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range points {
		if len(p.Vector) != m.dimension {
			return &ConfigError{
				Collection: "memory",
				WantDim:    m.dimension,
				GotDim:     len(p.Vector),
				WantMetric: MetricCosine,
				GotMetric:  MetricCosine,
			}
		}

		if i, ok := m.byID[p.ID]; ok {
			// Overwrite keeps the original insertion position
			m.points[i] = p
			continue
		}
		m.byID[p.ID] = len(m.points)
		m.points = append(m.points, p)
	}
	return nil
}

// Search scores every stored point against the query vector.
func (m *MemoryIndex) Search(vector []float64, limit int) ([]ScoredPoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.points) == 0 {
		return []ScoredPoint{}, nil
	}
	if len(vector) != m.dimension {
		return nil, fmt.Errorf("query vector dimension %d, index dimension %d", len(vector), m.dimension)
	}

	results := make([]ScoredPoint, 0, len(m.points))
	for _, p := range m.points {
		score, err := llm.CosineSimilarity(vector, p.Vector)
		if err != nil {
			return nil, fmt.Errorf("scoring point %s: %w", p.ID, err)
		}
		results = append(results, ScoredPoint{ID: p.ID, Score: score, Payload: p.Payload})
	}

	// Stable sort keeps insertion order on equal scores
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// DeleteByChapter removes every point belonging to the chapter.
func (m *MemoryIndex) DeleteByChapter(chapterID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.points[:0]
	removed := 0
	for _, p := range m.points {
		if p.Payload.ChapterID == chapterID {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	m.points = kept

	// Rebuild the id map to match the new positions
	m.byID = make(map[string]int, len(m.points))
	for i, p := range m.points {
		m.byID[p.ID] = i
	}
	return removed, nil
}

// Clear resets the index to empty.
func (m *MemoryIndex) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.points = nil
	m.byID = make(map[string]int)
	return nil
}

// Count reports the number of stored points.
func (m *MemoryIndex) Count() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.points), nil
}
