// ABOUTME: Qdrant-backed vector index over the raw HTTP API
// ABOUTME: Handles collection lifecycle, upsert, search, and scroll-paginated delete
package index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const scrollPageSize = 256

// QdrantIndex stores points in a Qdrant collection via its HTTP API.
type QdrantIndex struct {
	baseURL    string
	collection string
	dimension  int
	client     *http.Client
}

// NewQdrantIndex connects to Qdrant and ensures the collection exists with
// the requested dimension and cosine metric. Returns ErrUnavailable when the
// server cannot be reached and a ConfigError when an existing collection has
// a different schema.
func NewQdrantIndex(host string, port int, collection string, dimension int) (*QdrantIndex, error) {
	q := &QdrantIndex{
		baseURL:    fmt.Sprintf("http://%s:%d", host, port),
		collection: collection,
		dimension:  dimension,
		client:     &http.Client{Timeout: 10 * time.Second},
	}

	if err := q.ensureCollection(); err != nil {
		return nil, err
	}
	return q, nil
}

// ensureCollection creates the collection if absent and verifies its schema
// if present. Idempotent.
func (q *QdrantIndex) ensureCollection() error {
	req, err := http.NewRequest(http.MethodGet, q.baseURL+"/collections/"+q.collection, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := q.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return q.createCollection()

	case resp.StatusCode < 300:
		var described struct {
			Result struct {
				Config struct {
					Params struct {
						Vectors struct {
							Size     int    `json:"size"`
							Distance string `json:"distance"`
						} `json:"vectors"`
					} `json:"params"`
				} `json:"config"`
			} `json:"result"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&described); err != nil {
			return fmt.Errorf("failed to decode collection info: %w", err)
		}

		vectors := described.Result.Config.Params.Vectors
		if vectors.Size != q.dimension || vectors.Distance != MetricCosine {
			return &ConfigError{
				Collection: q.collection,
				WantDim:    q.dimension,
				GotDim:     vectors.Size,
				WantMetric: MetricCosine,
				GotMetric:  vectors.Distance,
			}
		}
		return nil

	default:
		return fmt.Errorf("qdrant collection check failed: %s", resp.Status)
	}
}

func (q *QdrantIndex) createCollection() error {
	body := map[string]interface{}{
		"vectors": map[string]interface{}{
			"size":     q.dimension,
			"distance": MetricCosine,
		},
	}
	return q.do(http.MethodPut, "/collections/"+q.collection, body, nil)
}

// Upsert inserts or overwrites points by id.
func (q *QdrantIndex) Upsert(points []Point) error {
	if len(points) == 0 {
		return nil
	}

	payload := map[string]interface{}{
		"points": points,
	}
	if err := q.do(http.MethodPut, "/collections/"+q.collection+"/points?wait=true", payload, nil); err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

// Search runs a k-NN query and returns scored hits with payloads.
func (q *QdrantIndex) Search(vector []float64, limit int) ([]ScoredPoint, error) {
	body := map[string]interface{}{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}

	var decoded struct {
		Result []struct {
			ID      string  `json:"id"`
			Score   float64 `json:"score"`
			Payload Payload `json:"payload"`
		} `json:"result"`
	}
	if err := q.do(http.MethodPost, "/collections/"+q.collection+"/points/search", body, &decoded); err != nil {
		return nil, fmt.Errorf("qdrant search failed: %w", err)
	}

	results := make([]ScoredPoint, 0, len(decoded.Result))
	for _, hit := range decoded.Result {
		results = append(results, ScoredPoint{ID: hit.ID, Score: hit.Score, Payload: hit.Payload})
	}
	return results, nil
}

// DeleteByChapter scrolls for points matching the chapter filter and deletes
// them page by page until none remain.
func (q *QdrantIndex) DeleteByChapter(chapterID string) (int, error) {
	filter := map[string]interface{}{
		"must": []interface{}{
			map[string]interface{}{
				"key":   "chapter_id",
				"match": map[string]interface{}{"value": chapterID},
			},
		},
	}

	removed := 0
	for {
		body := map[string]interface{}{
			"filter":       filter,
			"limit":        scrollPageSize,
			"with_payload": false,
		}

		var page struct {
			Result struct {
				Points []struct {
					ID string `json:"id"`
				} `json:"points"`
			} `json:"result"`
		}
		if err := q.do(http.MethodPost, "/collections/"+q.collection+"/points/scroll", body, &page); err != nil {
			return removed, fmt.Errorf("qdrant scroll failed: %w", err)
		}

		if len(page.Result.Points) == 0 {
			return removed, nil
		}

		ids := make([]string, 0, len(page.Result.Points))
		for _, p := range page.Result.Points {
			ids = append(ids, p.ID)
		}

		deleteBody := map[string]interface{}{"points": ids}
		if err := q.do(http.MethodPost, "/collections/"+q.collection+"/points/delete?wait=true", deleteBody, nil); err != nil {
			return removed, fmt.Errorf("qdrant delete failed: %w", err)
		}
		removed += len(ids)
	}
}

// Clear drops the collection and recreates it empty.
func (q *QdrantIndex) Clear() error {
	if err := q.do(http.MethodDelete, "/collections/"+q.collection, nil, nil); err != nil {
		return fmt.Errorf("qdrant drop collection failed: %w", err)
	}
	return q.createCollection()
}

// Count reports the exact number of stored points.
func (q *QdrantIndex) Count() (int, error) {
	var decoded struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	body := map[string]interface{}{"exact": true}
	if err := q.do(http.MethodPost, "/collections/"+q.collection+"/points/count", body, &decoded); err != nil {
		return 0, fmt.Errorf("qdrant count failed: %w", err)
	}
	return decoded.Result.Count, nil
}

// do sends a JSON request and decodes the JSON response into out when out is
// non-nil.
func (q *QdrantIndex) do(method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		reader = bytes.NewBuffer(encoded)
	}

	req, err := http.NewRequest(method, q.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := q.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant request %s %s failed: %s", method, path, resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
