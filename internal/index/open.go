// ABOUTME: Index constructor with degraded-mode fallback
// ABOUTME: Falls back to the in-memory index when Qdrant is unreachable, logging the downgrade
package index

import (
	"errors"
	"log"
)

// Open connects to Qdrant, falling back to an in-memory index when the
// server is unreachable. The downgrade is logged so operators can see the
// process is running without durable vector storage. A schema mismatch on an
// existing collection is a configuration error and is not recovered.
func Open(host string, port int, collection string, dimension int) (Index, error) {
	idx, err := NewQdrantIndex(host, port, collection, dimension)
	if err == nil {
		log.Printf("index: connected to qdrant at %s:%d (collection %q)", host, port, collection)
		return idx, nil
	}

	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return nil, err
	}
	if !errors.Is(err, ErrUnavailable) {
		return nil, err
	}

	log.Printf("index: qdrant unreachable, using in-memory index: %v", err)
	return NewMemoryIndex(dimension), nil
}
