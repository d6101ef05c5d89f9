// ABOUTME: Cosine similarity over embedding vectors
// ABOUTME: Defined only for equal-length vectors with non-zero norms
package llm

import (
	"fmt"
	"math"
)

// CosineSimilarity computes dot(a,b)/(|a|*|b|). It returns an error when the
// vectors differ in length or either has zero norm.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("cosine similarity undefined for zero-norm vector")
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
