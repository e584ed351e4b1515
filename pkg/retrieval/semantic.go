package retrieval

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// FanOutFactor widens the candidate pool fetched from the vector index
// relative to the caller's top_k. Fusion over exactly top_k candidates would
// let the semantic ranking alone decide membership and the lexical signal
// could only reorder, never rescue, a result.
const FanOutFactor = 3

// SemanticRetriever adapts the vector index to the fusion pipeline: it
// applies the fan-out policy and converts index distances to similarities.
type SemanticRetriever struct {
	source ChunkSource
}

func NewSemanticRetriever(source ChunkSource) *SemanticRetriever {
	return &SemanticRetriever{source: source}
}

// Retrieve fetches FanOutFactor*topK candidates and fills Similarity on each.
// An empty session yields an empty slice, not an error.
func (r *SemanticRetriever) Retrieve(ctx context.Context, sessionId uuid.UUID, queryEmbedding []float32, topK int) ([]Candidate, error) {
	fetchCount := topK * FanOutFactor

	candidates, err := r.source.Nearest(ctx, sessionId, queryEmbedding, fetchCount)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	for i := range candidates {
		candidates[i].Similarity = similarityFromDistance(candidates[i].Distance)
	}
	return candidates, nil
}

// similarityFromDistance converts an index distance to a [0,1] similarity.
// Cosine and L2 distances can exceed 1 depending on the metric space, so the
// result is clamped at zero rather than going negative.
func similarityFromDistance(distance float64) float64 {
	sim := 1 - distance
	if sim < 0 {
		return 0
	}
	return sim
}
