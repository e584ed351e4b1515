package retrieval

import (
	"context"

	"ai-coursekb-be/internal/pkg/apperror"

	"github.com/google/uuid"
)

const (
	// DefaultTopK is applied when the caller does not request a result size.
	DefaultTopK = 5

	// MaxTopK bounds the candidate fan-out a single query can trigger.
	MaxTopK = 50

	// DefaultLexicalWeight is the fusion weight used when the caller does not
	// supply one. Tuned for corpora heavy on names, dates, and codes.
	DefaultLexicalWeight = 0.3
)

// Query is one retrieval request. Transient; never persisted.
type Query struct {
	SessionId     uuid.UUID
	Text          string
	TopK          int
	LexicalWeight float64
	MinScore      float64
}

// Validate checks bounds and applies the top_k default in place.
func (q *Query) Validate() error {
	if q.SessionId == uuid.Nil {
		return apperror.Validation("session id is required")
	}
	if q.Text == "" {
		return apperror.Validation("query text is required")
	}
	if q.TopK == 0 {
		q.TopK = DefaultTopK
	}
	if q.TopK < 0 || q.TopK > MaxTopK {
		return apperror.Validation("top_k must be between 1 and %d, got %d", MaxTopK, q.TopK)
	}
	if q.LexicalWeight < 0 || q.LexicalWeight > 1 {
		return apperror.Validation("lexical_weight must be in [0,1], got %f", q.LexicalWeight)
	}
	if q.MinScore < 0 || q.MinScore > 1 {
		return apperror.Validation("min_score must be in [0,1], got %f", q.MinScore)
	}
	return nil
}

// Candidate is one chunk returned by the vector index. Distance is the raw
// index metric; Similarity is filled by the semantic adapter.
type Candidate struct {
	ChunkId    uuid.UUID
	Text       string
	SourceFile string
	Distance   float64
	Similarity float64
}

// ScoredChunk is one fused result. Scores all live in [0,1].
type ScoredChunk struct {
	ChunkId       uuid.UUID `json:"chunk_id"`
	Text          string    `json:"text"`
	SourceFile    string    `json:"source_file"`
	SemanticScore float64   `json:"semantic_score"`
	LexicalScore  float64   `json:"lexical_score"`
	HybridScore   float64   `json:"hybrid_score"`
}

// Result is the retrieval response. Degraded is set when one signal source
// was unavailable and the ranking fell back to the other.
type Result struct {
	Chunks         []ScoredChunk
	Degraded       bool
	DegradedReason string
}

// ChunkSource abstracts the vector index and chunk store for retrieval.
// Implemented by the repository layer; stubbed in tests.
type ChunkSource interface {
	// Nearest returns up to limit chunks for a session ordered by ascending
	// distance to the query embedding.
	Nearest(ctx context.Context, sessionId uuid.UUID, embedding []float32, limit int) ([]Candidate, error)

	// Window returns up to limit chunks for a session in ordinal order.
	// Used for lexical-only scoring when embedding generation fails.
	Window(ctx context.Context, sessionId uuid.UUID, limit int) ([]Candidate, error)
}
