package contract

import (
	"context"

	"ai-coursekb-be/internal/entity"
	"ai-coursekb-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredChunk wraps a Chunk with its cosine distance to a query vector.
type ScoredChunk struct {
	Chunk    *entity.Chunk
	Distance float64 // 0.0 = identical direction, 2.0 = opposite
}

type ChunkRepository interface {
	Create(ctx context.Context, chunk *entity.Chunk) error
	CreateBulk(ctx context.Context, chunks []*entity.Chunk) error
	Update(ctx context.Context, chunk *entity.Chunk) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchNearest returns up to limit chunks of the session ordered by
	// ascending cosine distance to the query embedding.
	SearchNearest(ctx context.Context, sessionId uuid.UUID, embedding []float32, limit int) ([]*ScoredChunk, error)
	// Window returns up to limit chunks of the session in ordinal order.
	Window(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.Chunk, error)
	// ListIds returns every chunk id of the session, for fingerprint diffs.
	ListIds(ctx context.Context, sessionId uuid.UUID) ([]uuid.UUID, error)
}
