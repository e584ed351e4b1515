package contract

import (
	"context"

	"ai-coursekb-be/internal/entity"
	"ai-coursekb-be/internal/repository/specification"

	"github.com/google/uuid"
)

type KnowledgeBaseRepository interface {
	// Replace atomically swaps the topic's knowledge base: the previous row
	// is deleted and the new one inserted. Partial field patches are not
	// supported on purpose.
	Replace(ctx context.Context, kb *entity.KnowledgeBase) error
	DeleteByTopicId(ctx context.Context, topicId uuid.UUID) error
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
	FindByTopicId(ctx context.Context, topicId uuid.UUID) (*entity.KnowledgeBase, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeBase, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
