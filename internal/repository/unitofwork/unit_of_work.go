package unitofwork

import (
	"context"

	"ai-coursekb-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CourseSessionRepository() contract.CourseSessionRepository
	ChunkRepository() contract.ChunkRepository
	TopicRepository() contract.TopicRepository
	KnowledgeBaseRepository() contract.KnowledgeBaseRepository
}
