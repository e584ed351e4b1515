package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-coursekb-be/internal/dto"
	"ai-coursekb-be/internal/entity"
	"ai-coursekb-be/internal/pkg/apperror"
	"ai-coursekb-be/internal/pkg/logger"
	"ai-coursekb-be/internal/repository/specification"
	"ai-coursekb-be/internal/repository/unitofwork"
	"ai-coursekb-be/pkg/events"
	"ai-coursekb-be/pkg/extraction"
	"ai-coursekb-be/pkg/lexical"
	pktNats "ai-coursekb-be/pkg/nats"
	"ai-coursekb-be/pkg/utils"

	"github.com/google/uuid"
)

const (
	// Chunk sizing mirrors what the embedding models handle comfortably:
	// roughly 375 tokens per chunk with overlap to keep boundary context.
	chunkSize    = 1500
	chunkOverlap = 200
)

type IChunkService interface {
	Sync(ctx context.Context, instructorId, sessionId uuid.UUID, req *dto.SyncChunksRequest) (*dto.SyncChunksResponse, error)
	List(ctx context.Context, instructorId, sessionId uuid.UUID) ([]*dto.ChunkResponse, error)
}

type chunkService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewChunkService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChunkService {
	return &chunkService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

// Sync replaces the chunk sets of the uploaded source files. Embeddings are
// generated asynchronously by the consumer; retrieval against brand-new
// chunks degrades to lexical scoring until they arrive.
func (s *chunkService) Sync(ctx context.Context, instructorId, sessionId uuid.UUID, req *dto.SyncChunksRequest) (*dto.SyncChunksResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.findOwned(ctx, uow, instructorId, sessionId)
	if err != nil {
		return nil, err
	}

	var newChunks []*entity.Chunk
	for _, file := range req.Files {
		// Rich-text editor exports arrive as Lexical JSON; plain text passes
		// through untouched.
		content := lexical.ParseContent(file.Content)
		pieces := utils.SplitText(content, chunkSize, chunkOverlap)
		for i, piece := range pieces {
			newChunks = append(newChunks, &entity.Chunk{
				Id:         uuid.New(),
				SessionId:  sessionId,
				Ordinal:    i,
				Text:       piece,
				SourceFile: file.SourceFile,
				CreatedAt:  time.Now(),
			})
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	chunkRepo := uow.ChunkRepository()
	for _, file := range req.Files {
		old, err := chunkRepo.FindAll(ctx,
			specification.BySessionID{SessionID: sessionId},
			specification.BySourceFile{SourceFile: file.SourceFile},
		)
		if err != nil {
			return nil, err
		}
		for _, c := range old {
			if err := chunkRepo.Delete(ctx, c.Id); err != nil {
				return nil, err
			}
		}
	}

	if err := chunkRepo.CreateBulk(ctx, newChunks); err != nil {
		return nil, err
	}

	// A changed chunk set invalidates previous extraction output.
	status := session.Status
	var changeRatio float64
	if session.HasBeenExtracted() {
		currentIds, err := chunkRepo.ListIds(ctx, sessionId)
		if err != nil {
			return nil, err
		}
		changeRatio = extraction.ChunkChangeRatio(session.ExtractedChunkIds, idsToStrings(currentIds))
		if changeRatio > 0 {
			status = entity.StatusStale
			if err := uow.CourseSessionRepository().UpdateStatus(ctx, sessionId, status); err != nil {
				return nil, err
			}
			// Topics synthesized from the old chunk set carry outdated
			// knowledge until a re-extraction runs.
			if err := uow.TopicRepository().UpdateStatusBySessionId(ctx, sessionId, entity.TopicStale); err != nil {
				return nil, err
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	msgJson, err := json.Marshal(dto.PublishEmbedSessionMessage{SessionId: sessionId})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	if status == entity.StatusStale && s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewSessionStale(sessionId.String(), changeRatio)); err != nil {
			s.logger.Warn("chunk", "Failed to publish session stale event", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
	}

	s.logger.Info("chunk", "Chunk sync complete", map[string]interface{}{
		"session_id":     sessionId,
		"files":          len(req.Files),
		"chunks_created": len(newChunks),
		"status":         string(status),
	})

	return &dto.SyncChunksResponse{
		SessionId:     sessionId,
		ChunksCreated: len(newChunks),
		SessionStatus: string(status),
	}, nil
}

func (s *chunkService) List(ctx context.Context, instructorId, sessionId uuid.UUID) ([]*dto.ChunkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.findOwned(ctx, uow, instructorId, sessionId); err != nil {
		return nil, err
	}

	chunks, err := uow.ChunkRepository().Window(ctx, sessionId, 0)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ChunkResponse, len(chunks))
	for i, c := range chunks {
		res[i] = &dto.ChunkResponse{
			Id:         c.Id,
			Ordinal:    c.Ordinal,
			Text:       c.Text,
			SourceFile: c.SourceFile,
		}
	}
	return res, nil
}

func (s *chunkService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, instructorId, sessionId uuid.UUID) (*entity.CourseSession, error) {
	session, err := uow.CourseSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.ByInstructorID{InstructorID: instructorId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("session %s not found", sessionId)
	}
	return session, nil
}

func idsToStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
