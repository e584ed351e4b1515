package service

import (
	"context"

	"ai-coursekb-be/internal/dto"
	"ai-coursekb-be/internal/pkg/apperror"
	"ai-coursekb-be/internal/repository/specification"
	"ai-coursekb-be/internal/repository/unitofwork"
	"ai-coursekb-be/pkg/retrieval"

	"github.com/google/uuid"
)

type IRetrievalService interface {
	Query(ctx context.Context, instructorId uuid.UUID, req *dto.RetrievalQueryRequest) (*dto.RetrievalQueryResponse, error)
}

type retrievalService struct {
	uowFactory unitofwork.RepositoryFactory
	engine     *retrieval.Engine
}

func NewRetrievalService(uowFactory unitofwork.RepositoryFactory, engine *retrieval.Engine) IRetrievalService {
	return &retrievalService{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

func (s *retrievalService) Query(ctx context.Context, instructorId uuid.UUID, req *dto.RetrievalQueryRequest) (*dto.RetrievalQueryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.CourseSessionRepository().FindOne(ctx,
		specification.ByID{ID: req.SessionId},
		specification.ByInstructorID{InstructorID: instructorId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("session %s not found", req.SessionId)
	}

	weight := retrieval.DefaultLexicalWeight
	if req.LexicalWeight != nil {
		weight = *req.LexicalWeight
	}

	result, err := s.engine.Search(ctx, retrieval.Query{
		SessionId:     req.SessionId,
		Text:          req.Query,
		TopK:          req.TopK,
		LexicalWeight: weight,
		MinScore:      req.MinScore,
	})
	if err != nil {
		return nil, err
	}

	chunks := make([]dto.RetrievedChunk, len(result.Chunks))
	for i, c := range result.Chunks {
		chunks[i] = dto.RetrievedChunk{
			ChunkId:       c.ChunkId,
			Text:          c.Text,
			SourceFile:    c.SourceFile,
			SemanticScore: c.SemanticScore,
			LexicalScore:  c.LexicalScore,
			HybridScore:   c.HybridScore,
		}
	}

	return &dto.RetrievalQueryResponse{
		Chunks:         chunks,
		Degraded:       result.Degraded,
		DegradedReason: result.DegradedReason,
	}, nil
}

// GormChunkSource adapts the chunk repository to the retrieval engine's
// view of the corpus.
type GormChunkSource struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewGormChunkSource(uowFactory unitofwork.RepositoryFactory) *GormChunkSource {
	return &GormChunkSource{uowFactory: uowFactory}
}

func (s *GormChunkSource) Nearest(ctx context.Context, sessionId uuid.UUID, embedding []float32, limit int) ([]retrieval.Candidate, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.ChunkRepository().SearchNearest(ctx, sessionId, embedding, limit)
	if err != nil {
		return nil, err
	}

	candidates := make([]retrieval.Candidate, len(scored))
	for i, sc := range scored {
		candidates[i] = retrieval.Candidate{
			ChunkId:    sc.Chunk.Id,
			Text:       sc.Chunk.Text,
			SourceFile: sc.Chunk.SourceFile,
			Distance:   sc.Distance,
		}
	}
	return candidates, nil
}

func (s *GormChunkSource) Window(ctx context.Context, sessionId uuid.UUID, limit int) ([]retrieval.Candidate, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	chunks, err := uow.ChunkRepository().Window(ctx, sessionId, limit)
	if err != nil {
		return nil, err
	}

	candidates := make([]retrieval.Candidate, len(chunks))
	for i, c := range chunks {
		candidates[i] = retrieval.Candidate{
			ChunkId:    c.Id,
			Text:       c.Text,
			SourceFile: c.SourceFile,
		}
	}
	return candidates, nil
}
