package service

import (
	"context"
	"time"

	"ai-coursekb-be/internal/dto"
	"ai-coursekb-be/internal/entity"
	"ai-coursekb-be/internal/pkg/apperror"
	"ai-coursekb-be/internal/repository/specification"
	"ai-coursekb-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, instructorId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	Show(ctx context.Context, instructorId uuid.UUID, id uuid.UUID) (*dto.ShowSessionResponse, error)
	List(ctx context.Context, instructorId uuid.UUID) ([]*dto.ListSessionsResponse, error)
	Update(ctx context.Context, instructorId uuid.UUID, req *dto.UpdateSessionRequest) (*dto.UpdateSessionResponse, error)
	Delete(ctx context.Context, instructorId uuid.UUID, id uuid.UUID) error
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
	}
}

func (s *sessionService) Create(ctx context.Context, instructorId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session := entity.CourseSession{
		Id:           uuid.New(),
		Title:        req.Title,
		InstructorId: instructorId,
		Status:       entity.StatusUnextracted,
		CreatedAt:    time.Now(),
	}

	if err := uow.CourseSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{
		Id: session.Id,
	}, nil
}

func (s *sessionService) Show(ctx context.Context, instructorId uuid.UUID, id uuid.UUID) (*dto.ShowSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.findOwned(ctx, uow, instructorId, id)
	if err != nil {
		return nil, err
	}

	chunkCount, err := uow.ChunkRepository().Count(ctx, specification.BySessionID{SessionID: id})
	if err != nil {
		return nil, err
	}

	topicCount, err := uow.TopicRepository().Count(ctx, specification.BySessionID{SessionID: id})
	if err != nil {
		return nil, err
	}

	return &dto.ShowSessionResponse{
		Id:         session.Id,
		Title:      session.Title,
		Status:     string(session.Status),
		ChunkCount: chunkCount,
		TopicCount: topicCount,
		CreatedAt:  session.CreatedAt,
		UpdatedAt:  session.UpdatedAt,
	}, nil
}

func (s *sessionService) List(ctx context.Context, instructorId uuid.UUID) ([]*dto.ListSessionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.CourseSessionRepository().FindAll(ctx,
		specification.ByInstructorID{InstructorID: instructorId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ListSessionsResponse, len(sessions))
	for i, session := range sessions {
		res[i] = &dto.ListSessionsResponse{
			Id:        session.Id,
			Title:     session.Title,
			Status:    string(session.Status),
			CreatedAt: session.CreatedAt,
			UpdatedAt: session.UpdatedAt,
		}
	}
	return res, nil
}

func (s *sessionService) Update(ctx context.Context, instructorId uuid.UUID, req *dto.UpdateSessionRequest) (*dto.UpdateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.findOwned(ctx, uow, instructorId, req.Id)
	if err != nil {
		return nil, err
	}

	session.Title = req.Title
	if err := uow.CourseSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	return &dto.UpdateSessionResponse{
		Id: session.Id,
	}, nil
}

// Delete removes the session and everything hanging off it. The cascade runs
// in one transaction so a half-deleted session can never be observed.
func (s *sessionService) Delete(ctx context.Context, instructorId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.findOwned(ctx, uow, instructorId, id); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.KnowledgeBaseRepository().DeleteBySessionId(ctx, id); err != nil {
		return err
	}
	if err := uow.TopicRepository().DeleteBySessionId(ctx, id); err != nil {
		return err
	}
	if err := uow.ChunkRepository().DeleteBySessionId(ctx, id); err != nil {
		return err
	}
	if err := uow.CourseSessionRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *sessionService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, instructorId, id uuid.UUID) (*entity.CourseSession, error) {
	session, err := uow.CourseSessionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByInstructorID{InstructorID: instructorId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("session %s not found", id)
	}
	return session, nil
}
