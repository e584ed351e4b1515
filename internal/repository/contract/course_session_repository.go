package contract

import (
	"context"

	"ai-coursekb-be/internal/entity"
	"ai-coursekb-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CourseSessionRepository interface {
	Create(ctx context.Context, session *entity.CourseSession) error
	Update(ctx context.Context, session *entity.CourseSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CourseSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CourseSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// UpdateStatus writes only the lifecycle column, leaving the chunk
	// fingerprint untouched.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ExtractionStatus) error
}
