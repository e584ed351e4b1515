package implementation

import (
	"context"
	"errors"

	"ai-coursekb-be/internal/entity"
	"ai-coursekb-be/internal/mapper"
	"ai-coursekb-be/internal/model"
	"ai-coursekb-be/internal/repository/contract"
	"ai-coursekb-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CourseSessionMapper
}

func NewCourseSessionRepository(db *gorm.DB) contract.CourseSessionRepository {
	return &CourseSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewCourseSessionMapper(),
	}
}

func (r *CourseSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CourseSessionRepositoryImpl) Create(ctx context.Context, session *entity.CourseSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *CourseSessionRepositoryImpl) Update(ctx context.Context, session *entity.CourseSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *CourseSessionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CourseSession{}, id).Error
}

func (r *CourseSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CourseSession, error) {
	var m model.CourseSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CourseSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CourseSession, error) {
	var models []*model.CourseSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CourseSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.CourseSession{}).Count(&count).Error
	return count, err
}

func (r *CourseSessionRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ExtractionStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.CourseSession{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}
