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

type KnowledgeBaseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeBaseMapper
}

func NewKnowledgeBaseRepository(db *gorm.DB) contract.KnowledgeBaseRepository {
	return &KnowledgeBaseRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeBaseMapper(),
	}
}

func (r *KnowledgeBaseRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Replace swaps the topic's knowledge base in one statement pair. Run inside
// a unit of work so a failed insert cannot leave the topic with nothing.
func (r *KnowledgeBaseRepositoryImpl) Replace(ctx context.Context, kb *entity.KnowledgeBase) error {
	db := r.db.WithContext(ctx)

	// Hard delete: the old knowledge is superseded, not historical.
	if err := db.Unscoped().Where("topic_id = ?", kb.TopicId).Delete(&model.KnowledgeBase{}).Error; err != nil {
		return err
	}

	m := r.mapper.ToModel(kb)
	if err := db.Create(m).Error; err != nil {
		return err
	}
	*kb = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeBaseRepositoryImpl) DeleteByTopicId(ctx context.Context, topicId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("topic_id = ?", topicId).Delete(&model.KnowledgeBase{}).Error
}

func (r *KnowledgeBaseRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	subQuery := r.db.Table("topics").Select("id").Where("session_id = ?", sessionId)
	return r.db.WithContext(ctx).Where("topic_id IN (?)", subQuery).Delete(&model.KnowledgeBase{}).Error
}

func (r *KnowledgeBaseRepositoryImpl) FindByTopicId(ctx context.Context, topicId uuid.UUID) (*entity.KnowledgeBase, error) {
	var m model.KnowledgeBase
	err := r.db.WithContext(ctx).Where("topic_id = ?", topicId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *KnowledgeBaseRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeBase, error) {
	var models []*model.KnowledgeBase
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *KnowledgeBaseRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.KnowledgeBase{}).Count(&count).Error
	return count, err
}
