package mapper

import (
	"encoding/json"
	"time"

	"ai-coursekb-be/internal/entity"
	"ai-coursekb-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type KnowledgeBaseMapper struct{}

func NewKnowledgeBaseMapper() *KnowledgeBaseMapper {
	return &KnowledgeBaseMapper{}
}

func (m *KnowledgeBaseMapper) ToEntity(kb *model.KnowledgeBase) *entity.KnowledgeBase {
	if kb == nil {
		return nil
	}

	var deletedAt *time.Time
	if kb.DeletedAt.Valid {
		t := kb.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !kb.UpdatedAt.IsZero() {
		t := kb.UpdatedAt
		updatedAt = &t
	}

	var concepts []entity.Concept
	if len(kb.Concepts) > 0 {
		_ = json.Unmarshal(kb.Concepts, &concepts)
	}

	var objectives []string
	if len(kb.Objectives) > 0 {
		_ = json.Unmarshal(kb.Objectives, &objectives)
	}

	var qaPairs []entity.QAPair
	if len(kb.QAPairs) > 0 {
		_ = json.Unmarshal(kb.QAPairs, &qaPairs)
	}

	return &entity.KnowledgeBase{
		Id:             kb.Id,
		TopicId:        kb.TopicId,
		Summary:        kb.Summary,
		Concepts:       concepts,
		Objectives:     objectives,
		QAPairs:        qaPairs,
		QualityScore:   kb.QualityScore,
		Degraded:       kb.Degraded,
		DegradedReason: kb.DegradedReason,
		CreatedAt:      kb.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      kb.DeletedAt.Valid,
	}
}

func (m *KnowledgeBaseMapper) ToModel(kb *entity.KnowledgeBase) *model.KnowledgeBase {
	if kb == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if kb.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *kb.DeletedAt, Valid: true}
	} else if kb.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if kb.UpdatedAt != nil {
		updatedAt = *kb.UpdatedAt
	}

	return &model.KnowledgeBase{
		Id:             kb.Id,
		TopicId:        kb.TopicId,
		Summary:        kb.Summary,
		Concepts:       marshalJSON(kb.Concepts),
		Objectives:     marshalJSON(kb.Objectives),
		QAPairs:        marshalJSON(kb.QAPairs),
		QualityScore:   kb.QualityScore,
		Degraded:       kb.Degraded,
		DegradedReason: kb.DegradedReason,
		CreatedAt:      kb.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *KnowledgeBaseMapper) ToEntities(kbs []*model.KnowledgeBase) []*entity.KnowledgeBase {
	entities := make([]*entity.KnowledgeBase, len(kbs))
	for i, kb := range kbs {
		entities[i] = m.ToEntity(kb)
	}
	return entities
}

func marshalJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return encoded
}
