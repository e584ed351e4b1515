package mapper

import (
	"encoding/json"
	"time"

	"ai-coursekb-be/internal/entity"
	"ai-coursekb-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CourseSessionMapper struct{}

func NewCourseSessionMapper() *CourseSessionMapper {
	return &CourseSessionMapper{}
}

func (m *CourseSessionMapper) ToEntity(s *model.CourseSession) *entity.CourseSession {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	var chunkIds []string
	if len(s.ExtractedChunkIds) > 0 {
		// A corrupt fingerprint reads as "never extracted", which forces a
		// full re-extraction rather than a wrong partial one.
		_ = json.Unmarshal(s.ExtractedChunkIds, &chunkIds)
	}

	return &entity.CourseSession{
		Id:                s.Id,
		Title:             s.Title,
		InstructorId:      s.InstructorId,
		Status:            entity.ExtractionStatus(s.Status),
		ExtractedChunkIds: chunkIds,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         updatedAt,
		DeletedAt:         deletedAt,
		IsDeleted:         s.DeletedAt.Valid,
	}
}

func (m *CourseSessionMapper) ToModel(s *entity.CourseSession) *model.CourseSession {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	var chunkIds datatypes.JSON
	if s.ExtractedChunkIds != nil {
		if encoded, err := json.Marshal(s.ExtractedChunkIds); err == nil {
			chunkIds = encoded
		}
	}

	return &model.CourseSession{
		Id:                s.Id,
		Title:             s.Title,
		InstructorId:      s.InstructorId,
		Status:            string(s.Status),
		ExtractedChunkIds: chunkIds,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         updatedAt,
		DeletedAt:         deletedAt,
	}
}

func (m *CourseSessionMapper) ToEntities(sessions []*model.CourseSession) []*entity.CourseSession {
	entities := make([]*entity.CourseSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

func (m *CourseSessionMapper) ToModels(sessions []*entity.CourseSession) []*model.CourseSession {
	models := make([]*model.CourseSession, len(sessions))
	for i, s := range sessions {
		models[i] = m.ToModel(s)
	}
	return models
}
