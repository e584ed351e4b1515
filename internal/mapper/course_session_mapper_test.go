package mapper

import (
	"testing"
	"time"

	"ai-coursekb-be/internal/entity"
	"ai-coursekb-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCourseSessionRoundTrip(t *testing.T) {
	m := NewCourseSessionMapper()

	e := &entity.CourseSession{
		Id:                uuid.New(),
		Title:             "Cell Biology 101",
		InstructorId:      uuid.New(),
		Status:            entity.StatusExtracted,
		ExtractedChunkIds: []string{"a", "b", "c"},
		CreatedAt:         time.Now(),
	}

	got := m.ToEntity(m.ToModel(e))
	require.NotNil(t, got)
	assert.Equal(t, e.Id, got.Id)
	assert.Equal(t, e.Title, got.Title)
	assert.Equal(t, e.InstructorId, got.InstructorId)
	assert.Equal(t, e.Status, got.Status)
	assert.Equal(t, e.ExtractedChunkIds, got.ExtractedChunkIds)
	assert.False(t, got.IsDeleted)
}

func TestCorruptFingerprintReadsAsEmpty(t *testing.T) {
	m := NewCourseSessionMapper()

	got := m.ToEntity(&model.CourseSession{
		Id:                uuid.New(),
		Status:            string(entity.StatusExtracted),
		ExtractedChunkIds: datatypes.JSON(`not json at all`),
	})

	require.NotNil(t, got)
	// An unreadable fingerprint must force a full re-extraction, never a
	// partial one against garbage.
	assert.Empty(t, got.ExtractedChunkIds)
}

func TestNilSessionMapsToNil(t *testing.T) {
	m := NewCourseSessionMapper()
	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
}
