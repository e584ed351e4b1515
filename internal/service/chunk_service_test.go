package service

import (
	"context"
	"testing"

	"ai-coursekb-be/internal/dto"
	"ai-coursekb-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct{ published int }

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.published++
	return nil
}

func TestSyncMarksSessionAndTopicsStale(t *testing.T) {
	instructorId := uuid.New()
	sessionId := uuid.New()
	chunks := makeTestChunks(sessionId, 3)

	ids := make([]string, len(chunks))
	for i, c := range chunks {
		ids[i] = c.Id.String()
	}
	session := &entity.CourseSession{
		Id:                sessionId,
		InstructorId:      instructorId,
		Status:            entity.StatusExtracted,
		ExtractedChunkIds: ids,
	}
	store := newFakeStore(session, chunks)

	topic := &entity.Topic{
		Id:        uuid.New(),
		SessionId: sessionId,
		Title:     "Membrane Structure",
		Status:    entity.TopicExtracted,
	}
	store.topics[topic.Id] = topic

	publisher := &fakePublisher{}
	svc := NewChunkService(&fakeFactory{store: store}, publisher, nil, &nopServiceLogger{})

	res, err := svc.Sync(context.Background(), instructorId, sessionId, &dto.SyncChunksRequest{
		Files: []dto.SyncFile{{SourceFile: "lecture1.md", Content: "entirely new material about cellular respiration"}},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusStale), res.SessionStatus)
	assert.Equal(t, 1, publisher.published)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, entity.StatusStale, store.session.Status)
	// Knowledge synthesized from the replaced chunks is outdated; the topic
	// must advertise that, not just the session.
	assert.Equal(t, entity.TopicStale, store.topics[topic.Id].Status)
	// New chunks carry no vector until the consumer embeds them.
	require.Len(t, store.chunks, 1)
	assert.Empty(t, store.chunks[0].Embedding)
}

func TestSyncLeavesNeverExtractedSessionAlone(t *testing.T) {
	instructorId := uuid.New()
	sessionId := uuid.New()
	session := &entity.CourseSession{
		Id:           sessionId,
		InstructorId: instructorId,
		Status:       entity.StatusUnextracted,
	}
	store := newFakeStore(session, nil)

	svc := NewChunkService(&fakeFactory{store: store}, &fakePublisher{}, nil, &nopServiceLogger{})

	res, err := svc.Sync(context.Background(), instructorId, sessionId, &dto.SyncChunksRequest{
		Files: []dto.SyncFile{{SourceFile: "notes.md", Content: "first upload"}},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusUnextracted), res.SessionStatus)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, entity.StatusUnextracted, store.session.Status)
}
