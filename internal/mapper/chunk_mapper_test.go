package mapper

import (
	"testing"

	"ai-coursekb-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnembeddedChunkMapsToNullVector(t *testing.T) {
	m := NewChunkMapper()

	// Freshly synced chunks have no embedding; the column must receive
	// NULL because pgvector rejects a zero-dimension literal.
	got := m.ToModel(&entity.Chunk{
		Id:         uuid.New(),
		SessionId:  uuid.New(),
		Text:       "osmosis moves water across membranes",
		SourceFile: "lecture3.md",
	})

	require.NotNil(t, got)
	assert.Nil(t, got.Embedding)

	back := m.ToEntity(got)
	require.NotNil(t, back)
	assert.Empty(t, back.Embedding)
}

func TestEmbeddedChunkRoundTrip(t *testing.T) {
	m := NewChunkMapper()

	e := &entity.Chunk{
		Id:        uuid.New(),
		SessionId: uuid.New(),
		Ordinal:   3,
		Text:      "active transport requires ATP",
		Embedding: []float32{0.1, 0.2, 0.3},
	}

	mod := m.ToModel(e)
	require.NotNil(t, mod)
	require.NotNil(t, mod.Embedding)

	got := m.ToEntity(mod)
	require.NotNil(t, got)
	assert.Equal(t, e.Embedding, got.Embedding)
	assert.Equal(t, e.Ordinal, got.Ordinal)
	assert.Equal(t, e.Text, got.Text)
}

func TestNilChunkMapsToNil(t *testing.T) {
	m := NewChunkMapper()
	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
}
