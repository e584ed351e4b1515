package dto

import "github.com/google/uuid"

// SyncFile is one source document to be chunked into a session.
type SyncFile struct {
	SourceFile string `json:"source_file" validate:"required,max=512"`
	Content    string `json:"content" validate:"required"`
}

type SyncChunksRequest struct {
	Files []SyncFile `json:"files" validate:"required,min=1,dive"`
}

type SyncChunksResponse struct {
	SessionId     uuid.UUID `json:"session_id"`
	ChunksCreated int       `json:"chunks_created"`
	SessionStatus string    `json:"session_status"`
}

// PublishEmbedSessionMessage is the payload handed to the embedding
// consumer after a chunk sync.
type PublishEmbedSessionMessage struct {
	SessionId uuid.UUID `json:"session_id"`
}

type ChunkResponse struct {
	Id         uuid.UUID `json:"id"`
	Ordinal    int       `json:"ordinal"`
	Text       string    `json:"text"`
	SourceFile string    `json:"source_file"`
}
