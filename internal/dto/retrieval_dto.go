package dto

import "github.com/google/uuid"

type RetrievalQueryRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Query     string    `json:"query" validate:"required"`
	TopK      int       `json:"top_k" validate:"omitempty,min=1,max=50"`
	// LexicalWeight is a pointer so an explicit 0 (pure semantic) can be
	// told apart from an omitted field (default 0.3).
	LexicalWeight *float64 `json:"lexical_weight" validate:"omitempty,min=0,max=1"`
	MinScore      float64  `json:"min_score" validate:"omitempty,min=0,max=1"`
}

type RetrievedChunk struct {
	ChunkId       uuid.UUID `json:"chunk_id"`
	Text          string    `json:"text"`
	SourceFile    string    `json:"source_file"`
	SemanticScore float64   `json:"semantic_score"`
	LexicalScore  float64   `json:"lexical_score"`
	HybridScore   float64   `json:"hybrid_score"`
}

type RetrievalQueryResponse struct {
	Chunks         []RetrievedChunk `json:"chunks"`
	Degraded       bool             `json:"degraded"`
	DegradedReason string           `json:"degraded_reason,omitempty"`
}
