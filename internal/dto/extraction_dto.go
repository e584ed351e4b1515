package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartExtractionRequest struct {
	ModelId string `json:"model_id" validate:"required"`
}

type StartExtractionResponse struct {
	JobId     uuid.UUID `json:"job_id"`
	SessionId uuid.UUID `json:"session_id"`
	State     string    `json:"state"`
}

type ReextractRequest struct {
	ModelId string `json:"model_id" validate:"required"`
	Mode    string `json:"mode" validate:"omitempty,oneof=auto full partial"`
}

type ReextractResponse struct {
	JobId             uuid.UUID `json:"job_id"`
	SessionId         uuid.UUID `json:"session_id"`
	Mode              string    `json:"mode"`
	TopicsAdded       int       `json:"topics_added"`
	TopicsReused      int       `json:"topics_reused"`
	TopicsReextracted int       `json:"topics_reextracted"`
}

type TopicResultDTO struct {
	TopicId      uuid.UUID `json:"topic_id"`
	Title        string    `json:"title"`
	Outcome      string    `json:"outcome"`
	Reason       string    `json:"reason,omitempty"`
	QualityScore float64   `json:"quality_score"`
}

type JobStatusResponse struct {
	JobId                 uuid.UUID        `json:"job_id"`
	SessionId             uuid.UUID        `json:"session_id"`
	ModelId               string           `json:"model_id"`
	Mode                  string           `json:"mode"`
	State                 string           `json:"state"`
	Total                 int              `json:"total"`
	ProcessedSuccessfully int              `json:"processed_successfully"`
	Failed                int              `json:"failed"`
	BatchSize             int              `json:"batch_size"`
	Batches               int              `json:"batches"`
	Results               []TopicResultDTO `json:"results,omitempty"`
	Error                 string           `json:"error,omitempty"`
	StartedAt             time.Time        `json:"started_at"`
	FinishedAt            *time.Time       `json:"finished_at,omitempty"`
}

type CancelJobResponse struct {
	JobId uuid.UUID `json:"job_id"`
	State string    `json:"state"`
}

type ConceptDTO struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Importance string `json:"importance"`
}

type QAPairDTO struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty"`
}

type KnowledgeBaseDTO struct {
	Summary        string       `json:"summary"`
	Concepts       []ConceptDTO `json:"concepts"`
	Objectives     []string     `json:"objectives"`
	QAPairs        []QAPairDTO  `json:"qa_pairs"`
	QualityScore   float64      `json:"quality_score"`
	Degraded       bool         `json:"degraded"`
	DegradedReason string       `json:"degraded_reason,omitempty"`
}

type TopicWithKnowledgeResponse struct {
	Id        uuid.UUID         `json:"id"`
	Title     string            `json:"title"`
	Status    string            `json:"status"`
	Knowledge *KnowledgeBaseDTO `json:"knowledge,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt *time.Time        `json:"updated_at"`
}
