package entity

import (
	"time"

	"github.com/google/uuid"
)

// JobState is the lifecycle of an asynchronous extraction run.
type JobState string

const (
	JobPending   JobState = "pending"
	JobRunning   JobState = "running"
	JobCompleted JobState = "completed"
	JobFailed    JobState = "failed"
	JobCanceled  JobState = "canceled"
)

// TopicResult is the per-topic outcome surfaced by the job status endpoint.
type TopicResult struct {
	TopicId      uuid.UUID `json:"topic_id"`
	Title        string    `json:"title"`
	Outcome      string    `json:"outcome"`
	Reason       string    `json:"reason,omitempty"`
	QualityScore float64   `json:"quality_score"`
}

// ExtractionJob is transient run state. It lives in the in-memory job store
// and is never persisted; restarting the server abandons in-flight jobs.
type ExtractionJob struct {
	Id         uuid.UUID
	SessionId  uuid.UUID
	ModelId    string
	Mode       string
	State      JobState
	Total      int
	Processed  int
	Failed     int
	BatchSize  int
	Batches    int
	Results    []TopicResult
	Error      string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// IsTerminal reports whether the job has stopped making progress.
func (j *ExtractionJob) IsTerminal() bool {
	switch j.State {
	case JobCompleted, JobFailed, JobCanceled:
		return true
	default:
		return false
	}
}
