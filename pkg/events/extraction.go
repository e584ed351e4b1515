package events

import "time"

// Subjects published to the event bus. Consumers subscribe under
// "events.extraction.>" for the extraction lifecycle.
const (
	TypeExtractionStarted   = "extraction.started"
	TypeExtractionCompleted = "extraction.completed"
	TypeExtractionFailed    = "extraction.failed"
	TypeSessionStale        = "extraction.session_stale"
)

func NewExtractionStarted(sessionId, jobId, modelId string, topicCount int) Event {
	return BaseEvent{
		Type: TypeExtractionStarted,
		Data: map[string]interface{}{
			"session_id":  sessionId,
			"job_id":      jobId,
			"model_id":    modelId,
			"topic_count": topicCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewExtractionCompleted reports the partial-success tally: processed counts
// degraded items, failed lists the items that exhausted their retries.
func NewExtractionCompleted(sessionId, jobId string, processed, failed, total int) Event {
	return BaseEvent{
		Type: TypeExtractionCompleted,
		Data: map[string]interface{}{
			"session_id":             sessionId,
			"job_id":                 jobId,
			"processed_successfully": processed,
			"failed":                 failed,
			"total":                  total,
		},
		OccurredAt: time.Now(),
	}
}

func NewExtractionFailed(sessionId, jobId, reason string) Event {
	return BaseEvent{
		Type: TypeExtractionFailed,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"job_id":     jobId,
			"reason":     reason,
		},
		OccurredAt: time.Now(),
	}
}

// NewSessionStale fires when a session's chunk set changes after a
// successful extraction.
func NewSessionStale(sessionId string, changeRatio float64) Event {
	return BaseEvent{
		Type: TypeSessionStale,
		Data: map[string]interface{}{
			"session_id":   sessionId,
			"change_ratio": changeRatio,
		},
		OccurredAt: time.Now(),
	}
}
