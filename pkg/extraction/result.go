package extraction

import (
	"github.com/google/uuid"
)

// Outcome classifies one processed work item. Partial-success aggregation is
// a fold over ItemResults; no errors are threaded through batch control flow.
type Outcome int

const (
	OutcomeSucceeded Outcome = iota
	OutcomeDegraded
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeDegraded:
		return "degraded"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Item is one unit of batch work, a topic to synthesize knowledge for.
// Index is the position in the caller's original list; final results are
// reassembled by it regardless of batch completion order.
type Item struct {
	Index   int
	TopicId uuid.UUID
	Title   string
}

// Concept is one key term in a topic's knowledge base.
type Concept struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Importance string `json:"importance"`
}

// QAPair is one study question generated for a topic.
type QAPair struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty"`
}

// KnowledgePayload is the synthesized knowledge base content for one topic.
// It is written wholesale; callers never patch individual fields.
type KnowledgePayload struct {
	Summary        string    `json:"summary"`
	Concepts       []Concept `json:"concepts"`
	Objectives     []string  `json:"objectives"`
	QAPairs        []QAPair  `json:"qa_pairs"`
	QualityScore   float64   `json:"quality_score"`
	Degraded       bool      `json:"degraded,omitempty"`
	DegradedReason string    `json:"degraded_reason,omitempty"`
}

// ItemResult is the explicit per-item outcome of a batch run.
type ItemResult struct {
	Item      Item
	Outcome   Outcome
	Knowledge *KnowledgePayload // set for succeeded and degraded items
	Reason    string            // degradation or failure reason
	Err       error             // terminal error for failed items
}

// RunReport aggregates a batch run. Results holds every item in original
// order; Processed counts succeeded plus degraded items.
type RunReport struct {
	Results   []ItemResult
	Processed int
	Failed    []ItemResult
	Batches   int
	BatchSize int
}
