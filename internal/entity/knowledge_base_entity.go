package entity

import (
	"time"

	"github.com/google/uuid"
)

type Concept struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Importance string `json:"importance"`
}

type QAPair struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty"`
}

// KnowledgeBase is the synthesized study material for one topic. It is
// replaced wholesale on re-extraction, never patched field by field.
type KnowledgeBase struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TopicId        uuid.UUID `gorm:"type:uuid;index"`
	Summary        string
	Concepts       []Concept
	Objectives     []string
	QAPairs        []QAPair
	QualityScore   float64
	Degraded       bool
	DegradedReason string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
