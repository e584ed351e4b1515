package entity

import (
	"time"

	"github.com/google/uuid"
)

// TopicStatus tracks whether a topic's knowledge base is current.
type TopicStatus string

const (
	TopicPending   TopicStatus = "pending"
	TopicExtracted TopicStatus = "extracted"
	TopicStale     TopicStatus = "stale"
	TopicFailed    TopicStatus = "failed"
)

type Topic struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId uuid.UUID `gorm:"type:uuid;index"`
	Title     string
	Status    TopicStatus
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
