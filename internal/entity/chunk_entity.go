package entity

import (
	"time"

	"github.com/google/uuid"
)

type Chunk struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId uuid.UUID `gorm:"type:uuid;index"`
	// Ordinal is the chunk's 0-based position in its source file.
	Ordinal    int
	Text       string
	SourceFile string
	Embedding  []float32
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
