package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type Chunk struct {
	Id         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Ordinal    int             `gorm:"default:0"` // 0-based position within the source file
	Text       string          `gorm:"type:text"`
	SourceFile string          `gorm:"type:varchar(512)"`
	// NULL until the embed consumer fills it; the column type rejects an
	// empty vector literal, so an absent embedding must never serialize.
	Embedding *pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text and text-embedding-004 are 768-dim
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt  `gorm:"index"`
}

func (Chunk) TableName() string {
	return "chunks"
}
