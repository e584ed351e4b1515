package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type KnowledgeBase struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TopicId        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Summary        string         `gorm:"type:text"`
	Concepts       datatypes.JSON `gorm:"type:jsonb"`
	Objectives     datatypes.JSON `gorm:"type:jsonb"`
	QAPairs        datatypes.JSON `gorm:"type:jsonb;column:qa_pairs"`
	QualityScore   float64        `gorm:"default:0"`
	Degraded       bool           `gorm:"default:false"`
	DegradedReason string         `gorm:"type:varchar(512)"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (KnowledgeBase) TableName() string {
	return "knowledge_bases"
}
