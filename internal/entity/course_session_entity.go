package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExtractionStatus is the session lifecycle state.
type ExtractionStatus string

const (
	StatusUnextracted  ExtractionStatus = "unextracted"
	StatusExtracting   ExtractionStatus = "extracting"
	StatusExtracted    ExtractionStatus = "extracted"
	StatusStale        ExtractionStatus = "stale"
	StatusReextracting ExtractionStatus = "re-extracting"
)

type CourseSession struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title        string
	InstructorId uuid.UUID `gorm:"type:uuid;index"`
	Status       ExtractionStatus
	// ExtractedChunkIds is the chunk fingerprint captured at the last
	// successful extraction, used to decide full vs partial re-extraction.
	ExtractedChunkIds []string
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	DeletedAt         *time.Time
	IsDeleted         bool
}

// CanStartExtraction reports whether an extraction run may begin from the
// current state. Runs already in flight block new ones.
func (s *CourseSession) CanStartExtraction() bool {
	switch s.Status {
	case StatusExtracting, StatusReextracting:
		return false
	default:
		return true
	}
}

// HasBeenExtracted reports whether the session holds extraction output
// worth diffing against.
func (s *CourseSession) HasBeenExtracted() bool {
	return s.Status == StatusExtracted || s.Status == StatusStale
}
