package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanStartExtraction(t *testing.T) {
	tests := []struct {
		status ExtractionStatus
		want   bool
	}{
		{StatusUnextracted, true},
		{StatusExtracting, false},
		{StatusExtracted, true},
		{StatusStale, true},
		{StatusReextracting, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			s := &CourseSession{Status: tt.status}
			assert.Equal(t, tt.want, s.CanStartExtraction())
		})
	}
}

func TestHasBeenExtracted(t *testing.T) {
	tests := []struct {
		status ExtractionStatus
		want   bool
	}{
		{StatusUnextracted, false},
		{StatusExtracting, false},
		{StatusExtracted, true},
		{StatusStale, true},
		{StatusReextracting, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			s := &CourseSession{Status: tt.status}
			assert.Equal(t, tt.want, s.HasBeenExtracted())
		})
	}
}

func TestJobIsTerminal(t *testing.T) {
	tests := []struct {
		state JobState
		want  bool
	}{
		{JobPending, false},
		{JobRunning, false},
		{JobCompleted, true},
		{JobFailed, true},
		{JobCanceled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			j := &ExtractionJob{State: tt.state}
			assert.Equal(t, tt.want, j.IsTerminal())
		})
	}
}
