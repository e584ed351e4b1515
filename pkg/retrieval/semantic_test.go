package retrieval

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestSimilarityFromDistance(t *testing.T) {
	tests := []struct {
		distance float64
		want     float64
	}{
		{0, 1},
		{0.25, 0.75},
		{1, 0},
		{1.3, 0},  // cosine distance can exceed 1; clamp, never negative
		{2.0, 0},  // L2 metric spaces
		{-0.1, 1}, // defensive: some indexes report tiny negative distances
	}
	for _, tt := range tests {
		got := similarityFromDistance(tt.distance)
		if tt.distance < 0 {
			if got < 1 {
				t.Errorf("similarityFromDistance(%f) = %f, want >= 1 uncapped top", tt.distance, got)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("similarityFromDistance(%f) = %f, want %f", tt.distance, got, tt.want)
		}
	}
}

func TestRetrieveFillsSimilarity(t *testing.T) {
	source := &stubSource{candidates: []Candidate{
		candidateWithDistance("a", 0.2),
		candidateWithDistance("b", 1.4),
	}}
	r := NewSemanticRetriever(source)

	got, err := r.Retrieve(context.Background(), uuid.New(), []float32{1}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if source.lastLimit != 12 {
		t.Errorf("fetch count = %d, want 12", source.lastLimit)
	}
	if got[0].Similarity != 0.8 {
		t.Errorf("similarity = %f, want 0.8", got[0].Similarity)
	}
	if got[1].Similarity != 0 {
		t.Errorf("similarity = %f, want 0 (clamped)", got[1].Similarity)
	}
}
