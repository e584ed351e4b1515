package retrieval

import (
	"context"
	"errors"
	"math"
	"testing"

	"ai-coursekb-be/pkg/embedding"
	"ai-coursekb-be/pkg/lexical"

	"github.com/google/uuid"
)

// --- Test doubles ---

type stubEmbedder struct {
	fail bool
}

func (s *stubEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if s.fail {
		return nil, errors.New("endpoint unreachable")
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

type stubSource struct {
	candidates  []Candidate
	lastLimit   int
	windowCalls int
}

func (s *stubSource) Nearest(ctx context.Context, sessionId uuid.UUID, emb []float32, limit int) ([]Candidate, error) {
	s.lastLimit = limit
	if len(s.candidates) > limit {
		return s.candidates[:limit], nil
	}
	return s.candidates, nil
}

func (s *stubSource) Window(ctx context.Context, sessionId uuid.UUID, limit int) ([]Candidate, error) {
	s.windowCalls++
	return s.candidates, nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestEngine(source ChunkSource, embedFails bool) *Engine {
	return NewEngine(&stubEmbedder{fail: embedFails}, source, lexical.NewTokenizer(), nopLogger{})
}

func candidateWithDistance(text string, distance float64) Candidate {
	return Candidate{ChunkId: uuid.New(), Text: text, SourceFile: "lecture.pdf", Distance: distance}
}

// --- Fusion properties ---

func TestFuseWeightedSumExact(t *testing.T) {
	// Fixture from the retrieval tuning sessions: doc1 is a strong match on
	// both signals, doc5 is weak on both.
	candidates := []Candidate{
		{ChunkId: uuid.New(), Similarity: 0.92},
		{ChunkId: uuid.New(), Similarity: 0.95},
		{ChunkId: uuid.New(), Similarity: 0.45},
	}
	lexScores := []float64{0.95, 0.0, 0.05}

	chunks := fuse(candidates, lexScores, 0.3)

	wantHybrid := []float64{0.929, 0.665, 0.330}
	for i, want := range wantHybrid {
		if math.Abs(chunks[i].HybridScore-want) > 1e-9 {
			t.Errorf("chunk %d hybrid = %f, want %f", i, chunks[i].HybridScore, want)
		}
	}

	query := Query{SessionId: uuid.New(), Text: "q", TopK: 5}
	sorted := finalize(chunks, query)

	// doc1 must outrank the semantically stronger doc with near-zero lexical.
	if sorted[0].HybridScore != chunks[0].HybridScore {
		t.Errorf("doc1 should rank first, got hybrid %f at rank 1", sorted[0].HybridScore)
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].HybridScore > sorted[i-1].HybridScore {
			t.Errorf("output not sorted non-increasing at index %d", i)
		}
	}
}

func TestFuseWeightSweep(t *testing.T) {
	candidates := []Candidate{{ChunkId: uuid.New(), Similarity: 0.8}}
	for _, w := range []float64{0, 0.25, 0.3, 0.5, 0.75, 1} {
		chunks := fuse(candidates, []float64{0.4}, w)
		want := (1-w)*0.8 + w*0.4
		if math.Abs(chunks[0].HybridScore-want) > 1e-12 {
			t.Errorf("w=%f: hybrid = %f, want %f", w, chunks[0].HybridScore, want)
		}
	}
}

func TestFinalizeStableTieBreak(t *testing.T) {
	// Two candidates with identical hybrid scores; the earlier semantic rank
	// must stay first.
	first := uuid.New()
	second := uuid.New()
	chunks := []ScoredChunk{
		{ChunkId: first, HybridScore: 0.5},
		{ChunkId: second, HybridScore: 0.5},
	}

	sorted := finalize(chunks, Query{TopK: 2})
	if sorted[0].ChunkId != first || sorted[1].ChunkId != second {
		t.Error("equal hybrid scores must preserve semantic rank order")
	}
}

func TestFinalizeMinScoreAfterFusion(t *testing.T) {
	chunks := []ScoredChunk{
		{HybridScore: 0.9},
		{HybridScore: 0.6},
		{HybridScore: 0.2},
	}

	sorted := finalize(chunks, Query{TopK: 3, MinScore: 0.5})
	if len(sorted) != 2 {
		t.Fatalf("min_score filter kept %d chunks, want 2", len(sorted))
	}
}

// --- Engine behavior ---

func TestSearchRejectsBadWeight(t *testing.T) {
	engine := newTestEngine(&stubSource{}, false)

	for _, w := range []float64{-0.1, 1.1, 7} {
		_, err := engine.Search(context.Background(), Query{
			SessionId:     uuid.New(),
			Text:          "anything",
			LexicalWeight: w,
		})
		if err == nil {
			t.Errorf("weight %f should be rejected", w)
		}
	}
}

func TestSearchEmptyPool(t *testing.T) {
	engine := newTestEngine(&stubSource{}, false)

	result, err := engine.Search(context.Background(), Query{
		SessionId:     uuid.New(),
		Text:          "query over empty session",
		LexicalWeight: 0.3,
	})
	if err != nil {
		t.Fatalf("empty pool must not error: %v", err)
	}
	if len(result.Chunks) != 0 {
		t.Errorf("got %d chunks, want 0", len(result.Chunks))
	}
	if result.Degraded {
		t.Error("empty pool is not a degraded result")
	}
}

func TestSearchFanOut(t *testing.T) {
	source := &stubSource{}
	engine := newTestEngine(source, false)

	_, err := engine.Search(context.Background(), Query{
		SessionId: uuid.New(),
		Text:      "fan out check",
		TopK:      7,
	})
	if err != nil {
		t.Fatal(err)
	}
	if source.lastLimit != 21 {
		t.Errorf("vector fetch limit = %d, want 3*top_k = 21", source.lastLimit)
	}
}

func TestSearchHybridRanking(t *testing.T) {
	// The chunk holding the exact identifiers ("Atatürk", "1881") sits lower
	// in the semantic ranking but must win after fusion.
	exact := candidateWithDistance("Atatürk 1881 yılında doğdu, doğum tarihi kayıtlarda 1881", 0.15)
	vague := candidateWithDistance("Cumhuriyetin kurucusunun hayatı ve dönemin siyasi olayları", 0.05)
	source := &stubSource{candidates: []Candidate{vague, exact}}
	engine := newTestEngine(source, false)

	result, err := engine.Search(context.Background(), Query{
		SessionId:     uuid.New(),
		Text:          "Atatürk 1881 doğum tarihi",
		TopK:          5,
		LexicalWeight: 0.3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(result.Chunks))
	}
	if result.Chunks[0].ChunkId != exact.ChunkId {
		t.Errorf("exact-identifier chunk should rank first, got lexical=%f hybrid=%f at rank 1",
			result.Chunks[0].LexicalScore, result.Chunks[0].HybridScore)
	}
}

func TestSearchDegradesToLexicalOnly(t *testing.T) {
	match := candidateWithDistance("fotosentez bitkilerde gerçekleşen bir süreçtir", 0)
	other := candidateWithDistance("hücre bölünmesi mitoz ve mayoz olarak ikiye ayrılır", 0)
	source := &stubSource{candidates: []Candidate{other, match}}
	engine := newTestEngine(source, true)

	result, err := engine.Search(context.Background(), Query{
		SessionId: uuid.New(),
		Text:      "fotosentez süreci",
	})
	if err != nil {
		t.Fatalf("degraded path must not error: %v", err)
	}
	if !result.Degraded || result.DegradedReason == "" {
		t.Error("embedding failure must flag the result as degraded")
	}
	if source.windowCalls != 1 {
		t.Errorf("lexical fallback should read the ordinal window once, got %d calls", source.windowCalls)
	}
	if len(result.Chunks) == 0 || result.Chunks[0].ChunkId != match.ChunkId {
		t.Error("lexical-only ranking should surface the keyword match first")
	}
	for _, c := range result.Chunks {
		if c.SemanticScore != 0 {
			t.Error("lexical-only results must not carry semantic scores")
		}
	}
}
