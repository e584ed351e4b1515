package lexical

import (
	"testing"
)

func TestScoreBM25Ranking(t *testing.T) {
	tok := NewTokenizer()
	corpus := tok.TokenizeAll([]string{
		"Atatürk 1881 yılında doğdu, doğum tarihi 1881 olarak kayıtlıdır",
		"Cumhuriyet 1923 yılında ilan edildi",
		"Osmanlı tarihi uzun bir dönemi kapsar",
		"matematik dersinde türev konusu işlendi",
	})
	query := tok.Tokenize("Atatürk 1881 doğum tarihi")

	scores := ScoreBM25(query, corpus)

	if len(scores) != 4 {
		t.Fatalf("got %d scores, want 4", len(scores))
	}
	if scores[0] != 1.0 {
		t.Errorf("best match should normalize to 1.0, got %f", scores[0])
	}
	if scores[3] != 0 {
		t.Errorf("document with no query terms should score 0, got %f", scores[3])
	}
	for i, s := range scores {
		if s < 0 || s > 1 {
			t.Errorf("score[%d] = %f outside [0,1]", i, s)
		}
	}
	if scores[0] <= scores[2] {
		t.Errorf("exact-match doc scored %f, partial-match doc %f; want strict ordering", scores[0], scores[2])
	}
}

func TestScoreBM25AllZero(t *testing.T) {
	tok := NewTokenizer()
	corpus := tok.TokenizeAll([]string{"kimya dersi", "fizik dersi"})
	query := tok.Tokenize("tarih sınavı")

	scores := ScoreBM25(query, corpus)

	for i, s := range scores {
		if s != 0 {
			t.Errorf("score[%d] = %f, want 0 when query shares no terms", i, s)
		}
	}
}

func TestScoreBM25EmptyInputs(t *testing.T) {
	if got := ScoreBM25([]string{"term"}, nil); len(got) != 0 {
		t.Errorf("empty corpus should produce empty scores, got %v", got)
	}

	scores := ScoreBM25(nil, [][]string{{"doc"}})
	if len(scores) != 1 || scores[0] != 0 {
		t.Errorf("empty query should produce zero scores, got %v", scores)
	}

	// Documents that tokenized to nothing must not fault.
	scores = ScoreBM25([]string{"term"}, [][]string{nil, nil})
	if len(scores) != 2 {
		t.Fatalf("got %d scores, want 2", len(scores))
	}
}

func TestScoreBM25SaturationFavorsRarerTerms(t *testing.T) {
	// "shared" appears in every doc, "rare" in one. The rare-term doc must
	// outrank a doc that only repeats the common term.
	corpus := [][]string{
		{"shared", "rare"},
		{"shared", "shared", "shared"},
		{"shared", "filler"},
	}
	scores := ScoreBM25([]string{"shared", "rare"}, corpus)

	if scores[0] != 1.0 {
		t.Errorf("doc with rare term should rank first, scores = %v", scores)
	}
	if scores[1] >= scores[0] {
		t.Errorf("term repetition must saturate: scores = %v", scores)
	}
}
