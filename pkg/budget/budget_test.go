package budget

import (
	"strings"
	"testing"
)

func TestMaxChars(t *testing.T) {
	m := NewManager(map[string]int{"llama3": 1000, "broken": -5}, 0)

	if got := m.MaxChars("llama3"); got != 1000 {
		t.Errorf("MaxChars(llama3) = %d, want 1000", got)
	}
	if got := m.MaxChars("unknown-model"); got != DefaultFallbackChars {
		t.Errorf("MaxChars(unknown) = %d, want fallback %d", got, DefaultFallbackChars)
	}
	// Non-positive table entries are discarded, not honored.
	if got := m.MaxChars("broken"); got != DefaultFallbackChars {
		t.Errorf("MaxChars(broken) = %d, want fallback", got)
	}
}

func TestTruncateChunksWholeBoundaries(t *testing.T) {
	chunks := []string{
		strings.Repeat("a", 10),
		strings.Repeat("b", 10),
		strings.Repeat("c", 10),
	}

	// 10 + 2 + 10 = 22 fits; adding "c" (2+10) would need 34.
	res := TruncateChunks(chunks, 25)

	if res.HardTruncated {
		t.Error("should not hard-truncate when the first chunk fits")
	}
	if res.Included != 2 {
		t.Errorf("Included = %d, want 2", res.Included)
	}
	if got := len([]rune(res.Text)); got > 25 {
		t.Errorf("truncated length %d exceeds ceiling 25", got)
	}
	if strings.Contains(res.Text, "c") {
		t.Error("third chunk must not be partially included")
	}
}

func TestTruncateChunksNeverSplits(t *testing.T) {
	chunks := []string{"alpha chunk", "beta chunk", "gamma chunk"}

	for maxChars := 1; maxChars <= 40; maxChars++ {
		res := TruncateChunks(chunks, maxChars)
		if got := len([]rune(res.Text)); got > maxChars {
			t.Fatalf("maxChars=%d: emitted %d chars", maxChars, got)
		}
		if res.HardTruncated {
			continue // first-chunk fallback, partial by design
		}
		for _, part := range strings.Split(res.Text, ChunkSeparator) {
			if part == "" {
				continue
			}
			if part != chunks[0] && part != chunks[1] && part != chunks[2] {
				t.Fatalf("maxChars=%d: partial chunk %q in output", maxChars, part)
			}
		}
	}
}

func TestTruncateChunksOversizedFirst(t *testing.T) {
	res := TruncateChunks([]string{strings.Repeat("x", 100), "tail"}, 30)

	if !res.HardTruncated {
		t.Fatal("oversized first chunk must be flagged")
	}
	if got := len([]rune(res.Text)); got != 30 {
		t.Errorf("hard truncation emitted %d chars, want 30", got)
	}
	if res.Included != 1 {
		t.Errorf("Included = %d, want 1", res.Included)
	}
}

func TestTruncateChunksMultibyte(t *testing.T) {
	// Turkish text: rune count differs from byte count.
	chunk := "öğretim üyesi ders notları"
	res := TruncateChunks([]string{chunk}, len([]rune(chunk)))

	if res.HardTruncated {
		t.Error("chunk exactly at the ceiling must fit whole")
	}
	if res.Text != chunk {
		t.Errorf("Text = %q, want full chunk", res.Text)
	}
}

func TestTruncateChunksEmpty(t *testing.T) {
	if res := TruncateChunks(nil, 100); res.Text != "" || res.Included != 0 {
		t.Error("nil chunks should produce an empty result")
	}
	if res := TruncateChunks([]string{"x"}, 0); res.Text != "" {
		t.Error("zero ceiling should produce an empty result")
	}
}
