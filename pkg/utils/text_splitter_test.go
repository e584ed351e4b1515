package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextShortInputIsSingleChunk(t *testing.T) {
	chunks := SplitText("hello", 100, 10)
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello", chunks[0])
}

func TestSplitTextEmptyInputYieldsNoChunks(t *testing.T) {
	assert.Empty(t, SplitText("", 100, 10))
}

func TestSplitTextMultibyteShortInputStaysWhole(t *testing.T) {
	// 6 runes but 12 bytes; rune length decides whether to split.
	text := "ığüşöç"
	chunks := SplitText(text, 6, 2)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplitTextOverlapPreservesBoundaryContext(t *testing.T) {
	text := "0123456789"
	chunks := SplitText(text, 4, 2)

	// step = 2: [0:4] [2:6] [4:8] [6:10]
	require.Len(t, chunks, 4)
	assert.Equal(t, "0123", chunks[0])
	assert.Equal(t, "2345", chunks[1])
	assert.Equal(t, "4567", chunks[2])
	assert.Equal(t, "6789", chunks[3])
}

func TestSplitTextCoversWholeInput(t *testing.T) {
	text := strings.Repeat("a", 5000)
	chunks := SplitText(text, 1500, 200)

	var total int
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 1500)
		total += len(c)
	}
	// Overlap means the sum exceeds the input, never undershoots it.
	assert.GreaterOrEqual(t, total, len(text))
	assert.True(t, strings.HasSuffix(text, chunks[len(chunks)-1]))
}

func TestSplitTextOverlapLargerThanChunkFallsBack(t *testing.T) {
	chunks := SplitText("0123456789", 3, 5)

	// step falls back to chunkSize: [0:3] [3:6] [6:9] [9:10]
	require.Len(t, chunks, 4)
	assert.Equal(t, "012", chunks[0])
	assert.Equal(t, "9", chunks[3])
}
