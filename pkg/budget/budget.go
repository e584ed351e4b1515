// Package budget sizes generation prompts for a target model: a per-model
// character ceiling plus chunk-boundary-safe truncation of aggregated context.
package budget

import "strings"

// ChunkSeparator joins chunks into one generation context. Truncation
// accounts for it so the emitted text never exceeds the ceiling.
const ChunkSeparator = "\n\n"

// DefaultFallbackChars is used for model ids missing from the table. Sized
// for a conservative 8k-token context at ~3 chars per token.
const DefaultFallbackChars = 24000

// DefaultLimits returns the model ceiling table loaded at startup. Character
// ceilings, not token counts: chunk text is already character-bounded and a
// character ceiling needs no per-model tokenizer. Local Ollama models get a
// conservative ceiling; hosted large-context models get a generous one.
func DefaultLimits() map[string]int {
	return map[string]int{
		"llama3":           24000,
		"llama3.1":         90000,
		"qwen2.5":          90000,
		"mistral":          24000,
		"gemini-1.5-flash": 300000,
		"gemini-1.5-pro":   600000,
	}
}

// Manager resolves model ids to character ceilings. Immutable after
// construction; safe for concurrent use.
type Manager struct {
	limits   map[string]int
	fallback int
}

// NewManager copies the limit table. A fallback <= 0 uses DefaultFallbackChars.
func NewManager(limits map[string]int, fallback int) *Manager {
	if fallback <= 0 {
		fallback = DefaultFallbackChars
	}
	copied := make(map[string]int, len(limits))
	for model, limit := range limits {
		if limit > 0 {
			copied[model] = limit
		}
	}
	return &Manager{limits: copied, fallback: fallback}
}

// MaxChars returns the safe character ceiling for a model id.
func (m *Manager) MaxChars(modelID string) int {
	if limit, ok := m.limits[modelID]; ok {
		return limit
	}
	return m.fallback
}

// TruncateResult reports what survived truncation.
type TruncateResult struct {
	Text string
	// Included counts whole chunks retained.
	Included int
	// HardTruncated is set when even the first chunk exceeded the ceiling
	// and had to be cut mid-chunk as a last resort.
	HardTruncated bool
}

// TruncateChunks joins chunks up to maxChars, cutting only at chunk
// boundaries: a partially included chunk would hand the model text whose
// provenance cannot be verified. If the first chunk alone exceeds the
// ceiling it is hard-truncated and flagged. Lengths are measured in runes so
// multibyte text is never split inside a character.
func TruncateChunks(chunks []string, maxChars int) TruncateResult {
	if len(chunks) == 0 || maxChars <= 0 {
		return TruncateResult{}
	}

	first := []rune(chunks[0])
	if len(first) > maxChars {
		return TruncateResult{
			Text:          string(first[:maxChars]),
			Included:      1,
			HardTruncated: true,
		}
	}

	var sb strings.Builder
	total := 0
	included := 0
	sepLen := len([]rune(ChunkSeparator))

	for _, chunk := range chunks {
		chunkLen := len([]rune(chunk))
		cost := chunkLen
		if included > 0 {
			cost += sepLen
		}
		if total+cost > maxChars {
			break
		}
		if included > 0 {
			sb.WriteString(ChunkSeparator)
		}
		sb.WriteString(chunk)
		total += cost
		included++
	}

	return TruncateResult{Text: sb.String(), Included: included}
}
