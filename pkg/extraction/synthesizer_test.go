package extraction

import (
	"context"
	"strings"
	"testing"

	"ai-coursekb-be/pkg/budget"
	"ai-coursekb-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	response string
	err      error
	prompts  []string
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if len(history) > 0 {
		p.prompts = append(p.prompts, history[len(history)-1].Content)
	}
	return p.response, p.err
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	p.prompts = append(p.prompts, prompt)
	return p.response, p.err
}

const validKnowledgeJSON = `{
	"summary": "Osmosis is the passive movement of water across a membrane.",
	"concepts": [
		{"term": "osmosis", "definition": "water diffusion across a membrane", "importance": "core mechanism"},
		{"term": "tonicity", "definition": "relative solute concentration", "importance": "predicts direction"},
		{"term": "turgor", "definition": "pressure from water influx", "importance": "plant rigidity"},
		{"term": "plasmolysis", "definition": "cell shrinkage in hypertonic solution", "importance": "failure mode"}
	],
	"objectives": ["Explain osmosis", "Predict water movement", "Relate tonicity to cell state"],
	"qa_pairs": [
		{"question": "What drives osmosis?", "answer": "The water concentration gradient.", "difficulty": "easy"},
		{"question": "What happens in a hypertonic bath?", "answer": "The cell loses water.", "difficulty": "medium"},
		{"question": "Why do plant cells resist lysis?", "answer": "The cell wall limits expansion.", "difficulty": "hard"}
	]
}`

func synthWithBudget(provider llm.Provider, maxChars int) *Synthesizer {
	budgets := budget.NewManager(map[string]int{"test-model": maxChars}, maxChars)
	return NewSynthesizer(provider, budgets, nopLogger{})
}

func TestPromptBudgetSubtractsTemplateInRunes(t *testing.T) {
	s := synthWithBudget(&stubProvider{}, 100)

	// 10 runes but 20 bytes; the headroom must match what TruncateChunks
	// will measure, or multibyte templates double-charge the budget.
	template := strings.Repeat("ş", 10)
	assert.Equal(t, 90, s.promptBudget("test-model", template))
}

func TestProposeTopicsParsesArray(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []string
	}{
		{
			"bare array",
			`["Cell Membrane Structure", "Osmosis and Diffusion"]`,
			[]string{"Cell Membrane Structure", "Osmosis and Diffusion"},
		},
		{
			"fenced array",
			"```json\n[\"Cell Membrane Structure\"]\n```",
			[]string{"Cell Membrane Structure"},
		},
		{
			"array with prose around it",
			"Here are the topics:\n[\"Osmosis\", \" Active Transport \"]\nHope that helps.",
			[]string{"Osmosis", "Active Transport"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := synthWithBudget(&stubProvider{response: tt.response}, 50000)
			got, err := s.ProposeTopics(context.Background(), "test-model", []string{"membranes regulate transport"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProposeTopicsRejectsGarbage(t *testing.T) {
	s := synthWithBudget(&stubProvider{response: "I could not find any topics."}, 50000)
	_, err := s.ProposeTopics(context.Background(), "test-model", []string{"chunk"})
	assert.Error(t, err)
}

func TestProposeTopicsRequiresChunks(t *testing.T) {
	s := synthWithBudget(&stubProvider{response: `["x"]`}, 50000)
	_, err := s.ProposeTopics(context.Background(), "test-model", nil)
	assert.Error(t, err)
}

func TestSynthesizeParsesKnowledge(t *testing.T) {
	provider := &stubProvider{response: validKnowledgeJSON}
	s := synthWithBudget(provider, 50000)

	payload, err := s.Synthesize(context.Background(), "test-model", "Osmosis", []string{"water moves across membranes"})
	require.NoError(t, err)

	assert.Contains(t, payload.Summary, "passive movement")
	assert.Len(t, payload.Concepts, 4)
	assert.Len(t, payload.Objectives, 3)
	assert.Len(t, payload.QAPairs, 3)
	assert.False(t, payload.Degraded)
	assert.InDelta(t, 1.0, payload.QualityScore, 1e-9)

	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], `"Osmosis"`)
	assert.Contains(t, provider.prompts[0], "water moves across membranes")
}

func TestSynthesizeQualityScoreScalesWithCompleteness(t *testing.T) {
	// Summary only: 0.25. No concepts, objectives, or qa_pairs.
	sparse := `{"summary": "Just a summary.", "concepts": [], "objectives": [], "qa_pairs": []}`
	s := synthWithBudget(&stubProvider{response: sparse}, 50000)

	payload, err := s.Synthesize(context.Background(), "test-model", "Topic", []string{"chunk"})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, payload.QualityScore, 1e-9)
}

func TestSynthesizeRejectsMissingSummary(t *testing.T) {
	s := synthWithBudget(&stubProvider{response: `{"summary": "  ", "concepts": []}`}, 50000)
	_, err := s.Synthesize(context.Background(), "test-model", "Topic", []string{"chunk"})
	assert.Error(t, err)
}

func TestSynthesizeMarksTruncationDegraded(t *testing.T) {
	// Budget barely above the template size: only the first chunk fits.
	maxChars := len(knowledgeSynthesisPrompt) + 30
	provider := &stubProvider{response: validKnowledgeJSON}
	s := synthWithBudget(provider, maxChars)

	chunks := []string{
		strings.Repeat("a", 25),
		strings.Repeat("b", 25),
		strings.Repeat("c", 25),
	}
	payload, err := s.Synthesize(context.Background(), "test-model", "Topic", chunks)
	require.NoError(t, err)

	assert.True(t, payload.Degraded)
	assert.Contains(t, payload.DegradedReason, "1 of 3 chunks")
}

func TestSynthesizePropagatesProviderErrors(t *testing.T) {
	s := synthWithBudget(&stubProvider{err: llm.ErrRateLimited}, 50000)
	_, err := s.Synthesize(context.Background(), "test-model", "Topic", []string{"chunk"})
	require.Error(t, err)
	assert.True(t, llm.IsTransient(err))
}
