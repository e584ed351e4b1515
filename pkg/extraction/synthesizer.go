package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"ai-coursekb-be/internal/pkg/logger"
	"ai-coursekb-be/pkg/budget"
	"ai-coursekb-be/pkg/llm"
)

// FallbackChunkCount is how many leading session chunks substitute for a
// topic whose targeted retrieval came back empty. The result is still
// produced but marked degraded.
const FallbackChunkCount = 10

// Synthesizer turns a topic plus its supporting chunks into a knowledge
// payload via the generation endpoint. It owns prompt construction, budget
// truncation, and response parsing; retry policy lives in the Scheduler.
type Synthesizer struct {
	provider llm.Provider
	budgets  *budget.Manager
	logger   logger.ILogger
}

func NewSynthesizer(provider llm.Provider, budgets *budget.Manager, log logger.ILogger) *Synthesizer {
	return &Synthesizer{provider: provider, budgets: budgets, logger: log}
}

// ProposeTopics asks the model to name the distinct topics covered by the
// given chunks. Chunks beyond the model budget are dropped at chunk
// boundaries before prompting.
func (s *Synthesizer) ProposeTopics(ctx context.Context, modelID string, chunks []string) ([]string, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("propose topics: no chunks to analyze")
	}

	trunc := budget.TruncateChunks(chunks, s.promptBudget(modelID, topicProposalPrompt))
	prompt := fmt.Sprintf(topicProposalPrompt, trunc.Text)

	response, err := s.provider.Generate(ctx, prompt, llm.WithModel(modelID), llm.WithTemperature(0.2))
	if err != nil {
		return nil, fmt.Errorf("propose topics: %w", err)
	}

	titles, err := parseTopicList(response)
	if err != nil {
		return nil, fmt.Errorf("propose topics: %w", err)
	}

	s.logger.Info("extraction", "Proposed topics", map[string]interface{}{
		"model_id":        modelID,
		"chunks_included": trunc.Included,
		"topics":          len(titles),
	})
	return titles, nil
}

// Synthesize builds the knowledge payload for one topic. When the chunks do
// not all fit the model budget the payload is produced from the truncated
// prefix and marked degraded rather than failed.
func (s *Synthesizer) Synthesize(ctx context.Context, modelID, topicTitle string, chunks []string) (*KnowledgePayload, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("synthesize %q: no chunks supplied", topicTitle)
	}

	trunc := budget.TruncateChunks(chunks, s.promptBudget(modelID, knowledgeSynthesisPrompt))
	prompt := fmt.Sprintf(knowledgeSynthesisPrompt, topicTitle, trunc.Text)

	response, err := s.provider.Generate(ctx, prompt, llm.WithModel(modelID), llm.WithTemperature(0.3))
	if err != nil {
		return nil, fmt.Errorf("synthesize %q: %w", topicTitle, err)
	}

	payload, err := parseKnowledge(response)
	if err != nil {
		return nil, fmt.Errorf("synthesize %q: %w", topicTitle, err)
	}

	payload.QualityScore = scoreKnowledge(payload)
	if trunc.Included < len(chunks) || trunc.HardTruncated {
		payload.Degraded = true
		payload.DegradedReason = fmt.Sprintf("context truncated: %d of %d chunks fit the %s budget", trunc.Included, len(chunks), modelID)
	}
	return payload, nil
}

// promptBudget leaves headroom for the prompt template around the chunks,
// in runes, the unit TruncateChunks measures in.
func (s *Synthesizer) promptBudget(modelID, template string) int {
	max := s.budgets.MaxChars(modelID) - utf8.RuneCountInString(template)
	if max < 1 {
		return 1
	}
	return max
}

func parseTopicList(response string) ([]string, error) {
	var raw []string
	if err := json.Unmarshal([]byte(extractJSONArray(response)), &raw); err != nil {
		return nil, fmt.Errorf("topic list unmarshal failed: %w", err)
	}

	titles := make([]string, 0, len(raw))
	for _, title := range raw {
		title = strings.TrimSpace(title)
		if title != "" {
			titles = append(titles, title)
		}
	}
	if len(titles) == 0 {
		return nil, fmt.Errorf("model returned no usable topics")
	}
	return titles, nil
}

func parseKnowledge(response string) (*KnowledgePayload, error) {
	var payload KnowledgePayload
	if err := json.Unmarshal([]byte(extractJSONObject(response)), &payload); err != nil {
		return nil, fmt.Errorf("knowledge unmarshal failed: %w", err)
	}
	if strings.TrimSpace(payload.Summary) == "" {
		return nil, fmt.Errorf("model returned knowledge without a summary")
	}
	return &payload, nil
}

// scoreKnowledge is a deterministic completeness heuristic over the payload
// shape, not a judgment of prose quality.
func scoreKnowledge(payload *KnowledgePayload) float64 {
	score := 0.0
	if strings.TrimSpace(payload.Summary) != "" {
		score += 0.25
	}
	score += 0.25 * ratioOf(len(payload.Concepts), 4)
	score += 0.25 * ratioOf(len(payload.Objectives), 3)
	score += 0.25 * ratioOf(len(payload.QAPairs), 3)
	return score
}

func ratioOf(count, target int) float64 {
	if count >= target {
		return 1.0
	}
	return float64(count) / float64(target)
}

// extractJSONObject isolates the outermost JSON object from a model
// response, tolerating markdown fences and surrounding prose.
func extractJSONObject(response string) string {
	return sliceBetween(response, '{', '}')
}

func extractJSONArray(response string) string {
	return sliceBetween(response, '[', ']')
}

func sliceBetween(response string, open, close byte) string {
	startIdx := strings.IndexByte(response, open)
	endIdx := strings.LastIndexByte(response, close)

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return response
	}
	return response[startIdx : endIdx+1]
}
