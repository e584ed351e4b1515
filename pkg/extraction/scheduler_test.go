package extraction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"ai-coursekb-be/pkg/budget"
	"ai-coursekb-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func makeItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{Index: i, Title: fmt.Sprintf("topic-%d", i)}
	}
	return items
}

func testScheduler(t *testing.T, cfg SchedulerConfig) *Scheduler {
	t.Helper()
	budgets := budget.NewManager(map[string]int{"small-model": 20000}, 20000)
	return NewScheduler(budgets, cfg, nopLogger{})
}

func TestBatchSizeFromBudget(t *testing.T) {
	tests := []struct {
		name    string
		limits  map[string]int
		avgCost int
		modelID string
		want    int
	}{
		{"exact division", map[string]int{"m": 20000}, 4000, "m", 5},
		{"floor division", map[string]int{"m": 23999}, 4000, "m", 5},
		{"tiny budget clamps to one", map[string]int{"m": 100}, 4000, "m", 1},
		{"unknown model uses fallback", map[string]int{"m": 20000}, 4000, "other", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budgets := budget.NewManager(tt.limits, 24000)
			cfg := DefaultSchedulerConfig()
			cfg.AvgItemCost = tt.avgCost
			s := NewScheduler(budgets, cfg, nopLogger{})
			assert.Equal(t, tt.want, s.BatchSize(tt.modelID))
		})
	}
}

func TestRunSplitsItemsIntoBatches(t *testing.T) {
	cfg := DefaultSchedulerConfig()
	cfg.Concurrency = 1
	s := testScheduler(t, cfg)

	report, err := s.Run(context.Background(), makeItems(29), "small-model",
		func(ctx context.Context, item Item) (*KnowledgePayload, error) {
			return &KnowledgePayload{Summary: item.Title}, nil
		})
	require.NoError(t, err)

	assert.Equal(t, 5, report.BatchSize)
	assert.Equal(t, 6, report.Batches)
	assert.Equal(t, 29, report.Processed)
	assert.Empty(t, report.Failed)
}

func TestRunIsolatesFailedBatch(t *testing.T) {
	cfg := DefaultSchedulerConfig()
	cfg.MaxRetries = 0
	s := testScheduler(t, cfg)

	// 29 items at batch size 5: batch 3 covers indices 10 through 14.
	// A structural fault there must not touch the other batches.
	outage := errors.New("model returned malformed response")
	report, err := s.Run(context.Background(), makeItems(29), "small-model",
		func(ctx context.Context, item Item) (*KnowledgePayload, error) {
			if item.Index >= 10 && item.Index <= 14 {
				return nil, outage
			}
			return &KnowledgePayload{Summary: item.Title}, nil
		})
	require.NoError(t, err)

	assert.Equal(t, 24, report.Processed)
	require.Len(t, report.Failed, 5)
	for i, res := range report.Failed {
		assert.Equal(t, 10+i, res.Item.Index)
		assert.Equal(t, OutcomeFailed, res.Outcome)
	}
}

func TestRunPreservesItemOrder(t *testing.T) {
	cfg := DefaultSchedulerConfig()
	cfg.Concurrency = 4
	s := testScheduler(t, cfg)

	report, err := s.Run(context.Background(), makeItems(17), "small-model",
		func(ctx context.Context, item Item) (*KnowledgePayload, error) {
			// Reverse-ish delays so batches finish out of order.
			time.Sleep(time.Duration(17-item.Index) * time.Millisecond)
			return &KnowledgePayload{Summary: item.Title}, nil
		})
	require.NoError(t, err)

	for i, res := range report.Results {
		assert.Equal(t, i, res.Item.Index)
		require.NotNil(t, res.Knowledge)
		assert.Equal(t, fmt.Sprintf("topic-%d", i), res.Knowledge.Summary)
	}
}

func TestRunRetriesTransientErrors(t *testing.T) {
	cfg := DefaultSchedulerConfig()
	cfg.MaxRetries = 2
	cfg.RetryBackoff = time.Millisecond
	s := testScheduler(t, cfg)

	var mu sync.Mutex
	attempts := map[int]int{}

	report, err := s.Run(context.Background(), makeItems(3), "small-model",
		func(ctx context.Context, item Item) (*KnowledgePayload, error) {
			mu.Lock()
			attempts[item.Index]++
			n := attempts[item.Index]
			mu.Unlock()
			if item.Index == 1 && n < 3 {
				return nil, fmt.Errorf("generate: %w", llm.ErrRateLimited)
			}
			return &KnowledgePayload{Summary: item.Title}, nil
		})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Processed)
	assert.Equal(t, 3, attempts[1])
	assert.Equal(t, 1, attempts[0])
}

func TestRunDoesNotRetryContextTooLarge(t *testing.T) {
	cfg := DefaultSchedulerConfig()
	cfg.RetryBackoff = time.Millisecond
	s := testScheduler(t, cfg)

	var mu sync.Mutex
	calls := 0

	report, err := s.Run(context.Background(), makeItems(1), "small-model",
		func(ctx context.Context, item Item) (*KnowledgePayload, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			return nil, fmt.Errorf("generate: %w", llm.ErrContextTooLarge)
		})
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	require.Len(t, report.Failed, 1)
	assert.ErrorIs(t, report.Failed[0].Err, llm.ErrContextTooLarge)
}

func TestRunCancellationSkipsRemainingBatches(t *testing.T) {
	cfg := DefaultSchedulerConfig()
	cfg.Concurrency = 1
	s := testScheduler(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	report, err := s.Run(ctx, makeItems(29), "small-model",
		func(ctx context.Context, item Item) (*KnowledgePayload, error) {
			if item.Index == 4 {
				// Last item of the first batch cancels the run.
				cancel()
			}
			return &KnowledgePayload{Summary: item.Title}, nil
		})
	require.NoError(t, err)

	// The batch in flight completes; everything after it is marked failed
	// without ever invoking the process function.
	assert.Equal(t, 5, report.Processed)
	assert.Len(t, report.Failed, 24)
	for _, res := range report.Failed {
		assert.ErrorIs(t, res.Err, context.Canceled)
	}
}

func TestRunDegradedCountsAsProcessed(t *testing.T) {
	s := testScheduler(t, DefaultSchedulerConfig())

	report, err := s.Run(context.Background(), makeItems(2), "small-model",
		func(ctx context.Context, item Item) (*KnowledgePayload, error) {
			if item.Index == 0 {
				return &KnowledgePayload{
					Summary:        "partial",
					Degraded:       true,
					DegradedReason: "context truncated to fit model budget",
				}, nil
			}
			return &KnowledgePayload{Summary: "full"}, nil
		})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Processed)
	assert.Empty(t, report.Failed)
	assert.Equal(t, OutcomeDegraded, report.Results[0].Outcome)
}

func TestRunEmptyInput(t *testing.T) {
	s := testScheduler(t, DefaultSchedulerConfig())
	report, err := s.Run(context.Background(), nil, "small-model",
		func(ctx context.Context, item Item) (*KnowledgePayload, error) {
			t.Fatal("process must not be called")
			return nil, nil
		})
	require.NoError(t, err)
	assert.Zero(t, report.Processed)
	assert.Zero(t, report.Batches)
}
