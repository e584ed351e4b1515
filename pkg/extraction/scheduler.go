package extraction

import (
	"context"
	"time"

	"ai-coursekb-be/internal/pkg/logger"
	"ai-coursekb-be/pkg/budget"
	"ai-coursekb-be/pkg/llm"

	"golang.org/x/sync/errgroup"
)

// ProcessFunc synthesizes one item. Errors wrapping the llm sentinels are
// treated as transient and retried; anything else fails the item immediately.
// A returned payload with Degraded set counts as processed, not failed.
type ProcessFunc func(ctx context.Context, item Item) (*KnowledgePayload, error)

// SchedulerConfig tunes batching, retries, and outbound concurrency.
type SchedulerConfig struct {
	// MaxRetries bounds additional attempts after the first, per item,
	// for transient generation errors only.
	MaxRetries int

	// RetryBackoff is the base delay; attempt n waits n times this.
	RetryBackoff time.Duration

	// Concurrency caps batches in flight to bound pressure on the
	// generation endpoint.
	Concurrency int

	// AvgItemCost is the estimated prompt cost per item in characters;
	// batch size is the model's budget divided by it.
	AvgItemCost int
}

func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		MaxRetries:   2,
		RetryBackoff: 2 * time.Second,
		Concurrency:  3,
		AvgItemCost:  4000,
	}
}

// Scheduler partitions work items into model-sized batches and drives them
// concurrently against the generation endpoint. Batches are isolated: a
// failing batch never aborts its siblings, and results come back in original
// item order regardless of completion order.
type Scheduler struct {
	budgets *budget.Manager
	cfg     SchedulerConfig
	logger  logger.ILogger
}

func NewScheduler(budgets *budget.Manager, cfg SchedulerConfig, log logger.ILogger) *Scheduler {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.AvgItemCost <= 0 {
		cfg.AvgItemCost = DefaultSchedulerConfig().AvgItemCost
	}
	return &Scheduler{budgets: budgets, cfg: cfg, logger: log}
}

// BatchSize derives the batch size for a model from its token budget.
// Switching models changes throughput with no code changes.
func (s *Scheduler) BatchSize(modelID string) int {
	size := s.budgets.MaxChars(modelID) / s.cfg.AvgItemCost
	if size < 1 {
		return 1
	}
	return size
}

// Run processes items in batches sized for modelID. Cancellation is
// cooperative and checked between batches: in-flight batches run to
// completion, unstarted batches fail their items with a cancellation reason.
// The returned error is non-nil only for invalid input; item failures are
// reported inside the RunReport.
func (s *Scheduler) Run(ctx context.Context, items []Item, modelID string, process ProcessFunc) (*RunReport, error) {
	batchSize := s.BatchSize(modelID)
	report := &RunReport{
		Results:   make([]ItemResult, len(items)),
		BatchSize: batchSize,
	}
	if len(items) == 0 {
		return report, nil
	}

	batches := partition(items, batchSize)
	report.Batches = len(batches)

	s.logger.Info("extraction", "Batch run starting", map[string]interface{}{
		"items":      len(items),
		"batches":    len(batches),
		"batch_size": batchSize,
		"model_id":   modelID,
	})

	// The group bounds concurrency only; batch faults are captured per item
	// and must never cancel sibling batches, so workers always return nil.
	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)

	for i, batch := range batches {
		if ctx.Err() != nil {
			// Cancellation observed: no subsequent batch starts.
			for _, item := range batch {
				report.Results[item.Index] = ItemResult{
					Item:    item,
					Outcome: OutcomeFailed,
					Reason:  "run canceled before batch started",
					Err:     ctx.Err(),
				}
			}
			continue
		}

		batchIndex, batchItems := i, batch
		g.Go(func() error {
			// Re-checked here because SetLimit can hold a batch in queue
			// past a cancellation that arrived after the loop's check.
			if ctx.Err() != nil {
				for _, item := range batchItems {
					report.Results[item.Index] = ItemResult{
						Item:    item,
						Outcome: OutcomeFailed,
						Reason:  "run canceled before batch started",
						Err:     ctx.Err(),
					}
				}
				return nil
			}
			s.runBatch(ctx, batchIndex, batchItems, process, report.Results)
			return nil
		})
	}

	// Workers never error; Wait only synchronizes.
	_ = g.Wait()

	for _, res := range report.Results {
		switch res.Outcome {
		case OutcomeSucceeded, OutcomeDegraded:
			report.Processed++
		case OutcomeFailed:
			report.Failed = append(report.Failed, res)
		}
	}

	s.logger.Info("extraction", "Batch run finished", map[string]interface{}{
		"processed": report.Processed,
		"failed":    len(report.Failed),
		"total":     len(items),
	})
	return report, nil
}

// runBatch processes one batch sequentially. Each slot in results belongs to
// exactly one item, so concurrent batches write without locking.
func (s *Scheduler) runBatch(ctx context.Context, batchIndex int, items []Item, process ProcessFunc, results []ItemResult) {
	for _, item := range items {
		results[item.Index] = s.processWithRetry(ctx, batchIndex, item, process)
	}
}

func (s *Scheduler) processWithRetry(ctx context.Context, batchIndex int, item Item, process ProcessFunc) ItemResult {
	var lastErr error

	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			s.logger.Warn("extraction", "Retrying item after transient error", map[string]interface{}{
				"batch":   batchIndex,
				"topic":   item.Title,
				"attempt": attempt,
				"error":   lastErr.Error(),
			})
			select {
			case <-time.After(time.Duration(attempt) * s.cfg.RetryBackoff):
			case <-ctx.Done():
				return ItemResult{
					Item:    item,
					Outcome: OutcomeFailed,
					Reason:  "run canceled during retry backoff",
					Err:     ctx.Err(),
				}
			}
		}

		payload, err := process(ctx, item)
		if err == nil {
			res := ItemResult{Item: item, Outcome: OutcomeSucceeded, Knowledge: payload}
			if payload != nil && payload.Degraded {
				res.Outcome = OutcomeDegraded
				res.Reason = payload.DegradedReason
			}
			return res
		}

		lastErr = err
		if !llm.IsTransient(err) {
			// Structural fault: fatal for this item only, no retry.
			break
		}
	}

	return ItemResult{
		Item:    item,
		Outcome: OutcomeFailed,
		Reason:  lastErr.Error(),
		Err:     lastErr,
	}
}

func partition(items []Item, batchSize int) [][]Item {
	var batches [][]Item
	for start := 0; start < len(items); start += batchSize {
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}
