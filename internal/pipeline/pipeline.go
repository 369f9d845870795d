// internal/pipeline/pipeline.go
// Package pipeline partitions vocabulary records into batches, drives each
// batch through the backend with validation and retries, and reassembles the
// results in input order.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cardsmith/internal/dataset"
	"cardsmith/internal/providers"
)

// Config is the immutable pipeline configuration snapshot. All values are
// assumed final: the runner never consults ambient state.
type Config struct {
	BatchSize      int
	RetryBatchSize int
	RetryAttempts  int
	Concurrency    int
	SleepBetween   time.Duration
	CleanupEnabled bool
}

// Progress is invoked after each batch completes. With Concurrency > 1 it may
// be called from multiple goroutines.
type Progress func(batch, totalBatches, resolved, size int)

// Summary aggregates the outcome of a full run.
type Summary struct {
	Total      int
	Resolved   int
	Unresolved int
	Batches    int
}

// Runner is the top-level pipeline driver.
type Runner struct {
	provider providers.DefinitionProvider
	cfg      Config
	progress Progress
}

// NewRunner constructs a Runner. The provider is the sole blocking
// collaborator; cfg must have been validated by the caller beyond the batch
// size checks done here.
func NewRunner(provider providers.DefinitionProvider, cfg Config, progress Progress) *Runner {
	if cfg.RetryBatchSize <= 0 || cfg.RetryBatchSize > cfg.BatchSize {
		cfg.RetryBatchSize = cfg.BatchSize
	}
	if cfg.RetryAttempts < 0 {
		cfg.RetryAttempts = 0
	}
	return &Runner{provider: provider, cfg: cfg, progress: progress}
}

// Run processes all records and returns an enhanced slice of the same length
// and order. Per-word and per-batch failures are absorbed; the only errors
// returned are configuration problems detected before any batch is sent.
func (r *Runner) Run(ctx context.Context, records []dataset.Record) ([]dataset.Record, Summary, error) {
	batches, err := MakeBatches(records, r.cfg.BatchSize)
	if err != nil {
		return nil, Summary{}, err
	}

	out := make([]dataset.Record, len(records))
	resolvedPerBatch := make([]int, len(batches))

	process := func(i int) {
		outcome := r.runBatch(ctx, i, batches[i])
		copy(out[batches[i].Start:], outcome.records)
		resolvedPerBatch[i] = outcome.resolved
		if r.progress != nil {
			r.progress(i+1, len(batches), outcome.resolved, len(batches[i].Records))
		}
	}

	workers := r.cfg.Concurrency
	if workers <= 1 {
		for i := range batches {
			if ctx.Err() != nil {
				return nil, Summary{}, fmt.Errorf("run cancelled: %w", ctx.Err())
			}
			process(i)
		}
		if ctx.Err() != nil {
			return nil, Summary{}, fmt.Errorf("run cancelled: %w", ctx.Err())
		}
	} else {
		// Each batch owns a disjoint index range of out, so workers need no
		// locking beyond the jobs channel.
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					process(i)
				}
			}()
		}
		for i := range batches {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
		if ctx.Err() != nil {
			return nil, Summary{}, fmt.Errorf("run cancelled: %w", ctx.Err())
		}
	}

	summary := Summary{Total: len(records), Batches: len(batches)}
	for _, n := range resolvedPerBatch {
		summary.Resolved += n
	}
	summary.Unresolved = summary.Total - summary.Resolved
	return out, summary, nil
}
