// internal/pipeline/orchestrator.go
package pipeline

import (
	"context"
	"time"

	"cardsmith/internal/cleanup"
	"cardsmith/internal/dataset"
	"cardsmith/internal/logging"
	"cardsmith/internal/parse"
)

// batchOutcome is the result of driving one batch to completion or partial
// completion.
type batchOutcome struct {
	records    []dataset.Record
	resolved   int
	unresolved []string
}

// runBatch drives a single batch: request, parse, validate, then retry the
// unresolved remainder in shrinking rounds until the attempt budget runs out.
// Backend failures and format failures both consume one round. Words that
// never resolve keep empty enhancement fields; runBatch never fails.
func (r *Runner) runBatch(ctx context.Context, index int, batch Batch) batchOutcome {
	resolved := map[string]string{}
	pending := pendingWords(batch.Records, resolved)

	if len(pending) > 0 {
		r.requestRound(ctx, [][]string{pending}, resolved, false)
		pending = pendingWords(batch.Records, resolved)
	}

	for round := 1; round <= r.cfg.RetryAttempts && len(pending) > 0; round++ {
		if ctx.Err() != nil {
			break
		}
		logging.LogEvent("batch %d: retry round %d/%d for %d words", index+1, round, r.cfg.RetryAttempts, len(pending))
		r.requestRound(ctx, chunkWords(pending, r.cfg.RetryBatchSize), resolved, true)
		pending = pendingWords(batch.Records, resolved)
	}

	out := batchOutcome{records: make([]dataset.Record, len(batch.Records))}
	for i, rec := range batch.Records {
		enhanced := rec
		if definition, ok := resolved[rec.Word]; ok {
			enhanced.ModelDefinition = definition
			if r.cfg.CleanupEnabled {
				enhanced.CleanedDefinition = cleanup.Clean(definition)
			} else {
				enhanced.CleanedDefinition = definition
			}
			out.resolved++
		}
		out.records[i] = enhanced
	}
	out.unresolved = pending
	for _, word := range pending {
		logging.LogEvent("improvement failed: %q unresolved after %d retry rounds", word, r.cfg.RetryAttempts)
	}
	return out
}

// requestRound issues one request per chunk and folds validated definitions
// into resolved. Existing entries are never overwritten: retry responses
// cannot introduce a second resolution for a word. Retry rounds pause before
// every request, including the first chunk; the initial attempt never pauses.
func (r *Runner) requestRound(ctx context.Context, chunks [][]string, resolved map[string]string, pauseBefore bool) {
	for i, chunk := range chunks {
		if ctx.Err() != nil {
			return
		}
		if r.cfg.SleepBetween > 0 && (pauseBefore || i > 0) {
			sleepCtx(ctx, r.cfg.SleepBetween)
		}
		content, err := r.provider.Define(ctx, chunk)
		if err != nil {
			logging.LogEvent("backend request for %d words failed: %v", len(chunk), err)
			continue
		}
		response := parse.NDJSON(content)
		for _, anomaly := range response.Anomalies {
			logging.LogEvent("response anomaly: %s", anomaly)
		}
		for word, definition := range response.Definitions {
			if _, exists := resolved[word]; exists {
				continue
			}
			resolved[word] = definition
		}
	}
}

// pendingWords returns the words of a batch with no resolution yet, in batch
// order and without duplicates.
func pendingWords(records []dataset.Record, resolved map[string]string) []string {
	seen := map[string]bool{}
	var pending []string
	for _, rec := range records {
		if seen[rec.Word] {
			continue
		}
		seen[rec.Word] = true
		if _, ok := resolved[rec.Word]; ok {
			continue
		}
		pending = append(pending, rec.Word)
	}
	return pending
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
