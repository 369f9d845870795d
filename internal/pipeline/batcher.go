// internal/pipeline/batcher.go
package pipeline

import (
	"errors"
	"fmt"

	"cardsmith/internal/dataset"
)

// ErrConfig marks configuration values the pipeline cannot run with. It is
// the only error class that aborts a run before any batch is processed.
var ErrConfig = errors.New("invalid pipeline configuration")

// Batch is a bounded contiguous group of records processed in one request
// cycle. Start is the origin index of the first record in the full input,
// so results merge back by position rather than by word text.
type Batch struct {
	Start   int
	Records []dataset.Record
}

// MakeBatches partitions records into contiguous, non-overlapping batches of
// at most size records, preserving input order. N records yield ceil(N/size)
// batches; none is empty.
func MakeBatches(records []dataset.Record, size int) ([]Batch, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: batch size must be > 0, got %d", ErrConfig, size)
	}
	if len(records) == 0 {
		return nil, nil
	}
	batches := make([]Batch, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, Batch{Start: start, Records: records[start:end]})
	}
	return batches, nil
}

// chunkWords splits words into groups of at most size, preserving order.
// Used for retry rounds, which re-request the unresolved remainder in
// smaller pieces.
func chunkWords(words []string, size int) [][]string {
	if size <= 0 || len(words) == 0 {
		return nil
	}
	var chunks [][]string
	for start := 0; start < len(words); start += size {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, words[start:end])
	}
	return chunks
}
