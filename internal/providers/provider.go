// internal/providers/provider.go
// Package providers defines the backend abstraction used by the pipeline.
package providers

import "context"

// DefinitionProvider issues one request for a batch of words and returns the
// raw response text. The call blocks until the backend answers or the request
// times out; the pipeline treats any returned error as one consumed attempt.
type DefinitionProvider interface {
	Define(ctx context.Context, words []string) (string, error)
	Close() error
}
