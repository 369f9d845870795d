// internal/dataset/record.go
// Package dataset defines the vocabulary record model and its CSV
// serialization.
package dataset

// Record is one vocabulary entry carried through the pipeline. The original
// definition is immutable after ingest; the model and cleaned definitions are
// attached by the pipeline and stay empty for words that never resolved.
type Record struct {
	Word               string
	OriginalDefinition string
	ModelDefinition    string
	CleanedDefinition  string
}

// Resolved reports whether the pipeline attached a model definition.
func (r Record) Resolved() bool {
	return r.ModelDefinition != ""
}

// Words returns the word column of a record slice, in order.
func Words(records []Record) []string {
	words := make([]string, len(records))
	for i, r := range records {
		words[i] = r.Word
	}
	return words
}
