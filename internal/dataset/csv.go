// internal/dataset/csv.go
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// definitionColumns are the header names accepted for the raw upstream
// definition, checked in order.
var definitionColumns = []string{"duolingo_definition", "duolingo", "definition", "duo_definition"}

// outputHeader is the fixed column layout of the enhanced CSV.
var outputHeader = []string{"word", "duolingo_definition", "model_definition", "cleaned_definition"}

// ReadCSV ingests vocabulary records from tabular input. The header must
// contain a "word" column; the definition column is detected from a list of
// accepted names and may be absent. Rows with an empty word are skipped.
func ReadCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	wordIdx := -1
	defIdx := -1
	for i, name := range header {
		if strings.TrimSpace(name) == "word" {
			wordIdx = i
			break
		}
	}
	if wordIdx < 0 {
		return nil, fmt.Errorf(`input must contain a "word" column`)
	}
	for _, candidate := range definitionColumns {
		for i, name := range header {
			if strings.TrimSpace(name) == candidate {
				defIdx = i
				break
			}
		}
		if defIdx >= 0 {
			break
		}
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		word := ""
		if wordIdx < len(row) {
			word = strings.TrimSpace(row[wordIdx])
		}
		if word == "" {
			continue
		}
		definition := ""
		if defIdx >= 0 && defIdx < len(row) {
			definition = strings.TrimSpace(row[defIdx])
		}
		records = append(records, Record{Word: word, OriginalDefinition: definition})
	}
	return records, nil
}

// ReadCSVFile ingests vocabulary records from a file path.
func ReadCSVFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %q: %w", path, err)
	}
	defer file.Close()
	return ReadCSV(file)
}

// WriteCSV writes the enhanced records with all provenance columns, in the
// given order.
func WriteCSV(w io.Writer, records []Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(outputHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{r.Word, r.OriginalDefinition, r.ModelDefinition, r.CleanedDefinition}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row for %q: %w", r.Word, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes the enhanced records to a file path.
func WriteCSVFile(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output %q: %w", path, err)
	}
	if err := WriteCSV(file, records); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
