// internal/parse/parse.go
// Package parse decodes newline-delimited model output into word/definition
// pairs, discarding anything that fails structural validation.
package parse

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"cardsmith/internal/util"
)

// lineSchema is the shape every response line must satisfy: exactly a word
// and a definition, both strings.
const lineSchema = `{
	"type": "object",
	"required": ["word", "definition"],
	"properties": {
		"word": {"type": "string", "minLength": 1},
		"definition": {"type": "string"}
	},
	"additionalProperties": false
}`

var schemaLoader = gojsonschema.NewStringLoader(lineSchema)

// Response holds the validated pairs extracted from one raw model output.
// Definitions only contains non-empty definitions; every rejected or ignored
// line is described in Anomalies. A word absent from Definitions is retry
// material for the caller.
type Response struct {
	Definitions map[string]string
	Anomalies   []string
}

type line struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// NDJSON parses raw model output one line at a time. Malformed lines are
// discarded with a recorded anomaly, never an error: the model output is
// untrusted input and a bad line only means its word stays unresolved.
// Duplicate words keep their first definition.
func NDJSON(content string) Response {
	resp := Response{Definitions: map[string]string{}}

	lineNo := 0
	for _, raw := range strings.Split(content, "\n") {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		lineNo++

		result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(text))
		if err != nil {
			resp.Anomalies = append(resp.Anomalies, fmt.Sprintf("line %d: invalid JSON: %s", lineNo, snippet(text)))
			continue
		}
		if !result.Valid() {
			var details []string
			for _, desc := range result.Errors() {
				details = append(details, desc.String())
			}
			resp.Anomalies = append(resp.Anomalies, fmt.Sprintf("line %d: schema violation (%s): %s", lineNo, strings.Join(details, "; "), snippet(text)))
			continue
		}

		var entry line
		if err := json.Unmarshal([]byte(text), &entry); err != nil {
			resp.Anomalies = append(resp.Anomalies, fmt.Sprintf("line %d: decode: %v", lineNo, err))
			continue
		}
		if strings.TrimSpace(entry.Definition) == "" {
			resp.Anomalies = append(resp.Anomalies, fmt.Sprintf("line %d: empty definition for %q", lineNo, entry.Word))
			continue
		}
		if _, seen := resp.Definitions[entry.Word]; seen {
			resp.Anomalies = append(resp.Anomalies, fmt.Sprintf("line %d: duplicate word %q, keeping first definition", lineNo, entry.Word))
			continue
		}
		resp.Definitions[entry.Word] = entry.Definition
	}

	return resp
}

func snippet(text string) string {
	return util.TruncateRunes(text, 160)
}
