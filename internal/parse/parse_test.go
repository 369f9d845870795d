package parse

import (
	"strings"
	"testing"
)

func TestNDJSONValidLines(t *testing.T) {
	t.Parallel()

	content := `{"word":"hablar","definition":"to speak"}
{"word":"comer","definition":"to eat"}`

	resp := NDJSON(content)
	if len(resp.Anomalies) != 0 {
		t.Fatalf("unexpected anomalies: %v", resp.Anomalies)
	}
	if len(resp.Definitions) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(resp.Definitions))
	}
	if resp.Definitions["hablar"] != "to speak" {
		t.Fatalf("unexpected definition: %q", resp.Definitions["hablar"])
	}
}

func TestNDJSONMalformedLineDiscarded(t *testing.T) {
	t.Parallel()

	content := `{"word":"hablar","definition":"to speak"}
{"word":"comer","definition":"to ea`

	resp := NDJSON(content)
	if len(resp.Definitions) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(resp.Definitions))
	}
	if _, ok := resp.Definitions["comer"]; ok {
		t.Fatal("truncated line should not produce a definition")
	}
	if len(resp.Anomalies) != 1 || !strings.Contains(resp.Anomalies[0], "line 2") {
		t.Fatalf("expected one line-2 anomaly, got %v", resp.Anomalies)
	}
}

func TestNDJSONDuplicateKeepsFirst(t *testing.T) {
	t.Parallel()

	content := `{"word":"hablar","definition":"to speak"}
{"word":"hablar","definition":"to talk"}`

	resp := NDJSON(content)
	if resp.Definitions["hablar"] != "to speak" {
		t.Fatalf("expected first definition kept, got %q", resp.Definitions["hablar"])
	}
	if len(resp.Anomalies) != 1 || !strings.Contains(resp.Anomalies[0], "duplicate") {
		t.Fatalf("expected duplicate anomaly, got %v", resp.Anomalies)
	}
}

func TestNDJSONStructuralViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
	}{
		{name: "not an object", line: `["hablar","to speak"]`},
		{name: "missing definition", line: `{"word":"hablar"}`},
		{name: "missing word", line: `{"definition":"to speak"}`},
		{name: "extra key", line: `{"word":"hablar","definition":"to speak","note":"x"}`},
		{name: "numeric definition", line: `{"word":"hablar","definition":42}`},
		{name: "empty word", line: `{"word":"","definition":"to speak"}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp := NDJSON(tt.line)
			if len(resp.Definitions) != 0 {
				t.Fatalf("expected no definitions, got %v", resp.Definitions)
			}
			if len(resp.Anomalies) != 1 {
				t.Fatalf("expected one anomaly, got %v", resp.Anomalies)
			}
		})
	}
}

func TestNDJSONEmptyDefinitionTreatedAsAbsent(t *testing.T) {
	t.Parallel()

	resp := NDJSON(`{"word":"hablar","definition":"   "}`)
	if len(resp.Definitions) != 0 {
		t.Fatalf("whitespace definition should be absent, got %v", resp.Definitions)
	}
	if len(resp.Anomalies) != 1 || !strings.Contains(resp.Anomalies[0], "empty definition") {
		t.Fatalf("expected empty-definition anomaly, got %v", resp.Anomalies)
	}
}

func TestNDJSONBlankLinesIgnored(t *testing.T) {
	t.Parallel()

	content := "\n\n{\"word\":\"hablar\",\"definition\":\"to speak\"}\n\n"
	resp := NDJSON(content)
	if len(resp.Definitions) != 1 || len(resp.Anomalies) != 0 {
		t.Fatalf("unexpected result: %+v", resp)
	}
}

func TestNDJSONEmptyContent(t *testing.T) {
	t.Parallel()

	resp := NDJSON("")
	if len(resp.Definitions) != 0 || len(resp.Anomalies) != 0 {
		t.Fatalf("unexpected result: %+v", resp)
	}
}
