package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testStringer string

func (s testStringer) String() string { return string(s) }

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "cardsmith.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	LogEvent("hello %s", "world")
	LogRequest("out", "localhost", "test-model", "payload-body")
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if !strings.Contains(content, "payload=payload-body") {
		t.Fatalf("expected LogRequest content, got: %s", content)
	}
}

func TestBuildRequestMessageDefaults(t *testing.T) {
	msg := buildRequestMessage(" out ", " ", "", map[string]any{"ok": true})
	if !strings.Contains(msg, "[OUT]") {
		t.Fatalf("expected uppercased direction, got: %s", msg)
	}
	if !strings.Contains(msg, "host=unknown") {
		t.Fatalf("expected default host, got: %s", msg)
	}
	if !strings.Contains(msg, "model=unknown") {
		t.Fatalf("expected default model, got: %s", msg)
	}
	if !strings.Contains(msg, `payload={"ok":true}`) {
		t.Fatalf("expected JSON payload, got: %s", msg)
	}
}

func TestFormatPayloadVariants(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    string
	}{
		{name: "nil", payload: nil, want: "null"},
		{name: "blank string", payload: "   ", want: `""`},
		{name: "string", payload: "text", want: "text"},
		{name: "empty bytes", payload: []byte{}, want: "[]"},
		{name: "bytes", payload: []byte("raw"), want: "raw"},
		{name: "stringer", payload: testStringer("str"), want: "str"},
		{name: "struct", payload: struct {
			A int `json:"a"`
		}{A: 1}, want: `{"a":1}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := formatPayload(tt.payload); got != tt.want {
				t.Fatalf("formatPayload(%v)=%q want %q", tt.payload, got, tt.want)
			}
		})
	}
}
