package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "WARN")

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected INFO to be filtered, got %s", buf.String())
	}

	logger.Warn("kept", "key", "value")
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["msg"] != "kept" || rec["key"] != "value" {
		t.Errorf("unexpected record: %v", rec)
	}
	if _, ok := rec["stacktrace"]; ok {
		t.Error("WARN record should not carry a stacktrace")
	}
}

func TestNew_ErrorCarriesStacktrace(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "INFO").With("component", "test").Error("boom")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s, _ := rec["stacktrace"].(string); s == "" {
		t.Error("expected stacktrace on ERROR record")
	}
	if rec["component"] != "test" {
		t.Errorf("expected component attr to survive WithAttrs, got %v", rec["component"])
	}
}
