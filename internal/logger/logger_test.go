package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSONIncludesService(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "json")

	log.Info().Str("component", "test").Msg("hello")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if line["service"] != ServiceName {
		t.Fatalf("expected service field, got %v", line["service"])
	}
	if line["message"] != "hello" || line["component"] != "test" {
		t.Fatalf("unexpected log line: %v", line)
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", "json")

	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info line should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn line missing: %s", out)
	}
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "verbose", "json")

	log.Debug().Msg("debug")
	log.Info().Msg("info")

	out := buf.String()
	if strings.Contains(out, `"debug"`) && strings.Contains(out, `"message":"debug"`) {
		t.Fatalf("debug should be filtered: %s", out)
	}
	if !strings.Contains(out, `"message":"info"`) {
		t.Fatalf("info line missing: %s", out)
	}
}
