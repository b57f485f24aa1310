package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/ppiankov/wordcloud/internal/model"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("rendered", "terms", 3)
	logger.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["level"] != "info" {
		t.Errorf("expected lowercase level, got %v", entry["level"])
	}
	if entry["msg"] != "rendered" {
		t.Errorf("unexpected msg %v", entry["msg"])
	}
	if entry["terms"] != float64(3) {
		t.Errorf("unexpected terms attr %v", entry["terms"])
	}
}

func TestNew_ConsoleDebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("tokenized")
	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Errorf("expected source location in debug output, got %q", buf.String())
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestNewFromConfig_VerboseForcesDebug(t *testing.T) {
	logger, err := NewFromConfig(model.LogConfig{Level: "error", Format: "console"}, true)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug level when verbose")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
