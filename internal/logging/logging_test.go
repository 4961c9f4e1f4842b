package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_TagsComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelDebug, "text", &buf)

	New("pipeline").Debug("analyzed")

	out := buf.String()
	if !strings.Contains(out, "component=pipeline") {
		t.Errorf("Expected component=pipeline in output, got: %s", out)
	}
	if !strings.Contains(out, "analyzed") {
		t.Errorf("Expected message in output, got: %s", out)
	}
}

func TestInit_JSON(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelInfo, "JSON", &buf)

	New("batch").Info("done", "pairs", 3)

	out := buf.String()
	if !strings.Contains(out, `"component":"batch"`) {
		t.Errorf("Expected JSON component field, got: %s", out)
	}
	if !strings.Contains(out, `"pairs":3`) {
		t.Errorf("Expected JSON attribute, got: %s", out)
	}
}

func TestInit_LevelGating(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelWarn, "text", &buf)

	logger := New("watch")
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Expected info message to be suppressed at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("Expected warn message to appear")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" DEBUG ", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.name); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
