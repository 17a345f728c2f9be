package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "text")

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry written at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn entry missing: %s", out)
	}
}

func TestWithSession(t *testing.T) {
	ctx, id := WithSession(context.Background())

	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("session id %q is not a UUID: %v", id, err)
	}
	if got := SessionID(ctx); got != id {
		t.Errorf("SessionID() = %q, want %q", got, id)
	}
	if got := SessionID(context.Background()); got != "" {
		t.Errorf("SessionID(empty ctx) = %q, want empty", got)
	}
}

func TestWithFields_IncludesSession(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	Setup(&buf, "debug", "json")
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx, id := WithSession(context.Background())
	WithFields(ctx, "source", "input.txt").Info("import finished")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["session_id"] != id {
		t.Errorf("session_id = %v, want %s", entry["session_id"], id)
	}
	if entry["source"] != "input.txt" {
		t.Errorf("source = %v, want input.txt", entry["source"])
	}
}
