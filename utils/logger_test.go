package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, zerolog.InfoLevel)

	l.Debug("hidden %d", 1)
	l.Info("loaded %d facilities", 5)
	l.Warn("fallback to %s", "builtin")

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0]["message"] != "loaded 5 facilities" || lines[0]["level"] != "info" {
		t.Errorf("first line: got %v", lines[0])
	}
	if lines[1]["level"] != "warn" {
		t.Errorf("second line level: got %v, want warn", lines[1]["level"])
	}
}

func TestLoggerWithLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, zerolog.InfoLevel)

	l.WithLevel("debug").Debug("now visible")
	l.WithLevel("error").Warn("filtered")
	l.WithLevel("nonsense").Info("unchanged level")

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %v", len(lines), lines)
	}
	if lines[0]["message"] != "now visible" || lines[1]["message"] != "unchanged level" {
		t.Errorf("got %v", lines)
	}
}

func TestLoggerFlowEvent(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, zerolog.InfoLevel).With("request_id", "req-1")

	l.Flow("nearby").Int("returned", 3).Msg("flow complete")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	got := lines[0]
	if got["flow"] != "nearby" || got["request_id"] != "req-1" || got["returned"] != float64(3) {
		t.Errorf("flow event: got %v", got)
	}
}

func TestLoggerFromContext(t *testing.T) {
	fallback := NewNopLogger()
	if LoggerFrom(context.Background(), fallback) != fallback {
		t.Error("empty context should yield the fallback")
	}

	l := NewNopLogger().With("request_id", "x")
	ctx := ContextWithLogger(context.Background(), l)
	if LoggerFrom(ctx, fallback) != l {
		t.Error("context logger should win over the fallback")
	}
}
