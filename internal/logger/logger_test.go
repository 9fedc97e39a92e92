package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FormatFollowsEnvironment(t *testing.T) {
	tests := []struct {
		env      string
		wantJSON bool
	}{
		{env: "production", wantJSON: true},
		{env: "development", wantJSON: false},
		{env: "staging", wantJSON: false},
		{env: "", wantJSON: false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(Config{Writer: &buf, Environment: tt.env, Level: slog.LevelInfo})
			l.Info("scripture resolved", "title", "John 3:16 (NIV)")

			var decoded map[string]any
			isJSON := json.Unmarshal(buf.Bytes(), &decoded) == nil
			assert.Equal(t, tt.wantJSON, isJSON, buf.String())
			if isJSON {
				assert.Equal(t, "John 3:16 (NIV)", decoded["title"])
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"trace":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestPrettyHandler_Line(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, slog.LevelDebug, false)

	r := slog.NewRecord(time.Date(2024, 8, 6, 15, 4, 5, 0, time.UTC), slog.LevelWarn, "provider failed", 0)
	r.AddAttrs(slog.String("title", "Genesis 1 (KJV)"), slog.Int("status", 503))
	require.NoError(t, h.Handle(context.Background(), r))

	out := buf.String()
	assert.Contains(t, out, "15:04:05")
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "provider failed")
	assert.Contains(t, out, `title="Genesis 1 (KJV)"`)
	assert.Contains(t, out, "status=503")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestPrettyHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewPrettyHandler(&buf, slog.LevelWarn, false))

	l.Info("hidden")
	l.Debug("hidden")
	l.Error("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "ERR")

	assert.True(t, NewPrettyHandler(&buf, nil, false).Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, NewPrettyHandler(&buf, nil, false).Enabled(context.Background(), slog.LevelDebug))
}

func TestPrettyHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewPrettyHandler(&buf, nil, false)).
		With("component", "scripture").
		WithGroup("req").
		With("op", "chapter")

	l.Info("fetch", "path", "/get-chapter/KJV/1/1/")

	out := buf.String()
	assert.Contains(t, out, "component=scripture")
	assert.Contains(t, out, "req.op=chapter")
	assert.Contains(t, out, "req.path=/get-chapter/KJV/1/1/")
}

func TestPrettyHandler_WithAttrsDoesNotShare(t *testing.T) {
	var buf bytes.Buffer
	base := NewPrettyHandler(&buf, nil, false)
	a := slog.New(base.WithAttrs([]slog.Attr{slog.String("who", "a")}))
	b := slog.New(base.WithAttrs([]slog.Attr{slog.String("who", "b")}))

	a.Info("one")
	b.Info("two")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "who=a")
	assert.NotContains(t, lines[0], "who=b")
	assert.Contains(t, lines[1], "who=b")
}

func TestPrettyHandler_Source(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Environment: "development", AddSource: true})
	l.Info("with source")
	assert.Contains(t, buf.String(), "logger_test.go:")
}
