package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestLevelTag(t *testing.T) {
	assert.Equal(t, "ERROR", levelTag(slog.LevelError))
	assert.Equal(t, "WARN ", levelTag(slog.LevelWarn))
	assert.Equal(t, "INFO ", levelTag(slog.LevelInfo))
	assert.Equal(t, "DEBUG", levelTag(slog.LevelDebug))
}

func TestConsoleHandler(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewHandler(Config{Level: "info", Format: "console", Output: &buf}))

	l.Debug("hidden")
	l.With("model", "city1.gltf").WithGroup("load").Info("model loaded", "nodes", 42)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	require.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "INFO  model loaded")
	assert.Contains(t, out, "model=city1.gltf")
	assert.Contains(t, out, "load.nodes=42")
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewHandler(Config{Level: "debug", Format: "json", Output: &buf}))
	l.Debug("tick", "n", 1)
	assert.Contains(t, buf.String(), `"msg":"tick"`)
}

func TestInitReplacesDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "text", Output: &buf})
	slog.Info("dropped")
	slog.Warn("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
	assert.Same(t, slog.Default(), L())
}

func TestSetLevelReachesExistingLoggers(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	l := Init(Config{Level: "info", Format: "console", Output: &buf})
	child := l.With("component", "assets")

	child.Debug("before")
	SetLevel("debug")
	child.Debug("after")
	SetLevel("error")
	l.Warn("muted")

	out := buf.String()
	assert.NotContains(t, out, "before")
	assert.Contains(t, out, "after")
	assert.NotContains(t, out, "muted")
}
