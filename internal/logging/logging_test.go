package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" DEBUG ", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")
	logger.Info("score computed", "verdict", "go")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "score computed", rec["msg"])
	assert.Equal(t, "go", rec["verdict"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "debug", "text").Debug("hello", "k", 1)
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "k=1")
}

func TestNewUnknownFormatFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info", "xml").Info("x")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "cli")
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestCLIHandlerColours(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCLIHandler(&buf, slog.LevelInfo))

	logger.Info("fine")
	assert.Contains(t, buf.String(), colorGreen+"fine"+colorReset)

	buf.Reset()
	logger.Error("broken", "error", "boom")
	assert.Contains(t, buf.String(), colorRed+"broken: error=boom"+colorReset)
}

func TestCLIHandlerWithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCLIHandler(&buf, slog.LevelInfo)).With("shape", "flat").WithGroup("envelope")

	logger.Info("parsed", "factors", 2)
	assert.Contains(t, buf.String(), "[envelope] parsed: shape=flat factors=2")
}
