package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	FormatJSON = "json"
	FormatText = "text"
	FormatCLI  = "cli"
)

const (
	colorGreen = "\033[32m"
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
)

// New builds a logger writing to w in the given format ("json", "text" or "cli").
// Unknown formats fall back to JSON.
func New(w io.Writer, level, format string) *slog.Logger {
	lev := ParseLevel(level)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatText:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lev}))
	case FormatCLI:
		return slog.New(NewCLIHandler(w, lev))
	default:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lev}))
	}
}

// ParseLevel converts a string log level to slog.Level.
// Defaults to slog.LevelInfo for unrecognized strings.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// CLIHandler prints one coloured line per record, for terminal use.
type CLIHandler struct {
	writer io.Writer
	level  slog.Level
	prefix string
	attrs  []slog.Attr
}

func NewCLIHandler(w io.Writer, level slog.Level) *CLIHandler {
	return &CLIHandler{writer: w, level: level}
}

func (h *CLIHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *CLIHandler) Handle(_ context.Context, r slog.Record) error {
	msg := r.Message
	if h.prefix != "" {
		msg = "[" + h.prefix + "] " + msg
	}

	var attrs []string
	for _, a := range h.attrs {
		attrs = append(attrs, fmt.Sprintf("%s=%v", a.Key, a.Value))
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, fmt.Sprintf("%s=%v", a.Key, a.Value))
		return true
	})
	if len(attrs) > 0 {
		msg = msg + ": " + strings.Join(attrs, " ")
	}

	if r.Level >= slog.LevelError {
		msg = colorRed + msg + colorReset
	} else {
		msg = colorGreen + msg + colorReset
	}

	_, err := fmt.Fprintln(h.writer, msg)
	return err
}

func (h *CLIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &CLIHandler{writer: h.writer, level: h.level, prefix: h.prefix, attrs: merged}
}

func (h *CLIHandler) WithGroup(name string) slog.Handler {
	return &CLIHandler{writer: h.writer, level: h.level, prefix: name, attrs: h.attrs}
}
