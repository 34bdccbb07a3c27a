// Package logging sets up the process-wide slog logger and hands out
// component-tagged loggers.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

var level = new(slog.LevelVar)

// Init installs the default logger writing to stderr.
// levelStr is one of debug, info, warn, error (default info);
// format is text or json (default text).
func Init(levelStr, format string) {
	InitWriter(os.Stderr, levelStr, format)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, levelStr, format string) {
	level.Set(ParseLevel(levelStr))

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// For returns a logger tagged with component. It resolves slog.Default() on
// every call, so package-level loggers pick up a later Init.
func For(component string) *slog.Logger {
	return slog.New(&componentHandler{component: component})
}

// SetLevel changes the minimum level at runtime.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// ValidLevel reports whether s names a known level. Empty means default.
func ValidLevel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

type componentHandler struct {
	component string
	attrs     []slog.Attr
}

func (h *componentHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return slog.Default().Handler().Enabled(ctx, l)
}

func (h *componentHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(slog.String("component", h.component))
	r.AddAttrs(h.attrs...)
	return slog.Default().Handler().Handle(ctx, r)
}

func (h *componentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &componentHandler{component: h.component, attrs: merged}
}

func (h *componentHandler) WithGroup(string) slog.Handler {
	return h
}
