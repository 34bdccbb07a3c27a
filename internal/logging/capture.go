package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Capture collects log records for test assertions.
type Capture struct {
	mu        sync.Mutex
	records   []slog.Record
	prev      *slog.Logger
	prevLevel slog.Level
}

// CaptureForTest routes the default logger into a Capture at debug level.
// Call Restore when done.
func CaptureForTest() *Capture {
	c := &Capture{
		prev:      slog.Default(),
		prevLevel: level.Level(),
	}
	slog.SetDefault(slog.New(&captureHandler{capture: c}))
	SetLevel(slog.LevelDebug)
	return c
}

// Restore puts back the logger and level that were active before capture.
func (c *Capture) Restore() {
	slog.SetDefault(c.prev)
	level.Set(c.prevLevel)
}

// Count returns the number of records at lvl whose message contains msg.
func (c *Capture) Count(lvl slog.Level, msg string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, r := range c.records {
		if r.Level == lvl && strings.Contains(r.Message, msg) {
			n++
		}
	}
	return n
}

// Has reports whether any record at lvl contains msg.
func (c *Capture) Has(lvl slog.Level, msg string) bool {
	return c.Count(lvl, msg) > 0
}

type captureHandler struct {
	capture *Capture
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.capture.mu.Lock()
	defer h.capture.mu.Unlock()
	h.capture.records = append(h.capture.records, r.Clone())
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *captureHandler) WithGroup(string) slog.Handler { return h }
