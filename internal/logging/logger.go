package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// New creates a configured application logger.
// It writes to Stderr (to separate from Stdout listings and JSON-RPC).
// It standardizes common keys (e.g., "error" -> "err").
func New(level slog.Level) *slog.Logger {
	return NewWriter(os.Stderr, level)
}

// NewWriter creates a logger like New that writes to w.
func NewWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Standardize 'error' key to 'err'
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ForDebug returns base with debug records enabled when the page debug flag is
// set, and base otherwise. The base handler, its format and its attributes are kept.
func ForDebug(base *slog.Logger, debug bool) *slog.Logger {
	if base == nil {
		base = NewNop()
	}
	if !debug {
		return base
	}
	return slog.New(&debugHandler{inner: base.Handler()}).With("debug", true)
}

// debugHandler admits debug records into a handler configured for a higher level.
// The built-in handlers only filter in Enabled, so Handle accepts them.
type debugHandler struct {
	inner slog.Handler
}

func (h *debugHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelDebug
}

func (h *debugHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h *debugHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &debugHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *debugHandler) WithGroup(name string) slog.Handler {
	return &debugHandler{inner: h.inner.WithGroup(name)}
}
