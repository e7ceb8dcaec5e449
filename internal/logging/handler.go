package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Handler is a slog.Handler that renders records as single human-readable
// lines: a kitchen-clock timestamp, a padded level tag, the message, and
// key=value attributes. Output is colorized when the writer is a terminal
// that wants color.
type Handler struct {
	mu    *sync.Mutex
	out   io.Writer
	level slog.Leveler
	color bool

	attrs  []slog.Attr
	prefix string
}

// NewHandler builds a Handler writing to out. Only opts.Level is honored;
// it defaults to slog.LevelInfo when opts is nil or opts.Level is unset.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &Handler{
		mu:    &sync.Mutex{},
		out:   out,
		level: level,
		color: SupportsColor(out),
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle renders r as one line and writes it in a single call, so records
// from concurrent goroutines never interleave mid-line.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	if !r.Time.IsZero() {
		b.WriteString(h.paint(r.Time.Format(time.Kitchen), color.FgHiBlack))
		b.WriteByte(' ')
	}
	b.WriteString(h.levelTag(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		h.writeAttr(&b, a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&b, h.qualify(a.Key), a.Value)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

// levelTag pads the level name before coloring it, so escape codes do not
// throw off the column alignment.
func (h *Handler) levelTag(level slog.Level) string {
	tag := fmt.Sprintf("%-5s", level.String())
	switch {
	case level >= slog.LevelError:
		return h.paint(tag, color.FgRed, color.Bold)
	case level >= slog.LevelWarn:
		return h.paint(tag, color.FgYellow)
	case level >= slog.LevelInfo:
		return h.paint(tag, color.FgGreen)
	default:
		return h.paint(tag, color.FgMagenta)
	}
}

func (h *Handler) writeAttr(b *strings.Builder, key string, v slog.Value) {
	fmt.Fprintf(b, " %s=%v", h.paint(key, color.FgCyan), v.Any())
}

func (h *Handler) qualify(key string) string {
	if h.prefix == "" {
		return key
	}
	return h.prefix + "." + key
}

func (h *Handler) paint(s string, attrs ...color.Attribute) string {
	if !h.color {
		return s
	}
	return color.New(attrs...).Sprint(s)
}

// WithAttrs returns a handler that prepends attrs to every record. Keys
// are qualified with the group prefix in effect when the attr is bound.
// The receiver's slice is never mutated, so derived handlers stay
// independent.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *h
	bound := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		bound[i] = slog.Attr{Key: h.qualify(a.Key), Value: a.Value}
	}
	derived.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], bound...)
	return &derived
}

// WithGroup returns a handler that qualifies attribute keys with name,
// rendered as "group.key". Nested groups chain with further dots.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	derived := *h
	if h.prefix != "" {
		derived.prefix = h.prefix + "." + name
	} else {
		derived.prefix = name
	}
	return &derived
}
