package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// record builds a timeless record so output starts at the level tag.
func record(level slog.Level, msg string, attrs ...slog.Attr) slog.Record {
	r := slog.NewRecord(time.Time{}, level, msg, 0)
	r.AddAttrs(attrs...)
	return r
}

func handle(t *testing.T, h slog.Handler, r slog.Record) {
	t.Helper()
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle: %v", err)
	}
}

func TestHandlerLine(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	handle(t, h, record(slog.LevelInfo, "backup created", slog.String("name", "boss")))

	got := buf.String()
	want := "INFO  backup created name=boss\n"
	if got != want {
		t.Errorf("line = %q, want %q", got, want)
	}
}

func TestHandlerLevelTags(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, "DEBUG x\n"},
		{slog.LevelInfo, "INFO  x\n"},
		{slog.LevelWarn, "WARN  x\n"},
		{slog.LevelError, "ERROR x\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		handle(t, h, record(tt.level, "x"))
		if got := buf.String(); got != tt.want {
			t.Errorf("level %v: line = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestHandlerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	at := time.Date(2026, 3, 9, 21, 5, 0, 0, time.UTC)
	r := slog.NewRecord(at, slog.LevelInfo, "restored", 0)
	handle(t, h, r)

	if got := buf.String(); !strings.HasPrefix(got, "9:05PM ") {
		t.Errorf("line = %q, want kitchen timestamp prefix", got)
	}
}

func TestHandlerEnabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, nil)
	ctx := context.Background()

	if h.Enabled(ctx, slog.LevelDebug) {
		t.Error("debug should be off at the default threshold")
	}
	if !h.Enabled(ctx, slog.LevelInfo) {
		t.Error("info should be on at the default threshold")
	}

	warn := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	if warn.Enabled(ctx, slog.LevelInfo) {
		t.Error("info should be off at a warn threshold")
	}
}

func TestHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	base := NewHandler(&buf, nil)
	h := base.WithAttrs([]slog.Attr{slog.String("game", "eldenring")})

	handle(t, h, record(slog.LevelInfo, "listing", slog.Int("count", 3)))

	got := buf.String()
	if want := "INFO  listing game=eldenring count=3\n"; got != want {
		t.Errorf("line = %q, want %q", got, want)
	}

	// The base handler must not have absorbed the attr.
	buf.Reset()
	handle(t, base, record(slog.LevelInfo, "listing"))
	if got := buf.String(); strings.Contains(got, "game=") {
		t.Errorf("base handler leaked derived attrs: %q", got)
	}
}

func TestHandlerGroupQualifiesKeys(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil).
		WithAttrs([]slog.Attr{slog.String("slot", "7656")}).
		WithGroup("engine").
		WithAttrs([]slog.Attr{slog.String("backup", "boss")})

	handle(t, h, record(slog.LevelInfo, "restoring", slog.String("dir", "Backup")))

	got := buf.String()
	want := "INFO  restoring slot=7656 engine.backup=boss engine.dir=Backup\n"
	if got != want {
		t.Errorf("line = %q, want %q", got, want)
	}
}

func TestHandlerEmptyGroupIsNoop(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, nil)
	if h.WithGroup("") != slog.Handler(h) {
		t.Error("WithGroup(\"\") should return the receiver")
	}
}

func TestHandlerNoColorOnPlainWriter(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	handle(t, h, record(slog.LevelError, "restore failed", slog.String("name", "boss")))

	if got := buf.String(); strings.Contains(got, "\x1b[") {
		t.Errorf("escape codes on a non-terminal writer: %q", got)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestHandlerPropagatesWriteError(t *testing.T) {
	h := NewHandler(failWriter{}, nil)
	if err := h.Handle(context.Background(), record(slog.LevelInfo, "x")); err == nil {
		t.Error("expected the writer error back from Handle")
	}
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	m := NewMultiHandler(
		NewHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		NewHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	ctx := context.Background()

	if !m.Enabled(ctx, slog.LevelDebug) {
		t.Error("debug should be enabled while any target accepts it")
	}

	handle(t, m, record(slog.LevelInfo, "only the debug target"))
	if !strings.Contains(a.String(), "only the debug target") {
		t.Errorf("debug target missed the record: %q", a.String())
	}
	if b.Len() != 0 {
		t.Errorf("warn target should have filtered the record: %q", b.String())
	}

	handle(t, m, record(slog.LevelError, "both targets"))
	if !strings.Contains(a.String(), "both targets") || !strings.Contains(b.String(), "both targets") {
		t.Error("error record should reach both targets")
	}
}

func TestMultiHandlerKeepsGoingAfterError(t *testing.T) {
	var ok bytes.Buffer
	m := NewMultiHandler(NewHandler(failWriter{}, nil), NewHandler(&ok, nil))

	err := m.Handle(context.Background(), record(slog.LevelInfo, "carry on"))
	if err == nil {
		t.Error("expected the failing target's error")
	}
	if !strings.Contains(ok.String(), "carry on") {
		t.Errorf("healthy target should still get the record: %q", ok.String())
	}
}

func TestMultiHandlerWithAttrs(t *testing.T) {
	var a, b bytes.Buffer
	m := NewMultiHandler(NewHandler(&a, nil), NewHandler(&b, nil)).
		WithAttrs([]slog.Attr{slog.String("game", "sekiro")})

	handle(t, m, record(slog.LevelInfo, "x"))

	for name, buf := range map[string]*bytes.Buffer{"first": &a, "second": &b} {
		if !strings.Contains(buf.String(), "game=sekiro") {
			t.Errorf("%s target missing the shared attr: %q", name, buf.String())
		}
	}
}
