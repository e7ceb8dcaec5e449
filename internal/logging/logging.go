package logging

import (
	"log/slog"
	"strings"
	"testing"
)

// Format names a log output encoding, matching the --log-format flag.
type Format string

const (
	// FormatText is the line-oriented terminal format.
	FormatText Format = "text"
	// FormatJSON is one JSON object per record.
	FormatJSON Format = "json"
)

// LevelTrace sits one step below slog.LevelDebug. The third -v selects it.
const LevelTrace = slog.LevelDebug - 4

// LevelFromVerbosity maps a -v flag count to a level threshold. Zero
// verbosity keeps only warnings and errors; each extra -v lowers the
// threshold, bottoming out at LevelTrace.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// ForTest returns a debug-level logger whose output lands in the test
// log, so it only shows up on failure or under -v.
func ForTest(t *testing.T) *slog.Logger {
	t.Helper()
	h := NewHandler(&testWriter{t: t}, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h)
}

// testWriter adapts testing.T to io.Writer.
type testWriter struct {
	t *testing.T
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
