package logging

import (
	"io"
	"log/slog"
	"os"
	"testing"
)

// Format selects the wire format for log records.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config describes the logger to build. A nil Output means os.Stderr;
// an unrecognized Format falls back to text.
type Config struct {
	Level  slog.Level
	Format Format
	Output io.Writer
}

// New builds a logger from cfg. Text output goes through the colored
// handler so interactive runs stay readable.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	if cfg.Format == FormatJSON {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(NewHandler(out, opts))
}

// Default returns the logger used before any flags or persisted
// verbosity have been applied: warnings and above, text, stderr.
func Default() *slog.Logger {
	return New(Config{
		Level:  LevelFromVerbosity(0),
		Format: FormatText,
	})
}

// NewDiscard returns a logger that drops everything. Used for --quiet.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// testWriter routes handler output to t.Log so messages only surface
// on failure or under -v.
type testWriter struct {
	t *testing.T
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	msg := string(p)
	// t.Log appends its own newline.
	if len(msg) > 0 && msg[len(msg)-1] == '\n' {
		msg = msg[:len(msg)-1]
	}
	w.t.Log(msg)
	return len(p), nil
}

// ForTest returns a trace-level logger wired to the test's log output.
func ForTest(t *testing.T) *slog.Logger {
	t.Helper()
	return New(Config{
		Level:  LevelTrace,
		Format: FormatText,
		Output: &testWriter{t: t},
	})
}
