package logging

import "log/slog"

// LevelTrace is a custom level below Debug for very chatty diagnostics.
const LevelTrace = slog.LevelDebug - 4

// LevelFromVerbosity maps a -v flag count to a log level:
// 0 warn, 1 info, 2 debug, 3+ trace.
func LevelFromVerbosity(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	case verbosity == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// ParseLevel converts a level name to a slog.Level. Unknown names report
// false.
func ParseLevel(name string) (slog.Level, bool) {
	switch name {
	case "trace":
		return LevelTrace, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// LevelNames returns the accepted level names in severity order.
func LevelNames() []string {
	return []string{"trace", "debug", "info", "warn", "error"}
}
