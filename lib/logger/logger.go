/*package logger configures the process-wide slog logger used by every lpadiag
package.*/
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup installs a logger writing to stderr as the slog default. stdout is
// left for mode output.
func Setup(level string, format string) {
	slog.SetDefault(New(os.Stderr, level, format))
}

// New creates a logger writing to w with the given level ("debug",
// "info", "warn", "error") and format ("text" or "json").
func New(w io.Writer, level string, format string) *slog.Logger {
	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// WithComponent returns the default logger tagged with a component name.
// It must be called after Setup to pick up the configured handler.
func WithComponent(component string) *slog.Logger {
	return slog.Default().With("component", component)
}

// WithFrame tags a logger with the snapshot index being processed.
func WithFrame(log *slog.Logger, frame int) *slog.Logger {
	return log.With("frame", frame)
}

// ValidLevel returns true if level is one of the recognized level names.
func ValidLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// ValidFormat returns true if format is a recognized handler format.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case "text", "json":
		return true
	}
	return false
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
