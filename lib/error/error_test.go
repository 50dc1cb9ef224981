package error

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func capture(t *testing.T, f func()) (string, int) {
	t.Helper()
	b := &bytes.Buffer{ }
	prevLog, prevExit := slog.Default(), exit
	defer func() { slog.SetDefault(prevLog); exit = prevExit }()

	slog.SetDefault(slog.New(slog.NewTextHandler(b, nil)))
	code := -1
	exit = func(c int) { code = c }
	f()
	return b.String(), code
}

func TestExternal(t *testing.T) {
	out, code := capture(t, func() { External("frame %d is missing", 40) })
	if code != 1 {
		t.Errorf("Expected exit code 1, got %d.", code)
	}
	if !strings.Contains(out, "frame 40 is missing") {
		t.Errorf("Expected the message in the log, got '%s'.", out)
	}
}

func TestInternal(t *testing.T) {
	out, code := capture(t, func() { Internal("impossible %s", "state") })
	if code != 1 {
		t.Errorf("Expected exit code 1, got %d.", code)
	}
	if !strings.Contains(out, "impossible state") ||
		!strings.Contains(out, "stack=") {
		t.Errorf("Expected the message and a stack trace, got '%s'.", out)
	}
}
