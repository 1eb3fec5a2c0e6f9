package testutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger forwards log output to the test log and remembers the
// warnings it receives.
type TestLogger struct {
	t *testing.T

	mu       sync.Mutex
	warnings []string
}

// NewTestLogger creates a new TestLogger that writes to the provided testing.T
func NewTestLogger(t *testing.T) *TestLogger {
	return &TestLogger{t: t}
}

// Warnf records the formatted warning and writes it to the test log. It
// satisfies the warn callbacks taken by WithWarn options.
func (l *TestLogger) Warnf(format string, v ...any) {
	l.t.Helper()
	msg := fmt.Sprintf(format, v...)
	l.mu.Lock()
	l.warnings = append(l.warnings, msg)
	l.mu.Unlock()
	l.t.Log("warning: " + msg)
}

// Warnings returns the warnings received so far.
func (l *TestLogger) Warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.warnings...)
}

// Zerolog returns a structured logger that writes to the test log.
func (l *TestLogger) Zerolog() zerolog.Logger {
	return zerolog.New(zerolog.NewTestWriter(l.t)).Level(zerolog.DebugLevel)
}
