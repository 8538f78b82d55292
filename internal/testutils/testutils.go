package testutils

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
)

// syncBuffer lets the handler and the test read the log concurrently.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// SetupTestLogger creates a DEBUG level slog.Logger that writes to a buffer.
// Returns the logger and a function reading back everything logged so far.
func SetupTestLogger() (*slog.Logger, func() string) {
	buf := &syncBuffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), buf.String
}

// UseTestLogger installs a capturing logger as slog's default for the
// duration of the test.
func UseTestLogger(t testing.TB) func() string {
	t.Helper()
	logger, logs := SetupTestLogger()
	prev := slog.Default()
	slog.SetDefault(logger)
	t.Cleanup(func() { slog.SetDefault(prev) })
	return logs
}
