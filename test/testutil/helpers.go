package testutil

import (
	"bytes"
	"sync"

	"github.com/bharatshaala/wishsync/internal/events"
)

// NewTestLogger creates a quiet logger for tests.
func NewTestLogger() *events.Logger {
	return events.NewTestLogger(events.ErrorLevel, &safeBuffer{})
}

// NewDebugLogger creates a logger capturing debug output, returned with
// its buffer for assertions.
func NewDebugLogger() (*events.Logger, *safeBuffer) {
	buf := &safeBuffer{}
	return events.NewTestLogger(events.DebugLevel, buf), buf
}

// safeBuffer is a goroutine-safe bytes.Buffer.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
