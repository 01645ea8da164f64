package commands

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine
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

func TestSpinnerLifecycle_StopWithSuccess(t *testing.T) {
	out := &syncBuffer{}
	s := newSpinner(out, "Waiting")
	s.start()
	time.Sleep(200 * time.Millisecond)
	s.stopWithSuccess("done")

	got := out.String()
	if !strings.Contains(got, "Waiting") {
		t.Error("expected at least one rendered frame")
	}
	if !strings.Contains(got, "done") {
		t.Error("expected success message")
	}
}

func TestSpinnerLifecycle_StopWithError(t *testing.T) {
	out := &syncBuffer{}
	s := newSpinner(out, "Waiting")
	s.start()
	time.Sleep(30 * time.Millisecond)
	s.stopWithError()
	// A second stop must not panic
	s.stopOnce()
}
