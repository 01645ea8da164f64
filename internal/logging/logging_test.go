package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_NotVerboseIsNop(t *testing.T) {
	logger, err := New(false, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if logger.Core().Enabled(0) {
		t.Error("expected a no-op logger when not verbose")
	}
}

func TestNew_VerboseToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatshell.log")

	logger, err := New(true, path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("sending message")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "sending message") {
		t.Errorf("log file = %q, want it to contain the entry", data)
	}
}

func TestMustNew_FallsBackOnBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "chatshell.log")
	logger := MustNew(true, path)
	if logger == nil {
		t.Fatal("MustNew() returned nil")
	}
}
