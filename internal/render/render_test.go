package render

import (
	"strings"
	"sync"
	"testing"

	"github.com/diogo/chatshell/internal/config"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Width != 80 {
		t.Errorf("expected Width=80, got %d", opts.Width)
	}
	if opts.Style != StyleDark {
		t.Errorf("expected Style='dark', got %s", opts.Style)
	}
	if !opts.EnableEmoji || !opts.PreserveNewLines || !opts.TableWrap {
		t.Errorf("unexpected defaults: %+v", opts)
	}
	if opts.InlineTableLinks {
		t.Error("expected InlineTableLinks=false")
	}
}

func TestOptionsWithWidth(t *testing.T) {
	if got := DefaultOptions().WithWidth(120).Width; got != 120 {
		t.Errorf("Width = %d, want 120", got)
	}
	if got := DefaultOptions().WithWidth(3).Width; got != 20 {
		t.Errorf("Width = %d, want clamped 20", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "")

	cfg := config.DefaultConfig()
	cfg.Markdown.Style = StyleLight
	cfg.Markdown.EnableEmoji = false

	opts := OptionsFromConfig(cfg, 60)
	if opts.Style != StyleLight || opts.EnableEmoji || opts.Width != 60 {
		t.Errorf("OptionsFromConfig() = %+v", opts)
	}

	cfg.Markdown.Style = ""
	if got := OptionsFromConfig(cfg, 60).Style; got != StyleDark {
		t.Errorf("empty style = %s, want dark", got)
	}

	t.Setenv("GLAMOUR_STYLE", StyleNoTTY)
	if got := OptionsFromConfig(cfg, 60).Style; got != StyleNoTTY {
		t.Errorf("GLAMOUR_STYLE override = %s, want notty", got)
	}
}

func TestMarkdown(t *testing.T) {
	opts := DefaultOptions().WithStyle(StyleASCII)

	out, err := Markdown("# Title\n\nSome **bold** text", opts)
	if err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}
	if !strings.Contains(out, "Title") || !strings.Contains(out, "bold") {
		t.Errorf("Markdown() = %q", out)
	}
}

func TestReply(t *testing.T) {
	opts := DefaultOptions().WithStyle(StyleNoTTY)

	out := Reply("hello world", opts)
	if strings.HasPrefix(out, "\n") || strings.HasSuffix(out, "\n") {
		t.Errorf("Reply() = %q, want trimmed newlines", out)
	}
	if !strings.Contains(out, "hello world") {
		t.Errorf("Reply() = %q", out)
	}

	bad := DefaultOptions().WithStyle("/does/not/exist.json")
	if got := Reply("raw text", bad); got != "raw text" {
		t.Errorf("Reply() with broken style = %q, want raw content", got)
	}
}

func TestPools(t *testing.T) {
	ResetPools()
	opts := DefaultOptions().WithStyle(StyleASCII)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = Markdown("*concurrent*", opts)
		}()
	}
	wg.Wait()

	if PoolCount() != 1 {
		t.Errorf("PoolCount() = %d, want 1", PoolCount())
	}
	_, _ = Markdown("x", opts.WithWidth(40))
	if PoolCount() != 2 {
		t.Errorf("PoolCount() = %d, want 2", PoolCount())
	}

	ResetPools()
	if PoolCount() != 0 {
		t.Errorf("PoolCount() after reset = %d", PoolCount())
	}
}

func TestStyles(t *testing.T) {
	names := StyleNames()
	if len(names) != len(AvailableStyles()) {
		t.Fatal("StyleNames() length mismatch")
	}
	for _, n := range names {
		if !IsBuiltinStyle(n) {
			t.Errorf("IsBuiltinStyle(%s) = false", n)
		}
	}
	if IsBuiltinStyle("~/my-style.json") {
		t.Error("paths are not built-in styles")
	}
}
