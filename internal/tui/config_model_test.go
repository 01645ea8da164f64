package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/chatshell/internal/config"
	"github.com/diogo/chatshell/internal/render"
)

// newTestConfigModel returns a sized config model whose saves are recorded
func newTestConfigModel(t *testing.T) (ConfigModel, *[]config.Config) {
	t.Helper()
	t.Setenv("CHATSHELL_HOME", t.TempDir())

	saved := &[]config.Config{}
	m := NewConfigModel(config.DefaultConfig())
	m.save = func(cfg config.Config) error {
		*saved = append(*saved, cfg)
		return nil
	}
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(ConfigModel), saved
}

func configPress(t *testing.T, m ConfigModel, msg tea.KeyMsg) (ConfigModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	typed, ok := next.(ConfigModel)
	if !ok {
		t.Fatalf("Update returned %T, want ConfigModel", next)
	}
	return typed, cmd
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestNewConfigModel(t *testing.T) {
	m, _ := newTestConfigModel(t)

	if m.view != viewMain {
		t.Errorf("view = %v, want viewMain", m.view)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
	if !strings.HasSuffix(m.configPath, "config.json") {
		t.Errorf("configPath = %s", m.configPath)
	}
	if m.feedbackTimeout != 2*time.Second {
		t.Errorf("feedbackTimeout = %v", m.feedbackTimeout)
	}
	if m.Init() != nil {
		t.Error("Init should return nil command")
	}
}

func TestConfigModel_Navigation(t *testing.T) {
	m, _ := newTestConfigModel(t)

	m, _ = configPress(t, m, keyUp)
	if m.cursor != menuExit {
		t.Errorf("cursor = %d, want wrap to %d", m.cursor, menuExit)
	}
	m, _ = configPress(t, m, keyDown)
	if m.cursor != menuEndpoint {
		t.Errorf("cursor = %d, want wrap to %d", m.cursor, menuEndpoint)
	}
	m, _ = configPress(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if m.cursor != menuGreeting {
		t.Errorf("cursor = %d after j", m.cursor)
	}
}

func TestConfigModel_Toggles(t *testing.T) {
	tests := []struct {
		item int
		get  func(config.Config) bool
	}{
		{menuConversation, func(c config.Config) bool { return c.SendConversationID }},
		{menuVerbose, func(c config.Config) bool { return c.Verbose }},
		{menuCopyToClipboard, func(c config.Config) bool { return c.CopyToClipboard }},
	}

	for _, tt := range tests {
		t.Run(menuLabels[tt.item], func(t *testing.T) {
			m, saved := newTestConfigModel(t)
			before := tt.get(m.Config())
			m.cursor = tt.item

			m, cmd := configPress(t, m, keyEnter)
			if cmd == nil {
				t.Error("expected feedback clear command")
			}
			if tt.get(m.Config()) == before {
				t.Error("value was not toggled")
			}
			if len(*saved) != 1 || tt.get((*saved)[0]) == before {
				t.Errorf("saved = %+v", *saved)
			}
			if m.feedback == "" {
				t.Error("expected feedback")
			}
		})
	}
}

func TestConfigModel_TimeoutChoice(t *testing.T) {
	m, saved := newTestConfigModel(t)
	m.cursor = menuTimeout

	m, _ = configPress(t, m, keyEnter)
	if m.view != viewChoice {
		t.Fatalf("view = %v, want viewChoice", m.view)
	}
	if m.choices[m.choiceCursor] != "none" {
		t.Errorf("cursor on %s, want current value none", m.choices[m.choiceCursor])
	}

	m, _ = configPress(t, m, keyDown)
	m, _ = configPress(t, m, keyEnter)
	if m.view != viewMain {
		t.Error("selection should return to main view")
	}
	if m.Config().TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", m.Config().TimeoutSeconds)
	}
	if len(*saved) != 1 {
		t.Errorf("saves = %d", len(*saved))
	}
}

func TestConfigModel_ChoiceEscReturns(t *testing.T) {
	m, saved := newTestConfigModel(t)
	m.cursor = menuTheme

	m, _ = configPress(t, m, keyEnter)
	m, cmd := configPress(t, m, keyEsc)
	if m.view != viewMain || cmd != nil {
		t.Error("esc in a sub-menu should go back without quitting")
	}
	if len(*saved) != 0 {
		t.Error("esc must not save")
	}
}

func TestConfigModel_TUITheme(t *testing.T) {
	defer func() {
		render.SetTUITheme("tokyonight")
		UpdateTheme()
	}()

	m, _ := newTestConfigModel(t)
	m.cursor = menuTUITheme
	m, _ = configPress(t, m, keyEnter)

	for m.choices[m.choiceCursor] != "nord" {
		m, _ = configPress(t, m, keyDown)
	}
	m, _ = configPress(t, m, keyEnter)

	if m.Config().TUITheme != "nord" {
		t.Errorf("TUITheme = %s", m.Config().TUITheme)
	}
	if render.CurrentTUITheme().Name != "nord" {
		t.Error("theme should apply immediately")
	}
}

func TestConfigModel_EditEndpoint(t *testing.T) {
	m, saved := newTestConfigModel(t)
	m.cursor = menuEndpoint

	m, _ = configPress(t, m, keyEnter)
	if m.view != viewEdit {
		t.Fatalf("view = %v, want viewEdit", m.view)
	}
	if m.input.Value() != config.DefaultEndpoint {
		t.Errorf("input = %q, want current endpoint", m.input.Value())
	}

	m.input.SetValue("not-a-url")
	m, _ = configPress(t, m, keyEnter)
	if m.view != viewEdit || len(*saved) != 0 {
		t.Error("invalid endpoint should keep the editor open without saving")
	}

	m.input.SetValue(" https://chat.example.com/api/chat ")
	m, _ = configPress(t, m, keyEnter)
	if m.view != viewMain {
		t.Error("valid endpoint should close the editor")
	}
	if m.Config().Endpoint != "https://chat.example.com/api/chat" {
		t.Errorf("Endpoint = %q", m.Config().Endpoint)
	}
	if len(*saved) != 1 {
		t.Errorf("saves = %d", len(*saved))
	}
}

func TestConfigModel_EditGreetingCancel(t *testing.T) {
	m, saved := newTestConfigModel(t)
	m.cursor = menuGreeting

	m, _ = configPress(t, m, keyEnter)
	m.input.SetValue("Howdy")
	m, _ = configPress(t, m, keyEsc)

	if m.view != viewMain {
		t.Error("esc should leave the editor")
	}
	if m.Config().Greeting != config.DefaultGreeting || len(*saved) != 0 {
		t.Error("cancelled edit must not change the greeting")
	}
}

func TestConfigModel_SaveError(t *testing.T) {
	m, _ := newTestConfigModel(t)
	m.save = func(config.Config) error { return errors.New("disk full") }
	m.cursor = menuVerbose

	m, _ = configPress(t, m, keyEnter)
	if !strings.Contains(m.feedback, "disk full") {
		t.Errorf("feedback = %q", m.feedback)
	}
}

func TestConfigModel_Exit(t *testing.T) {
	m, _ := newTestConfigModel(t)
	m.cursor = menuExit
	if _, cmd := configPress(t, m, keyEnter); cmd == nil {
		t.Error("Exit should quit")
	}
	if _, cmd := configPress(t, m, keyEsc); cmd == nil {
		t.Error("esc on main view should quit")
	}
}

func TestConfigModel_View(t *testing.T) {
	m, _ := newTestConfigModel(t)
	view := m.View()

	for _, want := range []string{"Configuration", "Endpoint", config.DefaultEndpoint, "Request Timeout", "none"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestFormatParseTimeout(t *testing.T) {
	for _, s := range config.TimeoutPresets() {
		if got := parseTimeout(formatTimeout(s)); got != s {
			t.Errorf("parseTimeout(formatTimeout(%d)) = %d", s, got)
		}
	}
}
