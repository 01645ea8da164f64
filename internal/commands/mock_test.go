package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/diogo/chatshell/internal/api"
	"github.com/diogo/chatshell/internal/config"
	"github.com/diogo/chatshell/internal/tui"
)

// mockTUI records calls instead of starting bubbletea programs
type mockTUI struct {
	chatSession tui.ChatSessionInterface
	chatOpts    tui.ChatOptions
	chatCalls   int
	configCfg   config.Config
	configCalls int
	err         error
}

func (m *mockTUI) RunChat(session tui.ChatSessionInterface, opts tui.ChatOptions) error {
	m.chatCalls++
	m.chatSession = session
	m.chatOpts = opts
	return m.err
}

func (m *mockTUI) RunConfig(cfg config.Config) error {
	m.configCalls++
	m.configCfg = cfg
	return m.err
}

// testEnv bundles injected dependencies and their recorders
type testEnv struct {
	deps    *Dependencies
	client  *api.MockChatClient
	tui     *mockTUI
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	copied  []string
	cfg     config.Config
	created []config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("CHATSHELL_HOME", t.TempDir())

	env := &testEnv{
		client: &api.MockChatClient{},
		tui:    &mockTUI{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		cfg:    config.DefaultConfig(),
	}
	env.deps = &Dependencies{
		NewClient: func(cfg config.Config, _ *zap.Logger) (api.ChatClientInterface, error) {
			env.created = append(env.created, cfg)
			return env.client, nil
		},
		TUI: env.tui,
		LoadConfig: func() (config.Config, error) {
			return env.cfg, nil
		},
		Clipboard: func(s string) error {
			env.copied = append(env.copied, s)
			return nil
		},
		Stdin:       strings.NewReader(""),
		Stdout:      env.stdout,
		Stderr:      env.stderr,
		StdinPiped:  func() bool { return false },
		StdoutIsTTY: func() bool { return false },
	}
	return env
}

// run executes the root command with args
func (e *testEnv) run(args ...string) error {
	cmd := NewRootCmd(e.deps)
	cmd.SetArgs(args)
	cmd.SetOut(e.stdout)
	cmd.SetErr(e.stderr)
	return cmd.Execute()
}

var errBoom = errors.New("boom")
