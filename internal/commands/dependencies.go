package commands

import (
	"io"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/diogo/chatshell/internal/api"
	"github.com/diogo/chatshell/internal/config"
	"github.com/diogo/chatshell/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(session tui.ChatSessionInterface, opts tui.ChatOptions) error
	RunConfig(cfg config.Config) error
}

// ClientFactory builds the backend client for a configuration.
type ClientFactory func(cfg config.Config, logger *zap.Logger) (api.ChatClientInterface, error)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewClient creates the HTTP client used for chat and status calls.
	NewClient ClientFactory

	// TUI is the terminal user interface.
	TUI TUIInterface

	// LoadConfig returns the merged file, .env and environment configuration.
	LoadConfig func() (config.Config, error)

	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinPiped reports whether stdin carries input rather than a terminal.
	StdinPiped func() bool

	// StdoutIsTTY reports whether replies can be decorated.
	StdoutIsTTY func() bool
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(session tui.ChatSessionInterface, opts tui.ChatOptions) error {
	return tui.RunChat(session, opts)
}

func (d *DefaultTUI) RunConfig(cfg config.Config) error {
	return tui.RunConfig(cfg)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient:   defaultClientFactory,
		TUI:         &DefaultTUI{},
		LoadConfig:  config.LoadConfig,
		Clipboard:   clipboard.WriteAll,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		StdinPiped:  stdinPiped,
		StdoutIsTTY: isStdoutTTY,
	}
}

func defaultClientFactory(cfg config.Config, logger *zap.Logger) (api.ChatClientInterface, error) {
	client, err := api.NewClient(
		api.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
		api.WithTLSProfile(cfg.TLSProfile),
		api.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func stdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}
