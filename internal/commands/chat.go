package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/chatshell/internal/config"
	"github.com/diogo/chatshell/internal/logging"
	"github.com/diogo/chatshell/internal/render"
	"github.com/diogo/chatshell/internal/tui"
)

// NewChatCmd creates the interactive chat command
func NewChatCmd(deps *Dependencies, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with the configured backend.

Enter sends, Alt+Enter inserts a newline and Ctrl+E edits the endpoint.
Type /help for commands, /quit or press Ctrl+C to end the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(deps, opts)
		},
	}
}

func runChat(deps *Dependencies, opts *rootOptions) error {
	cfg, err := loadSettings(deps, opts)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file
	logPath := ""
	if cfg.Verbose {
		if _, err := config.EnsureConfigDir(); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		logPath, _ = config.GetLogPath()
	}
	logger := logging.MustNew(cfg.Verbose, logPath)
	defer func() { _ = logger.Sync() }()

	session, closeClient, err := openSession(deps, cfg, logger)
	if err != nil {
		return err
	}
	defer closeClient()

	if render.SetTUITheme(cfg.TUITheme) {
		tui.UpdateTheme()
	}
	logger.Info("chat started",
		zap.String("endpoint", session.Endpoint()),
		zap.String("conversation_id", session.ConversationID()),
	)

	return deps.TUI.RunChat(session, tui.ChatOptions{
		Greeting:    cfg.Greeting,
		Markdown:    render.OptionsFromConfig(cfg, 80),
		CopyReplies: cfg.CopyToClipboard,
		Logger:      logger,
		Clipboard:   deps.Clipboard,
	})
}
