package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/chatshell/internal/chat"
	"github.com/diogo/chatshell/internal/config"
	apierrors "github.com/diogo/chatshell/internal/errors"
	"github.com/diogo/chatshell/internal/logging"
	"github.com/diogo/chatshell/internal/render"
)

var (
	colorText     = lipgloss.Color("#c0caf5")
	colorTextDim  = lipgloss.Color("#565f89")
	colorTextMute = lipgloss.Color("#3b4261")
	colorSuccess  = lipgloss.Color("#9ece6a")
	colorPrimary  = lipgloss.Color("#7aa2f7")
	colorError    = lipgloss.Color("#f7768e")
)

// Styles matching the chat TUI
var (
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginTop(1).
				MarginBottom(1)

	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	dimStyle     = lipgloss.NewStyle().Foreground(colorTextDim)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
)

// errReported marks errors already printed to stderr
var errReported = errors.New("reported")

func reported(err error) error {
	return fmt.Errorf("%w: %w", errReported, err)
}

// runQuery submits a single message and prints the reply.
// With raw output only the reply text is printed.
func runQuery(deps *Dependencies, opts *rootOptions, prompt string) error {
	text, ok := chat.PrepareSubmission(prompt, false)
	if !ok {
		return fmt.Errorf("prompt cannot be empty: %w", apierrors.ErrEmptyMessage)
	}

	cfg, err := loadSettings(deps, opts)
	if err != nil {
		return err
	}

	logger := logging.MustNew(cfg.Verbose, "")
	defer func() { _ = logger.Sync() }()

	session, closeClient, err := openSession(deps, cfg, logger)
	if err != nil {
		return err
	}
	defer closeClient()

	var spin *spinner
	if !opts.raw {
		spin = newSpinner(deps.Stderr, "Waiting for reply")
		spin.start()
	}

	start := time.Now()
	resp, err := session.SendMessage(text)
	elapsed := time.Since(start)

	if err != nil {
		if spin != nil {
			spin.stopWithError()
		}
		failure := chat.FailureMessage(err, session.Endpoint())
		fmt.Fprintln(deps.Stderr, formatFailure(failure.Content, err))
		logger.Warn("request failed", zap.String("endpoint", session.Endpoint()), zap.Error(err))
		return reported(err)
	}
	if spin != nil {
		spin.stopWithSuccess("Done")
	}
	logger.Info("reply received",
		zap.String("endpoint", session.Endpoint()),
		zap.Duration("elapsed", elapsed.Round(time.Millisecond)),
		zap.Int("length", len(resp.Response)),
	)

	return writeReply(deps, opts, cfg, resp.Response)
}

// writeReply sends the reply to the output file, the clipboard and stdout
func writeReply(deps *Dependencies, opts *rootOptions, cfg config.Config, reply string) error {
	if cfg.CopyToClipboard {
		if err := deps.Clipboard(reply); err != nil {
			fmt.Fprintln(deps.Stderr, errorStyle.Render(fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
		} else if !opts.raw {
			fmt.Fprintln(deps.Stderr, successStyle.Render("✓ Copied to clipboard"))
		}
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(reply), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !opts.raw {
			fmt.Fprintln(deps.Stderr, successStyle.Render(fmt.Sprintf("✓ Response saved to %s", opts.output)))
		}
		return nil
	}

	if opts.raw || !deps.StdoutIsTTY() {
		fmt.Fprint(deps.Stdout, reply)
		if !strings.HasSuffix(reply, "\n") {
			fmt.Fprintln(deps.Stdout)
		}
		return nil
	}

	bubbleWidth := getTerminalWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}

	rendered := render.Reply(reply, render.OptionsFromConfig(cfg, bubbleWidth-4))
	fmt.Fprintln(deps.Stdout, assistantLabelStyle.Render("✦ Assistant"))
	fmt.Fprintln(deps.Stdout, assistantBubbleStyle.Width(bubbleWidth).Render(rendered))
	return nil
}

// formatFailure renders a failed request with its details and a hint
func formatFailure(message string, err error) string {
	var sb strings.Builder
	sb.WriteString(errorStyle.Render("✗ " + message))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}
	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}
	if hint := failureHint(err); hint != "" {
		sb.WriteString(lipgloss.NewStyle().Foreground(colorPrimary).Render("\n  " + hint))
	}
	return sb.String()
}

func failureHint(err error) string {
	status := apierrors.GetHTTPStatus(err)
	switch {
	case apierrors.IsNetworkError(err):
		return "Is the backend running? `chatshell serve` starts a local echo backend."
	case status == 404 || status == 405:
		return "Check the endpoint path (for example /api/chat)."
	case apierrors.IsServerError(err):
		return "The backend failed while handling the message; check its logs."
	case errors.Is(err, apierrors.ErrInvalidResponse):
		return `The backend must answer with {"response": "<text>"}.`
	}
	return ""
}
