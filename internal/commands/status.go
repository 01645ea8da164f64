package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/chatshell/internal/logging"
)

// NewStatusCmd creates the backend status command
func NewStatusCmd(deps *Dependencies, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the backend is reachable",
		Long: `Probe the backend status endpoint. By default it is the parent of the
chat endpoint (http://localhost:8000/api for http://localhost:8000/api/chat).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(deps, opts)
		},
	}
}

func runStatus(deps *Dependencies, opts *rootOptions) error {
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

	target := session.StatusEndpoint()
	status, err := session.CheckStatus()
	if err != nil {
		fmt.Fprintln(deps.Stderr, formatFailure("Backend unreachable at "+target, err))
		return reported(err)
	}
	if !status.Online() {
		return fmt.Errorf("backend at %s reports status %q", target, status.Status)
	}

	line := successStyle.Render("✓ " + status.Status)
	if status.Message != "" {
		line += "  " + status.Message
	}
	if status.Version != "" {
		line += dimStyle.Render("  v" + status.Version)
	}
	fmt.Fprintln(deps.Stdout, line)
	fmt.Fprintln(deps.Stdout, dimStyle.Render("  Status:   "+target))
	fmt.Fprintln(deps.Stdout, dimStyle.Render("  Endpoint: "+session.Endpoint()))
	return nil
}
