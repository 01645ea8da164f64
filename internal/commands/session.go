package commands

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/diogo/chatshell/internal/api"
	"github.com/diogo/chatshell/internal/config"
)

// loadSettings loads the configuration and applies command-line overrides
func loadSettings(deps *Dependencies, opts *rootOptions) (config.Config, error) {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.endpoint != "" {
		if err := api.ValidateEndpoint(opts.endpoint); err != nil {
			return cfg, err
		}
		cfg.Endpoint = strings.TrimSpace(opts.endpoint)
	}
	if opts.verbose {
		cfg.Verbose = true
	}
	if opts.style != "" {
		cfg.Markdown.Style = opts.style
	}
	if opts.copy {
		cfg.CopyToClipboard = true
	}
	return cfg, nil
}

// openSession creates a client and a chat session bound to cfg.Endpoint.
// The returned func releases the client.
func openSession(deps *Dependencies, cfg config.Config, logger *zap.Logger) (*api.ChatSession, func(), error) {
	client, err := deps.NewClient(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}

	var opts []api.SessionOption
	if cfg.StatusEndpoint != "" {
		opts = append(opts, api.WithStatusEndpoint(cfg.StatusEndpoint))
	}
	if cfg.SendConversationID {
		opts = append(opts, api.WithNewConversation())
	}

	session, err := api.NewChatSession(client, cfg.Endpoint, opts...)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return session, client.Close, nil
}
