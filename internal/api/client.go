// Package api provides the HTTP client for the chat backend.
package api

import (
	"fmt"
	"sort"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"go.uber.org/zap"

	apierrors "github.com/diogo/chatshell/internal/errors"
	"github.com/diogo/chatshell/internal/models"
)

// DefaultTLSProfile is the browser fingerprint used when none is configured
const DefaultTLSProfile = "chrome_120"

// HTTPDoer is the subset of tls_client.HttpClient the client relies on
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
	CloseIdleConnections()
}

// ChatClientInterface defines the backend operations used by the
// commands and the TUI.
type ChatClientInterface interface {
	SendMessage(endpoint string, req models.ChatRequest) (*models.ChatResponse, error)
	CheckStatus(endpoint string) (*models.APIStatus, error)
	Close()
	IsClosed() bool
}

// Ensure Client implements ChatClientInterface
var _ ChatClientInterface = (*Client)(nil)

// Client talks to a chat backend over HTTP
type Client struct {
	httpClient HTTPDoer
	logger     *zap.Logger
	timeout    time.Duration
	profile    string
	mu         sync.RWMutex
	closed     bool
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithTimeout bounds each request. Zero disables the timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithTLSProfile selects the tls-client fingerprint by name (e.g. chrome_120)
func WithTLSProfile(name string) ClientOption {
	return func(c *Client) {
		c.profile = name
	}
}

// WithHTTPClient injects the HTTP client, bypassing tls-client setup
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new Client
func NewClient(opts ...ClientOption) (*Client, error) {
	client := &Client{
		logger:  zap.NewNop(),
		profile: DefaultTLSProfile,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.timeout < 0 {
		return nil, apierrors.NewConfigError("timeout", "must not be negative")
	}

	if client.httpClient == nil {
		profile, err := ResolveTLSProfile(client.profile)
		if err != nil {
			return nil, err
		}

		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.timeout / time.Second)),
			tls_client.WithClientProfile(profile),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// ResolveTLSProfile maps a profile name to a tls-client profile.
// An empty name selects DefaultTLSProfile.
func ResolveTLSProfile(name string) (profiles.ClientProfile, error) {
	if name == "" {
		name = DefaultTLSProfile
	}
	profile, ok := profiles.MappedTLSClients[name]
	if !ok {
		return profiles.ClientProfile{}, apierrors.NewConfigError("tls_profile", fmt.Sprintf("unknown profile %q", name))
	}
	return profile, nil
}

// TLSProfileNames returns the known profile names, sorted
func TLSProfileNames() []string {
	names := make([]string, 0, len(profiles.MappedTLSClients))
	for name := range profiles.MappedTLSClients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close shuts down the client and releases idle connections
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Timeout returns the configured request timeout
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// StartChat creates a chat session bound to endpoint
func (c *Client) StartChat(endpoint string, opts ...SessionOption) (*ChatSession, error) {
	return NewChatSession(c, endpoint, opts...)
}
