package api

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/diogo/chatshell/internal/models"
)

// ChatSession binds a client to an endpoint that can change at runtime.
// It optionally carries a conversation id so the backend can keep context.
type ChatSession struct {
	client         ChatClientInterface
	mu             sync.RWMutex // Protects endpoint, statusEndpoint, conversationID
	endpoint       string
	statusEndpoint string // empty means derived from endpoint
	conversationID string
	trackID        bool
}

// SessionOption configures a ChatSession
type SessionOption func(*ChatSession)

// WithStatusEndpoint pins the status endpoint instead of deriving it
func WithStatusEndpoint(endpoint string) SessionOption {
	return func(s *ChatSession) {
		s.statusEndpoint = strings.TrimSpace(endpoint)
	}
}

// WithConversationID sends id with every request and adopts the id the
// server answers with.
func WithConversationID(id string) SessionOption {
	return func(s *ChatSession) {
		s.trackID = true
		s.conversationID = id
	}
}

// WithNewConversation is WithConversationID with a fresh random id
func WithNewConversation() SessionOption {
	return WithConversationID(uuid.NewString())
}

// NewChatSession creates a session for endpoint
func NewChatSession(client ChatClientInterface, endpoint string, opts ...SessionOption) (*ChatSession, error) {
	endpoint = strings.TrimSpace(endpoint)
	if err := ValidateEndpoint(endpoint); err != nil {
		return nil, err
	}

	s := &ChatSession{
		client:   client,
		endpoint: endpoint,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SendMessage posts prompt to the current endpoint
func (s *ChatSession) SendMessage(prompt string) (*models.ChatResponse, error) {
	s.mu.RLock()
	endpoint := s.endpoint
	req := models.ChatRequest{Message: prompt}
	if s.trackID {
		req.ConversationID = s.conversationID
	}
	s.mu.RUnlock()

	resp, err := s.client.SendMessage(endpoint, req)
	if err != nil {
		return nil, err
	}

	if s.trackID && resp.ConversationID != "" {
		s.mu.Lock()
		s.conversationID = resp.ConversationID
		s.mu.Unlock()
	}

	return resp, nil
}

// CheckStatus probes the session's status endpoint
func (s *ChatSession) CheckStatus() (*models.APIStatus, error) {
	return s.client.CheckStatus(s.StatusEndpoint())
}

// Endpoint returns the current chat endpoint
func (s *ChatSession) Endpoint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.endpoint
}

// SetEndpoint switches the chat endpoint for subsequent requests
func (s *ChatSession) SetEndpoint(endpoint string) error {
	endpoint = strings.TrimSpace(endpoint)
	if err := ValidateEndpoint(endpoint); err != nil {
		return err
	}
	s.mu.Lock()
	s.endpoint = endpoint
	s.mu.Unlock()
	return nil
}

// StatusEndpoint returns the pinned status endpoint or one derived from
// the chat endpoint.
func (s *ChatSession) StatusEndpoint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.statusEndpoint != "" {
		return s.statusEndpoint
	}
	return DeriveStatusEndpoint(s.endpoint)
}

// ConversationID returns the id sent with requests, or "" when the
// session does not track one.
func (s *ChatSession) ConversationID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.trackID {
		return ""
	}
	return s.conversationID
}
