package api

import (
	"sync"

	"github.com/diogo/chatshell/internal/models"
)

// MockChatClient is a mock implementation of ChatClientInterface for testing
type MockChatClient struct {
	mu sync.Mutex

	// Mock return values
	Response    *models.ChatResponse
	SendErr     error
	Status      *models.APIStatus
	StatusErr   error
	IsClosedVal bool

	// SendFunc overrides Response/SendErr when set
	SendFunc func(endpoint string, req models.ChatRequest) (*models.ChatResponse, error)

	// Call recorders
	Requests        []models.ChatRequest
	Endpoints       []string
	StatusEndpoints []string
	CloseCalled     bool
}

// Ensure MockChatClient implements ChatClientInterface
var _ ChatClientInterface = (*MockChatClient)(nil)

// SendMessage records the call and returns the configured reply
func (m *MockChatClient) SendMessage(endpoint string, req models.ChatRequest) (*models.ChatResponse, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.Endpoints = append(m.Endpoints, endpoint)
	fn := m.SendFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(endpoint, req)
	}
	if m.SendErr != nil {
		return nil, m.SendErr
	}
	if m.Response == nil {
		return &models.ChatResponse{}, nil
	}
	resp := *m.Response
	return &resp, nil
}

// CheckStatus records the call and returns the configured status
func (m *MockChatClient) CheckStatus(endpoint string) (*models.APIStatus, error) {
	m.mu.Lock()
	m.StatusEndpoints = append(m.StatusEndpoints, endpoint)
	m.mu.Unlock()
	return m.Status, m.StatusErr
}

// Close marks the mock closed
func (m *MockChatClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
	m.IsClosedVal = true
}

// IsClosed returns IsClosedVal
func (m *MockChatClient) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.IsClosedVal
}

// CallCount returns how many messages were sent
func (m *MockChatClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}
