package server

import (
	"sync"

	"github.com/diogo/chatshell/internal/models"
)

// DefaultConversationID is used when a request names no conversation
const DefaultConversationID = "default"

// ConversationStore keeps per-conversation history in memory for the
// lifetime of the process.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[string][]models.Message
}

// NewConversationStore creates an empty store
func NewConversationStore() *ConversationStore {
	return &ConversationStore{conversations: make(map[string][]models.Message)}
}

// History returns a copy of the conversation's messages
func (s *ConversationStore) History(id string) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.conversations[id]
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out
}

// Append adds messages to a conversation, creating it if needed
func (s *ConversationStore) Append(id string, msgs ...models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[id] = append(s.conversations[id], msgs...)
}

// Delete removes a conversation and reports whether it existed
func (s *ConversationStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conversations[id]; !ok {
		return false
	}
	delete(s.conversations, id)
	return true
}

// Len returns the number of conversations
func (s *ConversationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}
