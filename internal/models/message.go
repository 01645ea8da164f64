// Package models defines the data types shared by the chat client, the TUI
// and the development server.
package models

import "fmt"

// Role tags who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole returns the Role for the given name
func ParseRole(name string) (Role, error) {
	switch Role(name) {
	case RoleUser, RoleAssistant:
		return Role(name), nil
	default:
		return "", fmt.Errorf("unknown role %q", name)
	}
}

// String returns the role name
func (r Role) String() string {
	return string(r)
}

// Message represents a chat message for TUI display
type Message struct {
	Role    Role
	Content string
}

// NewUserMessage creates a user-authored message
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant-authored message
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// IsUser reports whether the message was written by the user
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}
