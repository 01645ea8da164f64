// Package chat holds the message-submission rules shared by the TUI and
// the one-shot command: which inputs are submitted, how the transcript
// grows and how failures are reported back to the user.
package chat

import (
	"github.com/diogo/chatshell/internal/models"
)

// Transcript is the ordered, append-only list of messages shown to the
// user. It lives for one view and is never persisted.
type Transcript struct {
	messages []models.Message
}

// NewTranscript creates a transcript, optionally opening with an
// assistant greeting.
func NewTranscript(greeting string) *Transcript {
	t := &Transcript{}
	if greeting != "" {
		t.Append(models.NewAssistantMessage(greeting))
	}
	return t
}

// Append adds a message at the end
func (t *Transcript) Append(msg models.Message) {
	t.messages = append(t.messages, msg)
}

// Messages returns a copy of the messages in order
func (t *Transcript) Messages() []models.Message {
	out := make([]models.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Count returns how many messages have the given role
func (t *Transcript) Count(role models.Role) int {
	n := 0
	for _, m := range t.messages {
		if m.Role == role {
			n++
		}
	}
	return n
}

// LastAssistant returns the most recent assistant message
func (t *Transcript) LastAssistant() (models.Message, bool) {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Role == models.RoleAssistant {
			return t.messages[i], true
		}
	}
	return models.Message{}, false
}
