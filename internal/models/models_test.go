package models

import (
	"encoding/json"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{"user", "user", RoleUser, false},
		{"assistant", "assistant", RoleAssistant, false},
		{"system is not a role", "system", "", true},
		{"empty", "", "", true},
		{"case sensitive", "User", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRole(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMessageConstructors(t *testing.T) {
	u := NewUserMessage("hi")
	if !u.IsUser() || u.Content != "hi" {
		t.Errorf("NewUserMessage() = %+v", u)
	}

	a := NewAssistantMessage("hello")
	if a.IsUser() || a.Role != RoleAssistant {
		t.Errorf("NewAssistantMessage() = %+v", a)
	}
}

func TestChatRequest_OmitsEmptyConversationID(t *testing.T) {
	data, err := json.Marshal(ChatRequest{Message: "ping"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"message":"ping"}` {
		t.Errorf("Marshal() = %s, want {\"message\":\"ping\"}", data)
	}

	data, err = json.Marshal(ChatRequest{Message: "ping", ConversationID: "abc"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"message":"ping","conversation_id":"abc"}` {
		t.Errorf("Marshal() = %s", data)
	}
}

func TestAPIStatus_Online(t *testing.T) {
	var nilStatus *APIStatus
	if nilStatus.Online() {
		t.Error("nil status should not be online")
	}
	if !(&APIStatus{Status: "online"}).Online() {
		t.Error("status 'online' should be online")
	}
	if (&APIStatus{Status: "degraded"}).Online() {
		t.Error("status 'degraded' should not be online")
	}
}
