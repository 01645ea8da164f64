package chat

import (
	"errors"
	"strings"
	"testing"

	apierrors "github.com/diogo/chatshell/internal/errors"
	"github.com/diogo/chatshell/internal/models"
)

func TestNewTranscript(t *testing.T) {
	t.Run("with greeting", func(t *testing.T) {
		tr := NewTranscript("Hello!")
		if tr.Len() != 1 {
			t.Fatalf("Len() = %d, want 1", tr.Len())
		}
		msg := tr.Messages()[0]
		if msg.Role != models.RoleAssistant || msg.Content != "Hello!" {
			t.Errorf("first message = %+v", msg)
		}
	})

	t.Run("without greeting", func(t *testing.T) {
		tr := NewTranscript("")
		if tr.Len() != 0 {
			t.Errorf("Len() = %d, want 0", tr.Len())
		}
	})
}

func TestTranscript_AppendKeepsOrder(t *testing.T) {
	tr := NewTranscript("")
	tr.Append(models.NewUserMessage("same"))
	tr.Append(models.NewAssistantMessage("reply"))
	tr.Append(models.NewUserMessage("same"))

	msgs := tr.Messages()
	if len(msgs) != 3 {
		t.Fatalf("len = %d, want 3 (no deduplication)", len(msgs))
	}
	want := []models.Role{models.RoleUser, models.RoleAssistant, models.RoleUser}
	for i, r := range want {
		if msgs[i].Role != r {
			t.Errorf("msgs[%d].Role = %s, want %s", i, msgs[i].Role, r)
		}
	}

	// Messages returns a copy
	msgs[0].Content = "mutated"
	if tr.Messages()[0].Content != "same" {
		t.Error("Messages() should not expose internal storage")
	}

	if tr.Count(models.RoleUser) != 2 || tr.Count(models.RoleAssistant) != 1 {
		t.Errorf("Count() user=%d assistant=%d", tr.Count(models.RoleUser), tr.Count(models.RoleAssistant))
	}
}

func TestTranscript_LastAssistant(t *testing.T) {
	tr := NewTranscript("")
	if _, ok := tr.LastAssistant(); ok {
		t.Error("empty transcript should have no assistant message")
	}

	tr.Append(models.NewAssistantMessage("first"))
	tr.Append(models.NewAssistantMessage("second"))
	tr.Append(models.NewUserMessage("question"))

	msg, ok := tr.LastAssistant()
	if !ok || msg.Content != "second" {
		t.Errorf("LastAssistant() = %+v, %v", msg, ok)
	}
}

func TestPrepareSubmission(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		pending bool
		want    string
		wantOK  bool
	}{
		{"plain text", "hello", false, "hello", true},
		{"keeps surrounding whitespace", "  hello \n", false, "  hello \n", true},
		{"empty", "", false, "", false},
		{"spaces only", "   ", false, "", false},
		{"newlines and tabs", "\n\t \n", false, "", false},
		{"pending request", "hello", true, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PrepareSubmission(tt.input, tt.pending)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("PrepareSubmission(%q, %v) = (%q, %v), want (%q, %v)",
					tt.input, tt.pending, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFailureMessage(t *testing.T) {
	endpoint := "http://localhost:8000/api/chat"
	err := apierrors.NewAPIError(500, endpoint, `{"detail":"API key not configured"}`)

	msg := FailureMessage(err, endpoint)
	if msg.Role != models.RoleAssistant {
		t.Errorf("Role = %s, want assistant", msg.Role)
	}
	if !strings.HasPrefix(msg.Content, "Error: ") {
		t.Errorf("Content = %q, want Error: prefix", msg.Content)
	}
	if !strings.Contains(msg.Content, endpoint) {
		t.Errorf("Content = %q, want it to name %s", msg.Content, endpoint)
	}
	if !strings.Contains(msg.Content, "API key not configured") {
		t.Errorf("Content = %q, want it to include the response body", msg.Content)
	}

	unknown := FailureMessage(nil, "http://x")
	if !strings.Contains(unknown.Content, "Unknown error") {
		t.Errorf("Content = %q, want Unknown error", unknown.Content)
	}

	plain := FailureMessage(errors.New("dial tcp: refused"), "http://y/api/chat")
	if !strings.Contains(plain.Content, "http://y/api/chat") {
		t.Errorf("Content = %q", plain.Content)
	}
}
