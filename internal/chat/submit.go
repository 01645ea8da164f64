package chat

import (
	"fmt"
	"strings"

	"github.com/diogo/chatshell/internal/models"
)

// PrepareSubmission decides whether input should be sent.
// Blank input and input typed while a request is pending are refused.
// Accepted text is returned exactly as typed.
func PrepareSubmission(input string, pending bool) (string, bool) {
	if pending || strings.TrimSpace(input) == "" {
		return "", false
	}
	return input, true
}

// FailureMessage renders a failed request as an assistant message that
// names the endpoint the request was sent to.
func FailureMessage(err error, endpoint string) models.Message {
	reason := "Unknown error"
	if err != nil {
		reason = err.Error()
	}
	return models.NewAssistantMessage(
		fmt.Sprintf("Error: %s. Make sure your backend is running at %s", reason, endpoint),
	)
}
