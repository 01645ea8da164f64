package models

// ChatRequest is the JSON body posted to the chat endpoint.
// ConversationID is omitted unless the session tracks one.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ChatResponse is the JSON body returned by the chat endpoint
type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// APIStatus is returned by the backend status endpoint
type APIStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version,omitempty"`
}

// Online reports whether the backend describes itself as online
func (s *APIStatus) Online() bool {
	return s != nil && s.Status == "online"
}

// ErrorDetail is the error body produced by the development server
type ErrorDetail struct {
	Detail string `json:"detail"`
}
