package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/diogo/chatshell/internal/models"
)

// writeJSON sends a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError sends a {"detail": ...} error body
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, models.ErrorDetail{Detail: detail})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.APIStatus{
		Status:  "online",
		Message: "Chatbot API is running",
		Version: Version,
	})
}

// chatPayload distinguishes a missing message from a blank one
type chatPayload struct {
	Message        *string `json:"message"`
	ConversationID string  `json:"conversation_id,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatPayload
	body := http.MaxBytesReader(w, r.Body, s.bodyLimit)
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if payload.Message == nil {
		writeError(w, http.StatusUnprocessableEntity, "field required: message")
		return
	}
	req := models.ChatRequest{Message: *payload.Message, ConversationID: payload.ConversationID}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "Message cannot be empty")
		return
	}

	id := req.ConversationID
	if id == "" {
		id = DefaultConversationID
	}

	reply := s.respond(req.Message, s.store.History(id))
	s.store.Append(id,
		models.NewUserMessage(req.Message),
		models.NewAssistantMessage(reply),
	)
	s.logger.Debug("chat handled",
		zap.String("conversation_id", id),
		zap.Int("message_length", len(req.Message)),
	)

	writeJSON(w, http.StatusOK, models.ChatResponse{
		Response:       reply,
		ConversationID: id,
	})
}

// handleDeleteConversation answers 200 whether or not the conversation existed
func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	msg := "Conversation not found"
	if s.store.Delete(chi.URLParam(r, "id")) {
		msg = "Conversation cleared"
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}
