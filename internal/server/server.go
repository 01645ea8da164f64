// Package server implements a local development backend that speaks the
// chat wire contract: POST a message, receive a response.
package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/diogo/chatshell/internal/models"
)

// Version is reported by the status endpoint
const Version = "1.0.0"

// maxBodySize caps request bodies
const maxBodySize = 64 * 1024

// Responder produces the assistant reply for a message given the prior history
type Responder func(message string, history []models.Message) string

// EchoResponder answers every message with a mock reply
func EchoResponder(message string, _ []models.Message) string {
	return fmt.Sprintf("Mock response to: %s", message)
}

// Server holds the backend state
type Server struct {
	store     *ConversationStore
	respond   Responder
	logger    *zap.Logger
	origins   []string
	bodyLimit int64
}

// Option configures a Server
type Option func(*Server)

// WithResponder replaces the echo responder
func WithResponder(r Responder) Option {
	return func(s *Server) {
		if r != nil {
			s.respond = r
		}
	}
}

// WithLogger sets the request logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAllowedOrigins restricts CORS origins; all origins are allowed by default
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.origins = origins
		}
	}
}

// New creates a Server
func New(opts ...Option) *Server {
	s := &Server{
		store:     NewConversationStore(),
		respond:   EchoResponder,
		logger:    zap.NewNop(),
		origins:   []string{"*"},
		bodyLimit: maxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the conversation store
func (s *Server) Store() *ConversationStore {
	return s.store
}

// Router builds the HTTP handler
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", s.handleStatus)
	r.Post("/", s.handleChat)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", s.handleStatus)
		r.Post("/chat", s.handleChat)
		r.Delete("/conversation/{id}", s.handleDeleteConversation)
	})

	return r
}
