package transport

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Pinger checks that the TestLink endpoint answers.
type Pinger interface {
	Ping(ctx context.Context) (string, error)
}

// Server wires HTTP handlers.
type Server struct {
	pinger Pinger
}

// NewServer creates the HTTP router for the MCP endpoint. A nil pinger makes
// /ready always succeed.
func NewServer(mcpHandler http.Handler, pinger Pinger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	srv := &Server{pinger: pinger}

	r.Handle("/mcp", mcpHandler)
	r.Handle("/mcp/*", mcpHandler)
	r.Get("/health", srv.handleHealth)
	r.Get("/ready", srv.handleReady)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		if _, err := s.pinger.Ping(r.Context()); err != nil {
			http.Error(w, "testlink unreachable: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
