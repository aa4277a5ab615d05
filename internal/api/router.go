package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Route("/api", func(r chi.Router) {
		// No auth required
		r.Get("/health", s.handleHealth)
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)

		// Token carried in the Authorization header, checked in-handler
		// so the response shapes match the session contract exactly.
		r.Post("/logout", s.handleLogout)
		r.Get("/verify", s.handleVerify)
	})

	// WebSocket (auth via token query parameter, validated in handler)
	r.Get("/ws", s.handleWebSocket)

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	mqttConnected := false
	if s.mqtt != nil {
		mqttConnected = s.mqtt.HealthCheck(r.Context()) == nil
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"mqtt":    mqttConnected,
		"clients": s.clientCount(),
	})
}

// clientCount returns the connected WebSocket client count, tolerating an
// unstarted hub.
func (s *Server) clientCount() int {
	if s.hub == nil {
		return 0
	}
	return s.hub.ClientCount()
}
