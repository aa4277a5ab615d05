package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/utcsmart/homelink-core/internal/auth"
)

// registerRequest is the POST /api/register body.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// loginRequest is the POST /api/login body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the successful POST /api/login body.
type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Name    string `json:"name"`
}

// successResponse is the generic success body.
type successResponse struct {
	Success bool `json:"success"`
}

// handleRegister creates a new account. Login is a separate step; no token
// is issued here.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeBadRequest(w, "email, password and name are required")
		return
	}
	if !auth.IsValidEmail(req.Email) {
		writeBadRequest(w, "invalid email address")
		return
	}

	if err := s.auth.Register(r.Context(), req.Email, req.Password, req.Name); err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			// Same 400 status as a missing-field rejection; the code field
			// keeps the two machine-distinguishable.
			writeError(w, http.StatusBadRequest, ErrCodeConflict, "email already registered")
			return
		}
		s.logger.Error("registration failed", "error", err)
		writeInternalError(w, "registration failed")
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// handleLogin checks credentials and issues a session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeBadRequest(w, "email and password are required")
		return
	}

	token, name, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password take this same path, so the
		// response is byte-identical for both and emails cannot be
		// enumerated.
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeUnauthorized(w, "invalid email or password")
			return
		}
		s.logger.Error("login failed", "error", err)
		writeInternalError(w, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Success: true, Token: token, Name: name})
}

// handleLogout revokes the presented session token.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeBadRequest(w, "no token provided")
		return
	}

	s.auth.Logout(token)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// handleVerify reports whether the presented session token is valid.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeUnauthorized(w, "no token provided")
		return
	}

	claims, err := s.auth.Verify(token)
	if err != nil {
		writeUnauthorized(w, "invalid or expired token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"email":   claims.Email,
	})
}
