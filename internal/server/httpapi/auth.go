package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/newsdigest/internal/common"
	"github.com/dmitrijs2005/newsdigest/internal/server/models"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type authResponse struct {
	Message string          `json:"message"`
	User    models.Identity `json:"user"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	sess, err := s.users.Signup(r.Context(), req.Email, req.Password, req.Name)
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, "User already exists")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.setSessionCookie(w, r, sess.Token, sess.Expires)
	writeJSON(w, http.StatusCreated, authResponse{Message: "Signup successful", User: sess.User})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	sess, err := s.users.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		s.log.Info(r.Context(), "failed login", "ip", clientIP(r))
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.setSessionCookie(w, r, sess.Token, sess.Expires)
	writeJSON(w, http.StatusOK, authResponse{Message: "Login successful", User: sess.User})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w, r)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	id, err := s.sessionIdentity(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, id)
}
