package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/buildinfo"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":          "ok",
		"message":         "News Dashboard API is running",
		"version":         buildinfo.Version,
		"health_endpoint": "/api/health",
		"documentation":   "Available endpoints: /api/news, /api/health, /auth/signup, /auth/login, /auth/logout, /auth/user",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": s.now().Format(time.RFC3339),
		"service":   "News Dashboard API",
	})
}
