package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

var availableEndpoints = []string{
	"/ (GET) - API info",
	"/api/health (GET) - Health check",
	"/api/news (GET) - Get news articles",
	"/api/article/{id} (GET) - Get a served article",
	"/api/share (POST) - Share article",
	"/api/shared/{shareId} (GET) - Get shared article",
	"/api/preferences (GET, POST) - Read or save preferences",
	"/auth/signup (POST) - Sign up with email/password",
	"/auth/login (POST) - Log in with email/password",
	"/auth/logout (POST) - Log out",
	"/auth/user (GET) - Current user",
}

// Handler returns the complete HTTP handler, middleware included.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(s.handleMethodNotAllowed)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/news", s.handleNews).Methods(http.MethodGet)
	api.HandleFunc("/article/{id}", s.handleArticle).Methods(http.MethodGet)
	api.HandleFunc("/share", s.handleShare).Methods(http.MethodPost)
	api.HandleFunc("/shared/{shareId}", s.handleShared).Methods(http.MethodGet)
	api.Handle("/preferences", s.requireUser(http.HandlerFunc(s.handleGetPreferences))).Methods(http.MethodGet)
	api.Handle("/preferences", s.requireUser(http.HandlerFunc(s.handleSavePreferences))).Methods(http.MethodPost)

	authR := r.PathPrefix("/auth").Subrouter()
	authR.Handle("/signup", s.rateLimited(http.HandlerFunc(s.handleSignup))).Methods(http.MethodPost)
	authR.Handle("/login", s.rateLimited(http.HandlerFunc(s.handleLogin))).Methods(http.MethodPost)
	authR.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)
	authR.HandleFunc("/user", s.handleUser).Methods(http.MethodGet)

	return s.recoverer(s.requestLogger(s.cors(r)))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error":               "Endpoint not found",
		"available_endpoints": availableEndpoints,
	})
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
