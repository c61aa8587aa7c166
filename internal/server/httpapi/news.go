package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/common"
	"github.com/dmitrijs2005/newsdigest/internal/server/models"
	"github.com/gorilla/mux"
)

type newsResponse struct {
	Articles     []models.Article `json:"articles"`
	Category     string           `json:"category,omitempty"`
	Timestamp    string           `json:"timestamp,omitempty"`
	TotalResults int              `json:"totalResults"`
	Error        string           `json:"error,omitempty"`
}

func queryOr(r *http.Request, key, def string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return def
}

// handleNews reports provider problems in the body with status 200 so
// clients can still render an empty dashboard.
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	category := queryOr(r, "category", "general")
	language := queryOr(r, "language", "en")
	userLanguage := queryOr(r, "userLanguage", "en")

	h, err := s.news.TopHeadlines(r.Context(), category, language, userLanguage)
	if err != nil {
		s.log.Warn(r.Context(), "headlines unavailable", "category", category, "error", err)
		writeJSON(w, http.StatusOK, newsResponse{Articles: []models.Article{}, Error: err.Error()})
		return
	}

	articles := h.Articles
	if articles == nil {
		articles = []models.Article{}
	}
	writeJSON(w, http.StatusOK, newsResponse{
		Articles:     articles,
		Category:     h.Category,
		Timestamp:    h.Timestamp.Format(time.RFC3339),
		TotalResults: h.TotalResults,
	})
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	a, err := s.news.Article(mux.Vars(r)["id"])
	if errors.Is(err, common.ErrorNotFound) {
		writeError(w, http.StatusNotFound, "Article not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"article": a})
}

type shareRequest struct {
	Article *models.Article `json:"article"`
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	if err := readJSON(w, r, &req); err != nil || req.Article == nil {
		writeError(w, http.StatusBadRequest, "No article data provided")
		return
	}

	base := s.cfg.PublicBaseURL
	if base == "" {
		base = requestBaseURL(r)
	}

	res, err := s.shares.Share(r.Context(), *req.Article, base)
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, "No article data provided")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleShared(w http.ResponseWriter, r *http.Request) {
	sh, err := s.shares.View(r.Context(), mux.Vars(r)["shareId"])
	if errors.Is(err, common.ErrorNotFound) {
		writeError(w, http.StatusNotFound, "Article not found")
		return
	}
	if err != nil {
		s.log.Error(r.Context(), "error loading share", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, sh)
}
