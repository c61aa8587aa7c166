package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/newsdigest/internal/common"
	"github.com/dmitrijs2005/newsdigest/internal/server/models"
)

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	p, err := s.prefs.Get(r.Context(), id.ID)
	if errors.Is(err, common.ErrorNotFound) {
		writeError(w, http.StatusNotFound, "No preferences saved")
		return
	}
	if err != nil {
		s.log.Error(r.Context(), "error loading preferences", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSavePreferences(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	var p models.Preferences
	if err := readJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := s.prefs.Save(r.Context(), id.ID, p)
	if errors.Is(err, common.ErrorValidation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.log.Error(r.Context(), "error saving preferences", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.log.Info(r.Context(), "preferences saved", "user_id", id.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Preferences saved successfully",
		"preferences": p,
	})
}
