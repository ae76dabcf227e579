package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type createCommentaireRequest struct {
	Contenu string `json:"contenu"`
}

// CreateCommentaireHandler handles POST /api/avis/{avisId}/commentaires. The
// author is the signed-in director; the persisted comment is prepended
// locally only after the insert succeeds.
func (h *Handler) CreateCommentaireHandler(w http.ResponseWriter, r *http.Request) {
	avisID, err := strconv.Atoi(chi.URLParam(r, "avisId"))
	if err != nil || avisID <= 0 {
		http.Error(w, "Invalid avisId", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var input createCommentaireRequest
	if err := json.Unmarshal(body, &input); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	comment, err := h.Repo.CreateComment(r.Context(), avisID, directorEmail(r), input.Contenu)
	if err != nil {
		writeError(w, err)
		return
	}
	h.State.PrependComment(*comment)

	writeJSON(w, http.StatusOK, comment)
}

// GetCommentairesHandler returns the newest-first comments of one entry from
// the in-memory grouping.
func (h *Handler) GetCommentairesHandler(w http.ResponseWriter, r *http.Request) {
	avisID, err := strconv.Atoi(chi.URLParam(r, "avisId"))
	if err != nil || avisID <= 0 {
		http.Error(w, "Invalid avisId", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, h.State.Comments(avisID))
}
